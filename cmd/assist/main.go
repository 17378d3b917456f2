// Assist runs a single voice-guided retrieval session from the CLI:
// point the camera at the shelf, name an item, and follow the spoken
// directions until your hand reaches it. Ctrl+C stops the session.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/teslashibe/go-pantry/internal/config"
	"github.com/teslashibe/go-pantry/internal/log"
	"github.com/teslashibe/go-pantry/pkg/assist"
	"github.com/teslashibe/go-pantry/pkg/camera"
	"github.com/teslashibe/go-pantry/pkg/hand"
	"github.com/teslashibe/go-pantry/pkg/locator"
	"github.com/teslashibe/go-pantry/pkg/snapshot"
	"github.com/teslashibe/go-pantry/pkg/speech"
)

func main() {
	cameraIdx := flag.Int("camera", config.CameraIndex(), "Camera device index")
	debug := flag.Bool("debug", true, "Save annotated debug snapshots")
	flag.Parse()

	target := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if target == "" {
		fmt.Println("Usage: assist [flags] <item name>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log.Init("info")

	locOpts := []locator.Option{locator.WithAPIKey(config.LocatorAPIKey())}
	if url := config.LocatorBaseURL(); url != "" {
		locOpts = append(locOpts, locator.WithBaseURL(url))
	}
	loc, err := locator.New(locOpts...)
	if err != nil {
		fmt.Printf("[ERROR] Vision API not configured: %v\n", err)
		os.Exit(1)
	}

	camCfg := camera.DefaultConfig()
	camCfg.Index = *cameraIdx
	cam, err := camera.NewDevice(camCfg)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}

	handCfg := hand.DefaultConfig()
	handCfg.ModelPath = config.HandModelPath()
	tracker := hand.NewTracker(handCfg)
	defer tracker.Close()

	var recorder snapshot.Recorder
	assistCfg := assist.DefaultConfig()
	assistCfg.Debug = *debug
	if *debug {
		w, err := snapshot.NewWriter(config.SnapshotDir())
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			os.Exit(1)
		}
		recorder = w
	}

	manager := assist.NewManager(cam, loc, tracker,
		speech.NewChain(speech.NewCommand()), recorder, assistCfg)
	manager.OnStatus = func(st assist.Status) {
		fmt.Printf("[%s] %s\n", st.Intent, st.Phrase)
	}

	if _, err := manager.Start(target); err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Guiding you to: %s (Ctrl+C to stop)\n", target)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println("\nStopping...")
	manager.Shutdown()
}
