// Smart Pantry - camera-based inventory tracking with WhatsApp control
// and voice-guided item retrieval.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/teslashibe/go-pantry/internal/config"
	"github.com/teslashibe/go-pantry/internal/log"
	"github.com/teslashibe/go-pantry/pkg/assist"
	"github.com/teslashibe/go-pantry/pkg/camera"
	"github.com/teslashibe/go-pantry/pkg/hand"
	"github.com/teslashibe/go-pantry/pkg/inventory"
	"github.com/teslashibe/go-pantry/pkg/locator"
	"github.com/teslashibe/go-pantry/pkg/relay"
	"github.com/teslashibe/go-pantry/pkg/snapshot"
	"github.com/teslashibe/go-pantry/pkg/speech"
	"github.com/teslashibe/go-pantry/pkg/web"
)

func main() {
	cameraIdx := flag.Int("camera", config.CameraIndex(), "Camera device index")
	port := flag.String("port", config.Port(), "Webhook server port")
	mode := flag.String("mode", "general", "Detection mode: general or pantry")
	countdown := flag.Int("countdown", 3, "Seconds before a scan capture (for positioning)")
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	log.Init(level)

	fmt.Println("\nSmart Pantry Inventory System")
	fmt.Print("AI-Powered Item Detection & Tracking\n\n")
	fmt.Println("Initializing system...")

	app, err := newApp(*cameraIdx, *port, scanMode(*mode), *countdown)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	defer app.shutdown()

	app.repl()

	fmt.Println("System stopped.")
}

func scanMode(mode string) locator.ScanMode {
	if mode == string(locator.ScanPantry) {
		return locator.ScanPantry
	}
	return locator.ScanGeneral
}

// app holds the wired system for the interactive loop.
type app struct {
	manager *assist.Manager
	scanner *inventory.Scanner
	store   *inventory.Store
	server  *web.Server
	relay   *relay.Client

	mode      locator.ScanMode
	countdown int
	port      string

	relayCancel context.CancelFunc
}

func newApp(cameraIdx int, port string, mode locator.ScanMode, countdown int) (*app, error) {
	locOpts := []locator.Option{locator.WithAPIKey(config.LocatorAPIKey())}
	if url := config.LocatorBaseURL(); url != "" {
		locOpts = append(locOpts, locator.WithBaseURL(url))
	}
	loc, err := locator.New(locOpts...)
	if err != nil {
		return nil, fmt.Errorf("vision API not configured: %w", err)
	}
	fmt.Println("[OK] Vision API connected")

	camCfg := camera.DefaultConfig()
	camCfg.Index = cameraIdx
	cam, err := camera.NewDevice(camCfg)
	if err != nil {
		return nil, err
	}
	if _, err := camera.Capture(camCfg); err != nil {
		return nil, fmt.Errorf("camera %d not available: %w", cameraIdx, err)
	}
	fmt.Printf("[OK] Camera %d operational\n", cameraIdx)

	handCfg := hand.DefaultConfig()
	handCfg.ModelPath = config.HandModelPath()
	tracker := hand.NewTracker(handCfg)

	speaker := buildSpeaker()

	recorder, err := snapshot.NewWriter(config.SnapshotDir())
	if err != nil {
		return nil, err
	}

	manager := assist.NewManager(cam, loc, tracker, speaker, recorder, assist.DefaultConfig())

	store, err := inventory.NewStore(config.InventoryPath())
	if err != nil {
		return nil, err
	}
	fmt.Printf("[OK] Inventory file: %s\n", store.Path())

	scanner := inventory.NewScanner(camera.StillSource{Config: camCfg}, loc, store)

	server := web.NewServer(web.Config{
		Port:      port,
		AuthToken: config.TwilioAuthToken(),
		Manager:   manager,
		Scanner:   scanner,
		Store:     store,
	})
	if config.TwilioAuthToken() == "" {
		fmt.Println("[WARN] TWILIO_AUTH_TOKEN not set, webhook signature validation disabled")
	} else {
		fmt.Println("[OK] WhatsApp configured")
	}

	a := &app{
		manager:   manager,
		scanner:   scanner,
		store:     store,
		server:    server,
		mode:      mode,
		countdown: countdown,
		port:      port,
	}

	manager.OnStatus = func(st assist.Status) {
		server.PublishStatus(st)
		if a.relay != nil {
			a.relay.ReportStatus(st)
		}
	}

	if url := config.RelayURL(); url != "" {
		a.startRelay(url)
		fmt.Println("[OK] Command relay enabled")
	}

	return a, nil
}

// buildSpeaker prefers ElevenLabs with the local speech command as a
// fallback, so guidance keeps talking when the network drops.
func buildSpeaker() speech.Speaker {
	local := speech.NewCommand()

	key := config.ElevenLabsAPIKey()
	if key == "" {
		return speech.NewChain(local)
	}

	opts := []speech.Option{speech.WithAPIKey(key)}
	if voice := config.ElevenLabsVoice(); voice != "" {
		opts = append(opts, speech.WithVoice(voice))
	}
	el, err := speech.NewElevenLabs(opts...)
	if err != nil {
		log.Warn("elevenlabs unavailable, using local speech", "error", err)
		return speech.NewChain(local)
	}
	return speech.NewChain(el, local)
}

func (a *app) startRelay(url string) {
	a.relay = relay.NewClient(relay.DefaultConfig(url, "pantry"))
	a.relay.OnAssist = func(target string) error {
		_, err := a.manager.Start(target)
		return err
	}
	a.relay.OnStop = a.manager.Stop

	ctx, cancel := context.WithCancel(context.Background())
	a.relayCancel = cancel
	go a.relay.Run(ctx)
}

func (a *app) shutdown() {
	if a.relayCancel != nil {
		a.relayCancel()
	}
	a.manager.Shutdown()
}

// repl runs the interactive command loop on stdin.
func (a *app) repl() {
	fmt.Println("\nCOMMANDS:")
	fmt.Println("ENTER  - Take scan")
	fmt.Println("show   - Display current inventory")
	fmt.Println("server - Start WhatsApp webhook server")
	fmt.Println("reset  - Clear inventory")
	fmt.Println("quit   - Exit")

	input := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nCommand: ")
		if !input.Scan() {
			return
		}

		switch strings.ToLower(strings.TrimSpace(input.Text())) {
		case "quit":
			fmt.Println("\nSystem shutting down...")
			return

		case "reset":
			if err := a.store.Replace(map[string]int{}); err != nil {
				fmt.Printf("[ERROR] %v\n", err)
				continue
			}
			fmt.Println("\nInventory cleared.")

		case "show":
			a.showInventory()

		case "server":
			a.runServer()

		case "", "scan":
			a.scan()

		default:
			fmt.Println("Unknown command. Try: scan, show, server, reset, quit")
		}
	}
}

func (a *app) scan() {
	for i := a.countdown; i > 0; i-- {
		fmt.Printf("Capturing in %d...\n", i)
		time.Sleep(time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	changes, err := a.scanner.Scan(ctx, a.mode)
	if err != nil {
		fmt.Printf("[ERROR] Scan failed: %v\n", err)
		return
	}

	fmt.Println("\n" + changes.Summary())
	a.showInventory()
}

func (a *app) showInventory() {
	items := a.store.Items()
	fmt.Printf("\nPANTRY INVENTORY (%d items)\n", len(items))
	fmt.Println(inventory.FormatList(items))
}

func (a *app) runServer() {
	fmt.Printf("\nStarting webhook server on http://localhost:%s/webhook\n", a.port)
	fmt.Println("Expose it with a tunnel (e.g. ngrok http " + a.port + ") and point the")
	fmt.Println("Twilio WhatsApp sandbox at the public /webhook URL.")
	fmt.Println("Send 'alert', 'list', 'assist <item>', or 'stop' to WhatsApp.")
	fmt.Print("\nPress Ctrl+C to stop\n\n")

	if err := a.server.Start(); err != nil {
		fmt.Printf("[ERROR] Server stopped: %v\n", err)
	}
}
