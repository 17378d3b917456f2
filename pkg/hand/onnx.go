package hand

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-pantry/pkg/guidance"
)

// ONNXTracker runs a MediaPipe-style hand landmark model through gocv's DNN
// module. The model takes a square RGB crop and outputs 21 (x,y,z) landmarks
// plus a hand presence score.
type ONNXTracker struct {
	net    gocv.Net
	config Config
	mu     sync.Mutex // Protects inference
}

// Model output layer names for the landmark network.
const (
	layerLandmarks = "ld_21_3d"
	layerHandFlag  = "output_handflag"
)

// NewONNX creates a hand tracker from an ONNX landmark model.
func NewONNX(cfg Config) (*ONNXTracker, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model: %s", cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &ONNXTracker{
		net:    net,
		config: cfg,
	}, nil
}

// Track finds the hand centroid in the JPEG image.
func (t *ONNXTracker) Track(jpeg []byte) (guidance.Point, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return guidance.Point{}, false, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return guidance.Point{}, false, fmt.Errorf("empty image")
	}

	size := t.config.InputSize
	blob := gocv.BlobFromImage(img, 1.0/255.0,
		image.Pt(size, size),
		gocv.NewScalar(0, 0, 0, 0),
		true,  // Swap R and B, model expects RGB
		false, // No crop, letterbox handled by resize
	)
	defer blob.Close()

	t.net.SetInput(blob, "")

	outs := t.net.ForwardLayers([]string{layerLandmarks, layerHandFlag})
	defer func() {
		for _, m := range outs {
			m.Close()
		}
	}()

	if len(outs) < 2 {
		return guidance.Point{}, false, fmt.Errorf("unexpected model outputs: %d", len(outs))
	}

	score := float64(outs[1].GetFloatAt(0, 0))
	if score < t.config.ScoreThresh {
		return guidance.Point{}, false, nil
	}

	flat, err := outs[0].DataPtrFloat32()
	if err != nil {
		return guidance.Point{}, false, fmt.Errorf("read landmarks: %w", err)
	}

	points := landmarkPoints(flat, size)
	if len(points) == 0 {
		return guidance.Point{}, false, nil
	}

	return centroid(points), true, nil
}

// Close releases the network resources.
func (t *ONNXTracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.net.Close()
}
