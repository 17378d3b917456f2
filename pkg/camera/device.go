package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Device wraps a gocv VideoCapture with JPEG output.
// Open and Release bracket exclusive ownership of the hardware.
type Device struct {
	config Config

	mu  sync.Mutex
	cap *gocv.VideoCapture
}

// NewDevice creates an unopened device for the given config.
func NewDevice(cfg Config) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Device{config: cfg}, nil
}

// Open acquires the capture device. Failure here is fatal to the session
// being started; the caller surfaces it instead of retrying.
func (d *Device) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cap != nil {
		return fmt.Errorf("camera: device %d already open", d.config.Index)
	}

	cap, err := gocv.VideoCaptureDevice(d.config.Index)
	if err != nil {
		return fmt.Errorf("camera: open device %d: %w", d.config.Index, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(d.config.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(d.config.Height))

	// Discard frames while auto-exposure settles
	frame := gocv.NewMat()
	defer frame.Close()
	for i := 0; i < d.config.WarmupFrames; i++ {
		cap.Read(&frame)
	}

	d.cap = cap
	return nil
}

// CaptureJPEG reads one frame and encodes it as JPEG.
func (d *Device) CaptureJPEG() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cap == nil {
		return nil, fmt.Errorf("camera: device not open")
	}

	frame := gocv.NewMat()
	defer frame.Close()

	if ok := d.cap.Read(&frame); !ok || frame.Empty() {
		return nil, fmt.Errorf("camera: frame read failed")
	}

	buf, err := gocv.IMEncodeWithParams(".jpg", frame,
		[]int{gocv.IMWriteJpegQuality, d.config.Quality})
	if err != nil {
		return nil, fmt.Errorf("camera: encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// Release closes the capture device. Safe to call when not open.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cap != nil {
		d.cap.Close()
		d.cap = nil
	}
}

// Index returns the configured device index.
func (d *Device) Index() int {
	return d.config.Index
}

// Capture opens the device, grabs a single frame, and releases it.
// Inventory scans use this so the hardware is free between scans.
func Capture(cfg Config) ([]byte, error) {
	dev, err := NewDevice(cfg)
	if err != nil {
		return nil, err
	}
	if err := dev.Open(); err != nil {
		return nil, err
	}
	defer dev.Release()
	return dev.CaptureJPEG()
}

// StillSource captures one-shot frames without holding the device open.
type StillSource struct {
	Config Config
}

// CaptureJPEG opens, reads, and releases the device for each call.
func (s StillSource) CaptureJPEG() ([]byte, error) {
	return Capture(s.Config)
}
