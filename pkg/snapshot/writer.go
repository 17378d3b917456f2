package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"time"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-pantry/pkg/guidance"
	"github.com/teslashibe/go-pantry/pkg/locator"
)

// Overlay colors (BGR).
var (
	boxColor  = color.RGBA{R: 0, G: 200, B: 0}
	handColor = color.RGBA{R: 255, G: 0, B: 0}
)

// Writer renders overlays with gocv and writes JPEGs to a directory.
type Writer struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewWriter creates a snapshot writer. The directory is created if missing.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: create dir: %w", err)
	}
	return &Writer{
		dir:    dir,
		logger: slog.Default().With("component", "snapshot.writer"),
		now:    time.Now,
	}, nil
}

// Record overlays the target box and hand marker on the frame and writes a
// timestamped JPEG.
func (w *Writer) Record(jpeg []byte, box *locator.Box, hand *guidance.Point, label string) error {
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return fmt.Errorf("snapshot: decode frame: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return fmt.Errorf("snapshot: empty frame")
	}

	width := float64(img.Cols())
	height := float64(img.Rows())

	if box != nil {
		rect := image.Rect(
			int(box.XMin*width), int(box.YMin*height),
			int(box.XMax*width), int(box.YMax*height),
		)
		gocv.Rectangle(&img, rect, boxColor, 2)

		labelY := rect.Min.Y - 10
		if labelY < 0 {
			labelY = 0
		}
		gocv.PutText(&img, label, image.Pt(rect.Min.X, labelY),
			gocv.FontHersheySimplex, 0.6, boxColor, 2)
	}

	if hand != nil {
		center := image.Pt(int(hand.X*width), int(hand.Y*height))
		gocv.Circle(&img, center, 8, handColor, -1)
		gocv.PutText(&img, "hand", image.Pt(center.X+10, center.Y),
			gocv.FontHersheySimplex, 0.6, handColor, 2)
	}

	path := filename(w.dir, w.now())
	if ok := gocv.IMWrite(path, img); !ok {
		return fmt.Errorf("snapshot: write %s failed", path)
	}

	w.logger.Debug("saved debug snapshot", "path", path, "target", label)
	return nil
}

var _ Recorder = (*Writer)(nil)
