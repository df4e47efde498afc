package ebitenbackend

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/trellis"
	"go.uber.org/zap"
)

// Screenshots queues labeled captures of the presented frame. Queue may be
// called from entity hooks; captures are written after the next Draw as
// <Dir>/<timestamp>_<label>.png.
type Screenshots struct {
	// Dir is the output directory, created on first capture. Defaults to
	// "screenshots".
	Dir string

	queue []string
	now   func() time.Time
}

// NewScreenshots returns a queue writing into dir.
func NewScreenshots(dir string) *Screenshots {
	return &Screenshots{Dir: dir, now: time.Now}
}

// Queue requests a capture at the end of the current frame.
func (s *Screenshots) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued captures.
func (s *Screenshots) Pending() int { return len(s.queue) }

// flush captures screen once for every queued label.
func (s *Screenshots) flush(screen *ebiten.Image) {
	if len(s.queue) == 0 {
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	paths, err := s.write(unpremultiply(pixels, b.Dx(), b.Dy()))
	if err != nil {
		trellis.Logger().Warn("screenshot failed", zap.Error(err))
	}
	for _, p := range paths {
		trellis.Logger().Info("screenshot saved", zap.String("path", p))
	}
}

// write encodes img once per queued label and empties the queue.
func (s *Screenshots) write(img image.Image) ([]string, error) {
	defer func() { s.queue = s.queue[:0] }()
	dir := s.Dir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	stamp := now().Format("20060102_150405")
	var paths []string
	for _, label := range s.queue {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			return paths, fmt.Errorf("screenshot: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// unpremultiply converts premultiplied RGBA pixels to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything
// else with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
