package hive

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot asks for the next drawn frame to be saved as a PNG in the
// canvas ScreenshotDir, named after label and the capture time.
func (c *Canvas) Screenshot(label string) {
	c.screenshotQueue = append(c.screenshotQueue, label)
}

// flushScreenshots writes one file per queued label from the frame just
// drawn onto screen. Draw calls it last.
func (c *Canvas) flushScreenshots(screen *ebiten.Image) {
	if len(c.screenshotQueue) == 0 || screen == nil {
		return
	}
	labels := c.screenshotQueue
	c.screenshotQueue = c.screenshotQueue[:0]

	if err := os.MkdirAll(c.screenshotDir, 0o755); err != nil {
		c.log.Error("hive: screenshot dir", zap.String("dir", c.screenshotDir), zap.Error(err))
		return
	}
	frame := captureFrame(screen)
	stamp := time.Now()
	for i, label := range labels {
		path := filepath.Join(c.screenshotDir, screenshotName(stamp, label, i))
		if err := writePNG(path, frame); err != nil {
			c.log.Error("hive: screenshot", zap.String("label", label), zap.Error(err))
			continue
		}
		c.log.Info("hive: screenshot written", zap.String("path", path))
	}
}

// captureFrame copies screen into a straight-alpha image. ebiten pixels are
// premultiplied.
func captureFrame(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	unpremultiply(img.Pix)
	return img
}

func unpremultiply(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := int(pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for j := i; j < i+3; j++ {
			pix[j] = uint8(min(int(pix[j])*255/a, 255))
		}
	}
}

// screenshotName builds "<yyyymmdd_hhmmss>_<n>_<label>.png". n keeps labels
// captured in the same frame apart.
func screenshotName(t time.Time, label string, n int) string {
	return fmt.Sprintf("%s_%02d_%s.png", t.Format("20060102_150405"), n, sanitizeLabel(label))
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

// sanitizeLabel keeps letters, digits, '-' and '.' and turns everything else
// into '_'. A blank label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
