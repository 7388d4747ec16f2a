package hive

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-hit", "after-hit"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.Screenshot("a")
	c.Screenshot("b")
	if len(c.screenshotQueue) != 2 || c.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", c.screenshotQueue)
	}
}

func TestFlushScreenshotsWithoutScreen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := NewCanvas(newRecordingSurface(10, 10), CanvasConfig{ScreenshotDir: dir})
	c.Screenshot("a")
	c.flushScreenshots(nil)
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("directory created without a frame: %v", err)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Pix[0], img.Pix[3] = 255, 255

	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := got.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
	if r, _, _, a := got.At(0, 0).RGBA(); r != 0xffff || a != 0xffff {
		t.Errorf("pixel (0,0) = r%d a%d, want opaque red", r, a)
	}
}

func TestScreenshotName(t *testing.T) {
	stamp := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	if got := screenshotName(stamp, "after hit", 3); got != "20260304_050607_03_after_hit.png" {
		t.Errorf("screenshotName = %q", got)
	}
}

func TestUnpremultiply(t *testing.T) {
	pix := []byte{
		64, 32, 0, 128, // half alpha
		10, 20, 30, 0, // transparent, untouched
		1, 2, 3, 255, // opaque, untouched
		200, 0, 0, 100, // over-bright clamps
	}
	unpremultiply(pix)
	want := []byte{127, 63, 0, 128, 10, 20, 30, 0, 1, 2, 3, 255, 255, 0, 0, 100}
	for i := range want {
		if pix[i] != want[i] {
			t.Fatalf("pix = %v, want %v", pix, want)
		}
	}
}

func TestWritePNGBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := writePNG(path, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error for missing directory")
	}
}
