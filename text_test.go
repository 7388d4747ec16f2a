package hive

import (
	"testing"

	"golang.org/x/image/font/gofont/gobold"
)

func TestMeasureText(t *testing.T) {
	w, h := MeasureText("hello", DefaultStyle)
	if w <= 0 || h <= 0 {
		t.Fatalf("MeasureText = %vx%v, want positive", w, h)
	}
	big := DefaultStyle
	big.FontSize = 32
	bw, bh := MeasureText("hello", big)
	if bw <= w || bh <= h {
		t.Errorf("32px %vx%v not larger than 16px %vx%v", bw, bh, w, h)
	}
	if ew, _ := MeasureText("", DefaultStyle); ew != 0 {
		t.Errorf("empty width = %v, want 0", ew)
	}
}

func TestAddTextIsMeasured(t *testing.T) {
	c, _ := newTestCanvas(t)
	txt := c.AddText("t", "score", TextOptions{X: 4, Y: 6, Style: []StyleOption{WithFontSize(24)}})
	w, h := MeasureText("score", txt.Style())
	if txt.Width != w || txt.Height != h {
		t.Errorf("size = %vx%v, want %vx%v", txt.Width, txt.Height, w, h)
	}
	if txt.X != 4 || txt.Y != 6 {
		t.Errorf("position = (%v,%v)", txt.X, txt.Y)
	}
}

func TestSetTextRemeasures(t *testing.T) {
	c, _ := newTestCanvas(t)
	txt := c.AddText("t", "a", TextOptions{})
	before := txt.Width
	txt.SetText("a much longer line")
	if txt.Text.Content != "a much longer line" {
		t.Errorf("content = %q", txt.Text.Content)
	}
	if txt.Width <= before {
		t.Errorf("width %v did not grow from %v", txt.Width, before)
	}
}

func TestSetTextIgnoresNonText(t *testing.T) {
	c, _ := newTestCanvas(t)
	r := c.AddRectangle("r", 10, 10)
	r.SetText("nope")
	r.Measure()
	if r.Text != nil || r.Width != 10 {
		t.Errorf("rectangle changed: text=%v width=%v", r.Text, r.Width)
	}
}

func TestLoadFont(t *testing.T) {
	src, err := LoadFont(gobold.TTF)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	st := DefaultStyle
	st.Font = src
	if w, _ := MeasureText("x", st); w <= 0 {
		t.Errorf("bold width = %v", w)
	}

	if _, err := LoadFont([]byte("not a font")); err == nil {
		t.Error("expected error for garbage font data")
	}
}

func TestRenderEmptyText(t *testing.T) {
	c, surf := newTestCanvas(t)
	c.AddText("t", "", TextOptions{Outline: true})
	c.Render()
	for _, call := range surf.calls {
		if call == "filltext " || call == "stroketext " {
			t.Errorf("empty text drew %q", call)
		}
	}
}
