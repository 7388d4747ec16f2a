package hive

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TextData is the payload of a TypeText component.
type TextData struct {
	Content string
	// Outline strokes the glyphs with the style's stroke color.
	Outline bool
	// NoFill skips the fill pass, leaving only the outline (if any).
	NoFill bool
}

// TextOptions configures AddText.
type TextOptions struct {
	X, Y    float64
	ZIndex  int
	Outline bool
	NoFill  bool
	Style   []StyleOption
}

var (
	defaultFontOnce sync.Once
	defaultFont     *text.GoTextFaceSource
	defaultFontErr  error
)

// DefaultFont returns the built-in Go Regular face source.
func DefaultFont() (*text.GoTextFaceSource, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = LoadFont(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// LoadFont parses TrueType/OpenType data into a face source usable with
// WithFont.
func LoadFont(ttfData []byte) (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("hive: failed to parse font data: %w", err)
	}
	return src, nil
}

// faceFor resolves the style's font at its size. Returns nil if no font is
// available.
func faceFor(st Style) *text.GoTextFace {
	src := st.Font
	if src == nil {
		var err error
		if src, err = DefaultFont(); err != nil {
			return nil
		}
	}
	return &text.GoTextFace{Source: src, Size: st.FontSize}
}

// lineSpacing returns the baseline-to-baseline distance for a face.
func lineSpacing(face *text.GoTextFace) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// MeasureText returns the rendered size of s in the given style.
func MeasureText(s string, st Style) (width, height float64) {
	face := faceFor(st)
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, lineSpacing(face))
}

// SetText replaces the content and re-measures the component.
// No-op on non-text components.
func (c *Component) SetText(content string) {
	if c.typ != TypeText {
		return
	}
	c.Text.Content = content
	c.Measure()
}

// Measure recomputes a text component's size from its content and style.
// Call it after changing the font or font size.
func (c *Component) Measure() {
	if c.typ != TypeText {
		return
	}
	c.Width, c.Height = MeasureText(c.Text.Content, c.style)
}

func (c *Component) renderText(s Surface) {
	td := c.Text
	if td == nil || td.Content == "" {
		return
	}
	// The outline goes underneath so the fill keeps the glyph shapes.
	if td.Outline {
		s.StrokeText(td.Content, c.X, c.Y)
	}
	if !td.NoFill {
		s.FillText(td.Content, c.X, c.Y)
	}
}
