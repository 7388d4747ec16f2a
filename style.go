package hive

import "github.com/hajimehoshi/ebiten/v2/text/v2"

// Style holds the rendering attributes applied immediately before a component
// draws. It is a plain value: copying a Style copies everything, so presets
// shared between components can never be modified through one of them.
type Style struct {
	Fill      Color
	Stroke    Color
	LineWidth float64

	Shadow        Color
	ShadowBlur    float64
	ShadowOffsetX float64
	ShadowOffsetY float64

	// Font is shared between copies; face sources are never mutated.
	// Nil selects the default font.
	Font     *text.GoTextFaceSource
	FontSize float64
	Align    TextAlign
}

// DefaultStyle is the style every component starts with.
var DefaultStyle = Style{
	Fill:     ColorBlack,
	Stroke:   ColorBlack,
	FontSize: 16,
}

// StyleOption updates a subset of a Style's fields.
type StyleOption func(*Style)

// WithFill sets the fill color.
func WithFill(c Color) StyleOption {
	return func(s *Style) { s.Fill = c }
}

// WithStroke sets the stroke color.
func WithStroke(c Color) StyleOption {
	return func(s *Style) { s.Stroke = c }
}

// WithLineWidth sets the stroke width. Zero disables stroking.
func WithLineWidth(w float64) StyleOption {
	return func(s *Style) { s.LineWidth = w }
}

// WithShadow sets the drop shadow drawn beneath fills.
func WithShadow(c Color, blur, offsetX, offsetY float64) StyleOption {
	return func(s *Style) {
		s.Shadow = c
		s.ShadowBlur = blur
		s.ShadowOffsetX = offsetX
		s.ShadowOffsetY = offsetY
	}
}

// WithFontSize sets the text size in pixels.
func WithFontSize(size float64) StyleOption {
	return func(s *Style) { s.FontSize = size }
}

// WithFont sets the font face source.
func WithFont(src *text.GoTextFaceSource) StyleOption {
	return func(s *Style) { s.Font = src }
}

// WithAlign sets the horizontal text alignment.
func WithAlign(a TextAlign) StyleOption {
	return func(s *Style) { s.Align = a }
}

// hasShadow reports whether a shadow pass should be drawn.
func (s Style) hasShadow() bool {
	return s.Shadow.A > 0 && (s.ShadowOffsetX != 0 || s.ShadowOffsetY != 0 || s.ShadowBlur > 0)
}

// --- Component style methods ---

// SetStyle merges the given options over the component's current style.
// Fields not named by an option are left untouched.
func (c *Component) SetStyle(opts ...StyleOption) {
	for _, opt := range opts {
		opt(&c.style)
	}
}

// ApplyStyle replaces the component's style with a copy of preset.
func (c *Component) ApplyStyle(preset Style) {
	c.style = preset
}

// Style returns a copy of the component's active style.
func (c *Component) Style() Style {
	return c.style
}

// SaveStyle snapshots the active style into the single save slot.
// No-op if a snapshot is already pending; an existing snapshot is never
// overwritten.
func (c *Component) SaveStyle() {
	if c.savedStyle != nil {
		return
	}
	saved := c.style
	c.savedStyle = &saved
}

// RevertStyle restores the saved snapshot and clears the slot.
// No-op if nothing is saved.
func (c *Component) RevertStyle() {
	if c.savedStyle == nil {
		return
	}
	c.style = *c.savedStyle
	c.savedStyle = nil
}

// HasSavedStyle reports whether a snapshot is pending.
func (c *Component) HasSavedStyle() bool {
	return c.savedStyle != nil
}
