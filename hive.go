package hive

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorWhite is opaque white.
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is opaque black.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorTransparent disables fill or stroke when used in a Style.
	ColorTransparent = Color{}
)

// RGBA returns c as a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// ColorScale returns c as an ebiten.ColorScale for tinting white sources.
func (c Color) ColorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	return cs
}

// WithAlpha returns a copy of c with the alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ComponentType is the discriminator that selects a component's variant payload.
type ComponentType uint8

const (
	TypeText   ComponentType = iota // string payload rendered with a font
	TypeVector                      // procedural shape or path loaded from SVG
	TypeSprite                      // raster image (or rasterized SVG)
)

// String returns the lower-case variant name used in logs and error messages.
func (t ComponentType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeVector:
		return "vector"
	case TypeSprite:
		return "sprite"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventClick     EventType = iota // fires on a primary button press
	EventMouseMove                  // fires when the pointer moves
)

// String returns the DOM-style event name.
func (e EventType) String() string {
	switch e {
	case EventClick:
		return "click"
	case EventMouseMove:
		return "mousemove"
	default:
		return "unknown"
	}
}

// TextAlign controls horizontal text alignment relative to a text component's X.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // X is the left edge (default)
	TextAlignCenter                  // X is the horizontal center
	TextAlignRight                   // X is the right edge
)

// Axis selects one or both coordinate axes.
type Axis uint8

const (
	AxisX    Axis = 1 << iota // horizontal axis
	AxisY                     // vertical axis
	AxisBoth = AxisX | AxisY
)
