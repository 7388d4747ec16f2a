package hive

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
)

// componentIDCounter is a plain counter (no atomic, hive is single-threaded).
var componentIDCounter uint32

func nextComponentID() uint32 {
	componentIDCounter++
	return componentIDCounter
}

// Component is the drawable unit managed by a Canvas. A single flat struct is
// used for every variant; typ selects which payload (Text, Vector or Sprite)
// is populated and how Render draws it.
type Component struct {
	// Identity
	ID   uint32
	Name string
	typ  ComponentType

	// Geometry
	X, Y          float64
	Width, Height float64
	// Domain bounds random placement: minX, minY, maxX, maxY.
	Domain [4]float64

	// Visibility & ordering
	Visible bool
	ZIndex  int

	// Metadata
	UserData any
	EntityID uint32

	style      Style
	savedStyle *Style

	// Variant payloads; exactly one is non-nil.
	Text   *TextData
	Vector *VectorData
	Sprite *SpriteData

	owner *Canvas
}

// newComponent sets the defaults shared by every constructor.
func newComponent(owner *Canvas, name string, typ ComponentType) *Component {
	c := &Component{
		ID:      nextComponentID(),
		Name:    name,
		typ:     typ,
		Visible: true,
		style:   DefaultStyle,
		owner:   owner,
	}
	c.ResetDomain()
	return c
}

// Type returns the component's variant. It never changes after creation.
func (c *Component) Type() ComponentType {
	return c.typ
}

// Bounds returns the component's rectangle.
func (c *Component) Bounds() Rect {
	return Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

func (c *Component) canvasSize() (float64, float64) {
	if c.owner == nil {
		return 0, 0
	}
	return float64(c.owner.width), float64(c.owner.height)
}

// --- Position & size ---

// SetPosition moves the component to (x, y) verbatim.
func (c *Component) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
}

// RandomizePosition replaces each coordinate named by axes with a uniform
// random integer inside the domain on that axis, bounds inclusive.
// Coordinates on the other axis are left as they are.
func (c *Component) RandomizePosition(axes Axis) {
	r := c.rand()
	if axes&AxisX != 0 {
		lo, hi := domainInts(c.Domain[0], c.Domain[2])
		c.X = float64(randomInt(r, lo, hi))
	}
	if axes&AxisY != 0 {
		lo, hi := domainInts(c.Domain[1], c.Domain[3])
		c.Y = float64(randomInt(r, lo, hi))
	}
}

// domainInts returns the integers inside [lo, hi]. A range holding no
// integer falls back to truncation.
func domainInts(lo, hi float64) (int, int) {
	l, h := int(math.Ceil(lo)), int(math.Floor(hi))
	if l > h {
		return int(lo), int(hi)
	}
	return l, h
}

// SetSize sets both dimensions.
func (c *Component) SetSize(w, h float64) {
	c.Width = w
	c.Height = h
}

// SetWidth sets the width, leaving the height unchanged.
func (c *Component) SetWidth(w float64) {
	c.Width = w
}

// SetHeight sets the height, leaving the width unchanged.
func (c *Component) SetHeight(h float64) {
	c.Height = h
}

// FillCanvas sizes the component to the full canvas.
func (c *Component) FillCanvas() {
	c.Width, c.Height = c.canvasSize()
}

// --- Domain ---

// SetAutoDomain shrinks the placement domain by the component's own size from
// the canvas edges, so random placement keeps the whole component on screen.
// Call it again after a resize.
func (c *Component) SetAutoDomain() {
	cw, ch := c.canvasSize()
	c.Domain = [4]float64{c.Width, c.Height, cw - c.Width, ch - c.Height}
}

// SetDomain sets an explicit placement domain.
func (c *Component) SetDomain(minX, minY, maxX, maxY float64) {
	c.Domain = [4]float64{minX, minY, maxX, maxY}
}

// ResetDomain restores the default domain, the full canvas bounds.
func (c *Component) ResetDomain() {
	cw, ch := c.canvasSize()
	c.Domain = [4]float64{0, 0, cw, ch}
}

// --- Visibility ---

// Hide stops the component from rendering.
//
// Hidden vectors still answer IsPointInPath; callers are expected not to wire
// events to components they hide.
func (c *Component) Hide() {
	c.Visible = false
}

// Show makes the component render again.
func (c *Component) Show() {
	c.Visible = true
}

// IsVisible reports whether the component renders.
func (c *Component) IsVisible() bool {
	return c.Visible
}

// SetZIndex sets the paint order key and marks the owner's order stale.
func (c *Component) SetZIndex(z int) {
	if c.ZIndex == z {
		return
	}
	c.ZIndex = z
	if c.owner != nil {
		c.owner.sorted = false
	}
}

// --- Rendering ---

// Render draws the component onto s. Hidden components do not touch s at all.
// The active style is applied just before drawing and the previous surface
// state is restored afterwards.
func (c *Component) Render(s Surface) {
	if !c.Visible {
		return
	}
	s.Save()
	s.SetStyle(c.style)
	switch c.typ {
	case TypeText:
		c.renderText(s)
	case TypeVector:
		c.renderVector(s)
	case TypeSprite:
		c.renderSprite(s)
	}
	s.Restore()
}

// IsPointInPath reports whether (x, y), in canvas coordinates, lies inside
// the path drawn by the component's last render. Only vectors have paths.
func (c *Component) IsPointInPath(x, y float64) bool {
	if c.typ != TypeVector || c.Vector == nil {
		return false
	}
	return c.Vector.current.Contains(x, y)
}

func (c *Component) rand() *rand.Rand {
	if c.owner == nil {
		return nil
	}
	return c.owner.rng
}

func (c *Component) logger() *zap.Logger {
	if c.owner == nil {
		return zap.NewNop()
	}
	return c.owner.log
}
