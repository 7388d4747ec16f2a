package hive

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// ShapeKind selects how a vector builds its path.
type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota // (X, Y, Width, Height)
	ShapeCircle                     // Radius centered at (X, Y)
	ShapePath                       // path loaded from an SVG document
)

// String returns the shape name used in logs.
func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapePath:
		return "path"
	default:
		return "unknown"
	}
}

// VectorData is the payload of a TypeVector component.
type VectorData struct {
	Shape  ShapeKind
	Radius float64

	// Path-from-file fields (ShapePath).
	Source   string
	Original Size    // intrinsic size declared by the SVG
	Scale    float64 // multiplier from Original to the rendered size
	base     *Path   // cached, never transformed in place

	// current is the path built by the last render; hit tests use it.
	current *Path
}

// Shape describes a procedural vector for AddVectorShape.
type Shape struct {
	Kind          ShapeKind
	Width, Height float64
	Radius        float64
}

// ShapeOptions configures AddVectorShape.
type ShapeOptions struct {
	X, Y       float64
	ZIndex     int
	AutoDomain bool
	Style      []StyleOption
}

// VectorOptions configures AddVectorPath.
type VectorOptions struct {
	X, Y       float64
	ZIndex     int
	Scale      ScaleOptions
	AutoDomain bool
	Style      []StyleOption
}

// SetRadius changes a circle's radius and keeps its size in sync.
func (c *Component) SetRadius(r float64) {
	if c.typ != TypeVector || c.Vector.Shape != ShapeCircle {
		return
	}
	c.Vector.Radius = r
	c.Width, c.Height = 2*r, 2*r
}

// Path returns the path built by the last render, or nil.
func (c *Component) Path() *Path {
	if c.typ != TypeVector {
		return nil
	}
	return c.Vector.current
}

// buildPath constructs the vector's path for its current position and size.
// File paths are rebuilt from a fresh copy of the cached base path.
func (c *Component) buildPath() *Path {
	v := c.Vector
	switch v.Shape {
	case ShapeRectangle:
		return RectPath(c.X, c.Y, c.Width, c.Height)
	case ShapeCircle:
		return CirclePath(c.X, c.Y, v.Radius)
	case ShapePath:
		if v.base == nil {
			return nil
		}
		var m ebiten.GeoM
		m.Scale(v.Scale, v.Scale)
		m.Translate(c.X, c.Y)
		return v.base.Transform(m)
	default:
		c.logger().Error("hive: unsupported vector shape",
			zap.String("component", c.Name), zap.Stringer("shape", v.Shape))
		return nil
	}
}

func (c *Component) renderVector(s Surface) {
	if c.Vector == nil {
		return
	}
	p := c.buildPath()
	c.Vector.current = p
	if p.Empty() {
		return
	}
	st := c.style
	if st.Fill.A > 0 {
		s.Fill(p)
	}
	if st.LineWidth > 0 && st.Stroke.A > 0 {
		s.Stroke(p)
	}
}
