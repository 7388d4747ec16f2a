package hive

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type pathOpKind uint8

const (
	opMoveTo pathOpKind = iota
	opLineTo
	opQuadTo
	opCubicTo
	opClose
)

// pathOp is one drawing command. Unused points are zero.
type pathOp struct {
	kind pathOpKind
	pts  [3]Vec2
}

// curveSegments is the number of line segments each curve is flattened into
// for hit testing.
const curveSegments = 16

// circleKappa is the control point distance for a quarter-circle cubic.
const circleKappa = 0.5522847498307936

// Path is a resolution-independent outline made of lines and Bézier curves.
// Paths are immutable once handed to a component: Transform returns a new path.
type Path struct {
	ops []pathOp
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.ops = append(p.ops, pathOp{kind: opMoveTo, pts: [3]Vec2{{x, y}}})
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.ops = append(p.ops, pathOp{kind: opLineTo, pts: [3]Vec2{{x, y}}})
}

// QuadTo adds a quadratic Bézier with control point (cx, cy) ending at (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.ops = append(p.ops, pathOp{kind: opQuadTo, pts: [3]Vec2{{cx, cy}, {x, y}}})
}

// CubicTo adds a cubic Bézier ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.ops = append(p.ops, pathOp{kind: opCubicTo, pts: [3]Vec2{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.ops = append(p.ops, pathOp{kind: opClose})
}

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool {
	return p == nil || len(p.ops) == 0
}

// RectPath returns a closed rectangle path.
func RectPath(x, y, w, h float64) *Path {
	p := &Path{}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

// CirclePath returns a full-turn circle of radius r centered at (cx, cy).
func CirclePath(cx, cy, r float64) *Path {
	k := r * circleKappa
	p := &Path{}
	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	p.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	p.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	p.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	p.Close()
	return p
}

// Clone returns a deep copy of p.
func (p *Path) Clone() *Path {
	if p == nil {
		return &Path{}
	}
	return &Path{ops: append([]pathOp(nil), p.ops...)}
}

// Transform returns a copy of p with every point mapped through m.
// p itself is never modified.
func (p *Path) Transform(m ebiten.GeoM) *Path {
	out := p.Clone()
	for i := range out.ops {
		for j := range out.ops[i].pts {
			pt := &out.ops[i].pts[j]
			pt.X, pt.Y = m.Apply(pt.X, pt.Y)
		}
	}
	return out
}

// Bounds returns the axis-aligned bounds of the path's points, control points
// included.
func (p *Path) Bounds() Rect {
	if p.Empty() {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, op := range p.ops {
		n := op.pointCount()
		for _, pt := range op.pts[:n] {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (op pathOp) pointCount() int {
	switch op.kind {
	case opMoveTo, opLineTo:
		return 1
	case opQuadTo:
		return 2
	case opCubicTo:
		return 3
	default:
		return 0
	}
}

// Flatten converts the path into closed polygons, one per subpath.
func (p *Path) Flatten() [][]Vec2 {
	var polys [][]Vec2
	var cur []Vec2
	var last, start Vec2
	flush := func() {
		if len(cur) >= 2 {
			polys = append(polys, cur)
		}
		cur = nil
	}
	for _, op := range p.ops {
		switch op.kind {
		case opMoveTo:
			flush()
			last, start = op.pts[0], op.pts[0]
			cur = append(cur, last)
		case opLineTo:
			if cur == nil {
				cur = append(cur, last)
			}
			last = op.pts[0]
			cur = append(cur, last)
		case opQuadTo:
			if cur == nil {
				cur = append(cur, last)
			}
			p0, c, p1 := last, op.pts[0], op.pts[1]
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				mt := 1 - t
				cur = append(cur, Vec2{
					X: mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X,
					Y: mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y,
				})
			}
			last = p1
		case opCubicTo:
			if cur == nil {
				cur = append(cur, last)
			}
			p0, c1, c2, p1 := last, op.pts[0], op.pts[1], op.pts[2]
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				mt := 1 - t
				a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				cur = append(cur, Vec2{
					X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
					Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
				})
			}
			last = p1
		case opClose:
			flush()
			last = start
		}
	}
	flush()
	return polys
}

// Contains reports whether (x, y) lies inside the path using the nonzero
// winding rule. Every subpath is treated as implicitly closed.
func (p *Path) Contains(x, y float64) bool {
	if p.Empty() {
		return false
	}
	winding := 0
	for _, poly := range p.Flatten() {
		n := len(poly)
		for i := 0; i < n; i++ {
			a := poly[i]
			b := poly[(i+1)%n]
			if a.Y <= y {
				if b.Y > y && cross(a, b, x, y) > 0 {
					winding++
				}
			} else if b.Y <= y && cross(a, b, x, y) < 0 {
				winding--
			}
		}
	}
	return winding != 0
}

// cross is positive when (x, y) lies left of the directed edge a->b.
func cross(a, b Vec2, x, y float64) float64 {
	return (b.X-a.X)*(y-a.Y) - (x-a.X)*(b.Y-a.Y)
}

// vectorPath converts p into an ebiten vector.Path for filling or stroking.
func (p *Path) vectorPath() *vector.Path {
	var vp vector.Path
	for _, op := range p.ops {
		switch op.kind {
		case opMoveTo:
			vp.MoveTo(float32(op.pts[0].X), float32(op.pts[0].Y))
		case opLineTo:
			vp.LineTo(float32(op.pts[0].X), float32(op.pts[0].Y))
		case opQuadTo:
			vp.QuadTo(float32(op.pts[0].X), float32(op.pts[0].Y),
				float32(op.pts[1].X), float32(op.pts[1].Y))
		case opCubicTo:
			vp.CubicTo(float32(op.pts[0].X), float32(op.pts[0].Y),
				float32(op.pts[1].X), float32(op.pts[1].Y),
				float32(op.pts[2].X), float32(op.pts[2].Y))
		case opClose:
			vp.Close()
		}
	}
	return &vp
}
