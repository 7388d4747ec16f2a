package hive

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestRectPathContains(t *testing.T) {
	p := RectPath(10, 10, 100, 50)
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"center", 60, 35, true},
		{"near corner", 11, 11, true},
		{"left", 5, 35, false},
		{"below", 60, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestCirclePathContains(t *testing.T) {
	p := CirclePath(50, 50, 20)
	if !p.Contains(50, 50) {
		t.Error("center not inside")
	}
	if !p.Contains(64, 50) {
		t.Error("point at 0.7r not inside")
	}
	// Inside the bounding box but outside the circle.
	if p.Contains(67, 67) {
		t.Error("bounding-box corner inside")
	}
}

func TestPathNonZeroWinding(t *testing.T) {
	// Two overlapping squares wound the same way: the overlap stays filled.
	p := RectPath(0, 0, 20, 20)
	sq := RectPath(10, 10, 20, 20)
	p.ops = append(p.ops, sq.ops...)
	if !p.Contains(15, 15) {
		t.Error("overlap not inside")
	}
	if !p.Contains(25, 25) || !p.Contains(5, 5) {
		t.Error("squares not inside")
	}
}

func TestPathEmpty(t *testing.T) {
	var nilPath *Path
	if !nilPath.Empty() || !(&Path{}).Empty() {
		t.Error("Empty false for empty paths")
	}
	if nilPath.Contains(0, 0) {
		t.Error("nil path contains a point")
	}
	if RectPath(0, 0, 1, 1).Empty() {
		t.Error("rect path empty")
	}
}

func TestPathBounds(t *testing.T) {
	b := CirclePath(50, 40, 10).Bounds()
	if math.Abs(b.X-40) > 1e-9 || math.Abs(b.Y-30) > 1e-9 ||
		math.Abs(b.Width-20) > 1e-9 || math.Abs(b.Height-20) > 1e-9 {
		t.Errorf("Bounds = %v, want {40 30 20 20}", b)
	}
	if (&Path{}).Bounds() != (Rect{}) {
		t.Error("empty path bounds not zero")
	}
}

func TestPathTransformDoesNotModifyOriginal(t *testing.T) {
	p := RectPath(0, 0, 10, 10)
	var m ebiten.GeoM
	m.Scale(2, 2)
	m.Translate(5, 5)
	q := p.Transform(m)

	if got := p.Bounds(); got != (Rect{0, 0, 10, 10}) {
		t.Errorf("original bounds = %v", got)
	}
	if got := q.Bounds(); got != (Rect{5, 5, 20, 20}) {
		t.Errorf("transformed bounds = %v, want {5 5 20 20}", got)
	}
}

func TestPathFlatten(t *testing.T) {
	polys := RectPath(0, 0, 10, 10).Flatten()
	if len(polys) != 1 || len(polys[0]) != 4 {
		t.Fatalf("Flatten = %v, want one 4-point polygon", polys)
	}

	var p Path
	p.MoveTo(0, 0)
	p.QuadTo(5, 10, 10, 0)
	p.Close()
	polys = p.Flatten()
	if len(polys) != 1 || len(polys[0]) != curveSegments+1 {
		t.Errorf("quad flattened to %d points, want %d", len(polys[0]), curveSegments+1)
	}
}
