package hive

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// SVGShape is the geometry extracted from an SVG document: its declared size
// and the first <path> element, mapped from viewBox space into that size.
type SVGShape struct {
	Width, Height float64
	Path          *Path
	// Fill is the path's fill attribute; black when absent, transparent for
	// "none".
	Fill Color
}

// ParseSVG reads the root width/height (falling back to the viewBox) and the
// first path's "d" attribute.
func ParseSVG(data []byte) (*SVGShape, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		shape = SVGShape{Fill: ColorBlack}
		root  *svgRoot
		pathD string
	)
	for pathD == "" {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("hive: parse svg: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "svg":
			if root == nil {
				root = readSVGRoot(se)
			}
		case "path":
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "d":
					pathD = a.Value
				case "fill":
					if c, ok := ParseHexColor(a.Value); ok {
						shape.Fill = c
					}
				}
			}
		}
	}
	if root == nil {
		return nil, errors.New("hive: parse svg: no <svg> root element")
	}
	if pathD == "" {
		return nil, errors.New("hive: parse svg: no <path> element")
	}
	size, err := root.size()
	if err != nil {
		return nil, err
	}
	shape.Width, shape.Height = size.Width, size.Height

	p, err := ParsePathData(pathD)
	if err != nil {
		return nil, err
	}
	if vb := root.viewBox; len(vb) == 4 && vb[2] > 0 && vb[3] > 0 {
		var m ebiten.GeoM
		m.Translate(-vb[0], -vb[1])
		m.Scale(shape.Width/vb[2], shape.Height/vb[3])
		p = p.Transform(m)
	}
	shape.Path = p
	return &shape, nil
}

// SVGSize returns the document's declared size without looking at its
// content.
func SVGSize(data []byte) (Size, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return Size{}, errors.New("hive: parse svg: no <svg> root element")
		}
		if err != nil {
			return Size{}, fmt.Errorf("hive: parse svg: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "svg" {
			return readSVGRoot(se).size()
		}
	}
}

type svgRoot struct {
	width, height float64
	viewBox       []float64
}

func readSVGRoot(se xml.StartElement) *svgRoot {
	r := &svgRoot{}
	for _, a := range se.Attr {
		switch a.Name.Local {
		case "width":
			r.width = parseLength(a.Value)
		case "height":
			r.height = parseLength(a.Value)
		case "viewBox":
			r.viewBox = parseNumberList(a.Value)
		}
	}
	return r
}

// size falls back to the viewBox for a missing width or height.
func (r *svgRoot) size() (Size, error) {
	w, h := r.width, r.height
	if len(r.viewBox) == 4 {
		if w == 0 {
			w = r.viewBox[2]
		}
		if h == 0 {
			h = r.viewBox[3]
		}
	}
	if w <= 0 || h <= 0 {
		return Size{}, errors.New("hive: parse svg: missing width/height")
	}
	return Size{Width: w, Height: h}, nil
}

// ParseHexColor parses "#rgb", "#rrggbb" or "none".
func ParseHexColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "none" {
		return ColorTransparent, true
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, true
}

// parseLength parses an SVG length, ignoring a trailing unit such as "px".
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	end := len(s)
	for end > 0 && (s[end-1] < '0' || s[end-1] > '9') && s[end-1] != '.' {
		end--
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

func parseNumberList(s string) []float64 {
	sc := pathScanner{s: s}
	var out []float64
	for {
		v, ok := sc.number()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// ParsePathData parses SVG path data ("M10 10 L20 20 Z"). Elliptical arcs are
// converted to cubic segments of at most a quarter turn each.
func ParsePathData(d string) (*Path, error) {
	sc := pathScanner{s: d}
	p := &Path{}
	var (
		cmd             byte
		cur, start      Vec2
		lastCtrl        Vec2
		lastCmd         byte
		haveCurrentPath bool
	)
	for {
		sc.skipSeparators()
		if sc.eof() {
			break
		}
		if c := sc.peek(); isCommand(c) {
			cmd = c
			sc.pos++
		} else if cmd == 0 {
			return nil, fmt.Errorf("hive: path data: expected command at offset %d", sc.pos)
		}

		rel := cmd >= 'a' && cmd <= 'z'
		var base Vec2
		if rel {
			base = cur
		}
		upper := cmd &^ 0x20

		switch upper {
		case 'M':
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			p.MoveTo(pt.X, pt.Y)
			cur, start = pt, pt
			haveCurrentPath = true
			// Subsequent pairs are implicit LineTo commands.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			p.LineTo(pt.X, pt.Y)
			cur = pt
		case 'H':
			x, ok := sc.number()
			if !ok {
				return nil, sc.errorf("H")
			}
			if rel {
				x += cur.X
			}
			cur.X = x
			p.LineTo(cur.X, cur.Y)
		case 'V':
			y, ok := sc.number()
			if !ok {
				return nil, sc.errorf("V")
			}
			if rel {
				y += cur.Y
			}
			cur.Y = y
			p.LineTo(cur.X, cur.Y)
		case 'C':
			pts, err := sc.points(base, 3)
			if err != nil {
				return nil, err
			}
			p.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			lastCtrl, cur = pts[1], pts[2]
		case 'S':
			pts, err := sc.points(base, 2)
			if err != nil {
				return nil, err
			}
			c1 := cur
			if lc := lastCmd &^ 0x20; lc == 'C' || lc == 'S' {
				c1 = Vec2{2*cur.X - lastCtrl.X, 2*cur.Y - lastCtrl.Y}
			}
			p.CubicTo(c1.X, c1.Y, pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
			lastCtrl, cur = pts[0], pts[1]
		case 'Q':
			pts, err := sc.points(base, 2)
			if err != nil {
				return nil, err
			}
			p.QuadTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
			lastCtrl, cur = pts[0], pts[1]
		case 'T':
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			c := cur
			if lc := lastCmd &^ 0x20; lc == 'Q' || lc == 'T' {
				c = Vec2{2*cur.X - lastCtrl.X, 2*cur.Y - lastCtrl.Y}
			}
			p.QuadTo(c.X, c.Y, pt.X, pt.Y)
			lastCtrl, cur = c, pt
		case 'A':
			// rx ry x-axis-rotation large-arc-flag sweep-flag x y
			var arg [3]float64
			for i := range arg {
				v, ok := sc.number()
				if !ok {
					return nil, sc.errorf("A")
				}
				arg[i] = v
			}
			large, ok := sc.flag()
			if !ok {
				return nil, sc.errorf("arc flag")
			}
			sweep, ok := sc.flag()
			if !ok {
				return nil, sc.errorf("arc flag")
			}
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			arcTo(p, cur, arg[0], arg[1], arg[2], large, sweep, pt)
			cur = pt
		case 'Z':
			p.Close()
			cur = start
		default:
			return nil, fmt.Errorf("hive: path data: unsupported command %q", cmd)
		}
		lastCmd = cmd
		if upper == 'Z' {
			// Z takes no arguments; require an explicit command next.
			cmd = 0
			lastCmd = 'Z'
		}
	}
	if !haveCurrentPath {
		return nil, errors.New("hive: path data: no moveto")
	}
	return p, nil
}

// arcTo appends the SVG endpoint arc from -> to as cubic Beziers, converting
// to centre form first. Radii too small to reach the end point are scaled up.
func arcTo(p *Path, from Vec2, rx, ry, rotDeg float64, large, sweep bool, to Vec2) {
	if from == to {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(to.X, to.Y)
		return
	}
	sinPhi, cosPhi := math.Sincos(rotDeg * math.Pi / 180)

	dx, dy := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy
	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx, ry = rx*s, ry*s
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1*y1 - ry2*x1*x1
	den := rx2*y1*y1 + ry2*x1*x1
	coef := 0.0
	if den > 0 {
		coef = math.Sqrt(max(0, num/den))
	}
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	cx := cosPhi*cx1 - sinPhi*cy1 + (from.X+to.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (from.Y+to.Y)/2

	theta := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	delta := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx) - theta
	switch {
	case sweep && delta < 0:
		delta += 2 * math.Pi
	case !sweep && delta > 0:
		delta -= 2 * math.Pi
	}

	// Maps a point on the unit circle onto the ellipse.
	ellipse := func(u, v float64) Vec2 {
		return Vec2{
			X: cx + rx*u*cosPhi - ry*v*sinPhi,
			Y: cy + rx*u*sinPhi + ry*v*cosPhi,
		}
	}
	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := range n {
		a0 := theta + float64(i)*step
		a1 := a0 + step
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)
		p1 := ellipse(c0-k*s0, s0+k*c0)
		p2 := ellipse(c1+k*s1, s1-k*c1)
		end := ellipse(c1, s1)
		if i == n-1 {
			end = to
		}
		p.CubicTo(p1.X, p1.Y, p2.X, p2.Y, end.X, end.Y)
	}
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0
}

type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) eof() bool  { return sc.pos >= len(sc.s) }
func (sc *pathScanner) peek() byte { return sc.s[sc.pos] }

func (sc *pathScanner) skipSeparators() {
	for !sc.eof() {
		switch sc.peek() {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

// number scans one floating point number, including forms such as "-.5e3"
// and the run-together "1.5.5" (two numbers).
func (sc *pathScanner) number() (float64, bool) {
	sc.skipSeparators()
	start := sc.pos
	if !sc.eof() && (sc.peek() == '-' || sc.peek() == '+') {
		sc.pos++
	}
	digits, dot := false, false
scan:
	for !sc.eof() {
		c := sc.peek()
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' && !dot:
			dot = true
		case (c == 'e' || c == 'E') && digits:
			if sc.pos+1 < len(sc.s) && (sc.s[sc.pos+1] == '-' || sc.s[sc.pos+1] == '+') {
				sc.pos++
			}
		default:
			break scan
		}
		sc.pos++
	}
	if !digits {
		sc.pos = start
		return 0, false
	}
	v, err := strconv.ParseFloat(sc.s[start:sc.pos], 64)
	if err != nil || math.IsNaN(v) {
		sc.pos = start
		return 0, false
	}
	return v, true
}

// flag scans a single arc flag digit. Flags may run into the next number
// ("a5 5 0 1010 10").
func (sc *pathScanner) flag() (bool, bool) {
	sc.skipSeparators()
	if sc.eof() {
		return false, false
	}
	switch sc.peek() {
	case '0':
		sc.pos++
		return false, true
	case '1':
		sc.pos++
		return true, true
	}
	return false, false
}

func (sc *pathScanner) point(base Vec2) (Vec2, error) {
	x, ok := sc.number()
	if !ok {
		return Vec2{}, sc.errorf("coordinate")
	}
	y, ok := sc.number()
	if !ok {
		return Vec2{}, sc.errorf("coordinate")
	}
	return Vec2{X: base.X + x, Y: base.Y + y}, nil
}

func (sc *pathScanner) points(base Vec2, n int) ([]Vec2, error) {
	pts := make([]Vec2, n)
	for i := range pts {
		pt, err := sc.point(base)
		if err != nil {
			return nil, err
		}
		pts[i] = pt
	}
	return pts, nil
}

func (sc *pathScanner) errorf(what string) error {
	return fmt.Errorf("hive: path data: bad %s at offset %d", what, sc.pos)
}
