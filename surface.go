package hive

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is the immediate-mode drawing target components render onto.
// Coordinates are canvas pixels with the origin at the top-left.
type Surface interface {
	Size() (width, height int)
	Clear()
	// Save pushes the current style; Restore pops it.
	Save()
	Restore()
	SetStyle(st Style)
	Fill(p *Path)
	Stroke(p *Path)
	// FillText and StrokeText draw s with (x, y) at the top of the first
	// line; the style's Align positions the line horizontally around x.
	FillText(s string, x, y float64)
	StrokeText(s string, x, y float64)
	DrawImage(img *ebiten.Image, x, y, w, h float64)
}

var (
	whiteOnce  sync.Once
	whiteImage *ebiten.Image
	whiteSub   *ebiten.Image
)

// whiteSource returns a 1x1 opaque white region for untextured triangles.
// The region is cut from the middle of a 3x3 image so linear filtering never
// samples a transparent edge.
func whiteSource() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// EbitenSurface draws onto an ebiten image.
type EbitenSurface struct {
	// Background is what Clear fills with. Transparent clears to nothing.
	Background Color

	dst   *ebiten.Image
	style Style
	stack []Style

	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenSurface returns a surface drawing onto dst.
func NewEbitenSurface(dst *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{dst: dst, style: DefaultStyle}
}

// Bind retargets the surface, typically to the screen passed to Draw.
func (s *EbitenSurface) Bind(dst *ebiten.Image) {
	s.dst = dst
}

// Target returns the image currently drawn onto.
func (s *EbitenSurface) Target() *ebiten.Image {
	return s.dst
}

func (s *EbitenSurface) Size() (int, int) {
	if s.dst == nil {
		return 0, 0
	}
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) Clear() {
	if s.dst == nil {
		return
	}
	if s.Background.A > 0 {
		s.dst.Fill(s.Background.RGBA())
		return
	}
	s.dst.Clear()
}

func (s *EbitenSurface) Save() {
	s.stack = append(s.stack, s.style)
}

func (s *EbitenSurface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	s.style = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

func (s *EbitenSurface) SetStyle(st Style) {
	s.style = st
}

// Fill fills p with the nonzero winding rule. A shadow, if set, is drawn
// first at the shadow offset. Blur is not rendered.
func (s *EbitenSurface) Fill(p *Path) {
	if s.dst == nil || p.Empty() {
		return
	}
	vp := p.vectorPath()
	s.verts, s.inds = vp.AppendVerticesAndIndicesForFilling(s.verts[:0], s.inds[:0])
	if s.style.hasShadow() {
		s.drawTriangles(s.style.Shadow, s.style.ShadowOffsetX, s.style.ShadowOffsetY, ebiten.FillRuleNonZero)
	}
	s.drawTriangles(s.style.Fill, 0, 0, ebiten.FillRuleNonZero)
}

// Stroke outlines p with the style's stroke color and line width.
func (s *EbitenSurface) Stroke(p *Path) {
	if s.dst == nil || p.Empty() || s.style.LineWidth <= 0 {
		return
	}
	vp := p.vectorPath()
	s.verts, s.inds = vp.AppendVerticesAndIndicesForStroke(s.verts[:0], s.inds[:0], &vector.StrokeOptions{
		Width:    float32(s.style.LineWidth),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	s.drawTriangles(s.style.Stroke, 0, 0, ebiten.FillRuleFillAll)
}

func (s *EbitenSurface) drawTriangles(c Color, dx, dy float64, rule ebiten.FillRule) {
	if len(s.inds) == 0 {
		return
	}
	r, g, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	for i := range s.verts {
		v := &s.verts[i]
		v.DstX += float32(dx)
		v.DstY += float32(dy)
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: rule, AntiAlias: true}
	s.dst.DrawTriangles(s.verts, s.inds, whiteSource(), op)
	if dx != 0 || dy != 0 {
		for i := range s.verts {
			s.verts[i].DstX -= float32(dx)
			s.verts[i].DstY -= float32(dy)
		}
	}
}

func (s *EbitenSurface) FillText(str string, x, y float64) {
	if s.style.hasShadow() {
		s.drawText(str, x+s.style.ShadowOffsetX, y+s.style.ShadowOffsetY, s.style.Shadow)
	}
	s.drawText(str, x, y, s.style.Fill)
}

// StrokeText approximates an outline by drawing the text at eight offsets
// around (x, y), LineWidth pixels away (at least one).
func (s *EbitenSurface) StrokeText(str string, x, y float64) {
	w := max(s.style.LineWidth, 1)
	for _, d := range outlineOffsets {
		s.drawText(str, x+d.X*w, y+d.Y*w, s.style.Stroke)
	}
}

var outlineOffsets = [8]Vec2{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func (s *EbitenSurface) drawText(str string, x, y float64, c Color) {
	if s.dst == nil || c.A <= 0 {
		return
	}
	face := faceFor(s.style)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale = c.ColorScale()
	op.LineSpacing = lineSpacing(face)
	switch s.style.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	text.Draw(s.dst, str, face, op)
}

// DrawImage draws img stretched to the rectangle (x, y, w, h).
func (s *EbitenSurface) DrawImage(img *ebiten.Image, x, y, w, h float64) {
	if s.dst == nil || img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
}
