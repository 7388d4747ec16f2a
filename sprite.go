package hive

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// SpriteData is the payload of a TypeSprite component.
type SpriteData struct {
	Image  *ebiten.Image
	Source string
	// Original is the decoded (or SVG-declared) size before scaling.
	Original Size
	Scale    float64
}

// SpriteOptions configures AddSprite.
type SpriteOptions struct {
	X, Y       float64
	ZIndex     int
	Scale      ScaleOptions
	AutoDomain bool
}

func (c *Component) renderSprite(s Surface) {
	if c.Sprite == nil || c.Sprite.Image == nil {
		return
	}
	s.DrawImage(c.Sprite.Image, c.X, c.Y, c.Width, c.Height)
}

// isSVG reports whether src names an SVG document.
func isSVG(src string) bool {
	return strings.EqualFold(path.Ext(src), ".svg")
}

// spriteSource is a decoded but not yet uploaded sprite image.
type spriteSource struct {
	raster image.Image
	svg    *oksvg.SvgIcon
	size   Size
}

// decodeSprite parses PNG, JPEG or SVG bytes. It does not touch ebiten and is
// safe to call off the loop thread.
func decodeSprite(src string, data []byte) (*spriteSource, error) {
	if isSVG(src) {
		size, err := SVGSize(data)
		if err != nil {
			return nil, err
		}
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
		if err != nil {
			return nil, fmt.Errorf("hive: decode svg %q: %w", src, err)
		}
		if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
			icon.ViewBox.W, icon.ViewBox.H = size.Width, size.Height
		}
		return &spriteSource{svg: icon, size: size}, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("hive: decode image %q: %w", src, err)
	}
	b := img.Bounds()
	return &spriteSource{raster: img, size: Size{Width: float64(b.Dx()), Height: float64(b.Dy())}}, nil
}

// build uploads the sprite at its scaled size. SVG documents are rasterized
// at the final size so they stay crisp.
func (s *spriteSource) build(src string, canvas Size, opts ScaleOptions) (*SpriteData, Size) {
	size, k := scaleFor(s.size, canvas, opts)
	data := &SpriteData{Source: src, Original: s.size, Scale: k}
	if s.svg != nil {
		data.Image = ebiten.NewImageFromImage(rasterizeSVG(s.svg, size))
	} else {
		data.Image = ebiten.NewImageFromImage(s.raster)
	}
	return data, size
}

// scaleFor applies ScaleObject to a copy of orig. The multiplier is 1 when
// the size did not change.
func scaleFor(orig, canvas Size, opts ScaleOptions) (Size, float64) {
	size := orig
	k := ScaleObject(&size, canvas, opts)
	if size == orig {
		k = 1
	}
	return size, k
}

// rasterizeSVG draws every element of the document, stretched from its
// viewBox onto an image of the given size.
func rasterizeSVG(icon *oksvg.SvgIcon, size Size) *image.RGBA {
	w := max(1, int(math.Ceil(size.Width)))
	h := max(1, int(math.Ceil(size.Height)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	icon.SetTarget(0, 0, size.Width, size.Height)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img
}
