package hive

import "math/rand/v2"

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// ScaleMode selects how ScaleObject derives its multiplier from ScaleFactor.
type ScaleMode uint8

const (
	// ScaleCombined normalizes against the summed canvas and object dimensions.
	ScaleCombined ScaleMode = iota
	// ScaleLongest anchors on the object's longer axis.
	ScaleLongest
	// ScaleShortest anchors on the object's shorter axis.
	ScaleShortest
)

// ScaleOptions configures ScaleObject.
type ScaleOptions struct {
	// ScaleFactor is the requested fraction of the canvas. Zero disables
	// scaling unless FitToCanvas is set.
	ScaleFactor float64
	ScaleTo     ScaleMode
	// FitToCanvas makes the object's dominant dimension match the canvas
	// exactly. The canvas aspect ratio picks the dimension: a canvas at least
	// as wide as it is tall fits width, otherwise height. ScaleFactor is ignored.
	FitToCanvas bool
}

// ScaleObject computes a single multiplier for obj relative to canvas and
// scales obj in place by it. Both axes always share the multiplier, so the
// object's aspect ratio is preserved.
//
// If either intrinsic dimension is unknown (zero), obj is left untouched and
// the raw ScaleFactor is returned.
func ScaleObject(obj *Size, canvas Size, opts ScaleOptions) float64 {
	if obj.Width == 0 || obj.Height == 0 {
		return opts.ScaleFactor
	}

	var k float64
	switch {
	case opts.FitToCanvas:
		if canvas.Width >= canvas.Height {
			k = canvas.Width / obj.Width
		} else {
			k = canvas.Height / obj.Height
		}
	case opts.ScaleFactor == 0:
		return 1
	case opts.ScaleTo == ScaleLongest, opts.ScaleTo == ScaleShortest:
		widthAnchor := obj.Width >= obj.Height
		if opts.ScaleTo == ScaleShortest {
			widthAnchor = !widthAnchor
		}
		if widthAnchor {
			k = opts.ScaleFactor * canvas.Width / obj.Width
		} else {
			k = opts.ScaleFactor * canvas.Height / obj.Height
		}
	default:
		k = opts.ScaleFactor * (canvas.Width + canvas.Height) / (obj.Width + obj.Height)
	}

	obj.Width *= k
	obj.Height *= k
	return k
}

// RandomInt returns a uniform random integer in [lo, hi], both inclusive.
// Reversed bounds are swapped.
func RandomInt(lo, hi int) int {
	return randomInt(nil, lo, hi)
}

// randomInt draws from r, or from the global source when r is nil.
func randomInt(r *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	n := hi - lo + 1
	if r != nil {
		return lo + r.IntN(n)
	}
	return lo + rand.IntN(n)
}
