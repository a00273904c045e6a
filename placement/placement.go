// Package placement hides an object image on a background image at a random
// position restricted to one quadrant, one half or the whole background.
package placement

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"golang.org/x/image/draw"
)

// Size is an image width and height in pixels.
type Size struct {
	W, H int
}

func SizeOf(img image.Image) Size {
	b := img.Bounds()
	return Size{W: b.Dx(), H: b.Dy()}
}

// NewRand returns a generator seeded with seed. Placements drawn from
// generators built with the same seed are identical.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ScaledSize returns orig scaled to width pixels with its aspect
// ratio kept. The height is truncated toward zero.
func ScaledSize(orig Size, width int) Size {
	if orig.W == 0 {
		return Size{}
	}
	return Size{W: width, H: width * orig.H / orig.W}
}

// Resize scales img to the given width, keeping its aspect ratio.
func Resize(img image.Image, width int) *image.RGBA {
	sz := ScaledSize(SizeOf(img), width)
	dst := image.NewRGBA(image.Rect(0, 0, sz.W, sz.H))
	if sz.W == 0 || sz.H == 0 {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Result describes one placement.
type Result struct {
	Image  *image.RGBA
	At     image.Point
	Object Size
	X, Y   Range
}

// Place resizes obj to fraction of the background width and composites it
// onto a copy of bg at a random top-left point inside region. Transparent
// object pixels leave the background untouched. bg is never modified.
//
// x is drawn before y from rng. A nil rng is replaced by a time-seeded one.
func Place(obj, bg image.Image, region Region, fraction float64, rng *rand.Rand) (*image.RGBA, image.Point, error) {
	res, err := PlaceResult(obj, bg, region, fraction, rng)
	if err != nil {
		return nil, image.Point{}, err
	}
	return res.Image, res.At, nil
}

// PlaceResult is Place returning the resolved ranges and object size along
// with the composite.
func PlaceResult(obj, bg image.Image, region Region, fraction float64, rng *rand.Rand) (*Result, error) {
	if fraction <= 0 || fraction > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFraction, fraction)
	}
	bgSize := SizeOf(bg)
	objSize := ScaledSize(SizeOf(obj), int(float64(bgSize.W)*fraction))
	if objSize.W <= 0 || objSize.H <= 0 {
		return nil, fmt.Errorf("%w: object would be %dx%d", ErrInvalidFraction, objSize.W, objSize.H)
	}

	xr, yr, err := Bounds(region, bgSize, objSize)
	if err != nil {
		return nil, err
	}

	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}
	at := image.Point{X: intIn(rng, xr), Y: intIn(rng, yr)}

	resized := Resize(obj, objSize.W)
	return &Result{
		Image:  Composite(bg, resized, at),
		At:     at,
		Object: objSize,
		X:      xr,
		Y:      yr,
	}, nil
}

// Composite returns a copy of bg with obj drawn over it with its top-left
// corner at at.
func Composite(bg, obj image.Image, at image.Point) *image.RGBA {
	bb := bg.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	draw.Draw(out, out.Bounds(), bg, bb.Min, draw.Src)

	ob := obj.Bounds()
	dst := image.Rectangle{Min: at, Max: at.Add(ob.Size())}
	draw.Draw(out, dst, obj, ob.Min, draw.Over)
	return out
}

func intIn(rng *rand.Rand, r Range) int {
	return r.Low + rng.Intn(r.High-r.Low+1)
}
