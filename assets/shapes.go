package assets

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Span is one filled row of a shape, covering [X0, X1).
type Span struct {
	Y  int
	X0 int
	X1 int
}

var (
	shapeMu    sync.Mutex
	shapeCache = map[string]*ebiten.Image{}
)

// Shape returns a white image of the named shape, to be tinted when drawn.
// Images are cached by shape and size.
func Shape(kind string, w, h int) (*ebiten.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("assets: shape %q: invalid size %dx%d", kind, w, h)
	}
	spans, err := ShapeSpans(kind, w, h)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%dx%d", kind, w, h)
	shapeMu.Lock()
	defer shapeMu.Unlock()
	if img, ok := shapeCache[key]; ok {
		return img, nil
	}
	img := ebiten.NewImage(w, h)
	for _, s := range spans {
		vector.FillRect(img, float32(s.X0), float32(s.Y), float32(s.X1-s.X0), 1, color.White, false)
	}
	shapeCache[key] = img
	return img, nil
}

// ShapeSpans rasterizes a shape into horizontal spans.
func ShapeSpans(kind string, w, h int) ([]Span, error) {
	var width func(y float64) (float64, float64)
	fw, fh := float64(w), float64(h)
	cx := fw / 2

	switch strings.ToLower(kind) {
	case "rect", "":
		width = func(float64) (float64, float64) { return 0, fw }
	case "circle":
		r := math.Min(fw, fh) / 2
		cy := fh / 2
		width = func(y float64) (float64, float64) {
			dy := y - cy
			if math.Abs(dy) > r {
				return 0, 0
			}
			half := math.Sqrt(r*r - dy*dy)
			return cx - half, cx + half
		}
	case "triangle":
		// Points down, towards the hero.
		width = func(y float64) (float64, float64) {
			half := cx * (1 - y/fh)
			return cx - half, cx + half
		}
	case "diamond":
		cy := fh / 2
		width = func(y float64) (float64, float64) {
			half := cx * (1 - math.Abs(y-cy)/cy)
			return cx - half, cx + half
		}
	case "ship":
		// Nose up, swept wings in the lower half.
		width = func(y float64) (float64, float64) {
			t := y / fh
			half := cx * 0.35 * t
			if t > 0.5 {
				half = math.Max(half, cx*(t-0.5)*2)
			}
			return cx - half, cx + half
		}
	default:
		return nil, fmt.Errorf("assets: unknown shape %q", kind)
	}

	spans := make([]Span, 0, h)
	for y := 0; y < h; y++ {
		x0, x1 := width(float64(y) + 0.5)
		ix0 := int(math.Round(math.Max(0, x0)))
		ix1 := int(math.Round(math.Min(fw, x1)))
		if ix1 <= ix0 {
			continue
		}
		spans = append(spans, Span{Y: y, X0: ix0, X1: ix1})
	}
	return spans, nil
}
