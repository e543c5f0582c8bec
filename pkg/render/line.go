package render

import (
	"iter"

	"github.com/taigrr/swrender/pkg/math3d"
	"github.com/taigrr/swrender/pkg/tga"
)

// LinePoints yields the pixels of the 8-connected line between two endpoints,
// both included. The endpoints are normalized so that the same set of pixels
// is produced whichever endpoint comes first.
func LinePoints(x0, y0, x1, y1 int) iter.Seq[math3d.Vec2i] {
	return func(yield func(math3d.Vec2i) bool) {
		steep := false
		if abs(x1-x0) < abs(y1-y0) {
			x0, y0 = y0, x0
			x1, y1 = y1, x1
			steep = true
		}
		if x1 < x0 {
			x0, x1 = x1, x0
			y0, y1 = y1, y0
		}

		dx := x1 - x0
		dy := y1 - y0
		incy := 1
		if dy < 0 {
			incy = -1
		}
		dacc := abs(dy) * 2
		acc := 0
		y := y0
		for x := x0; x <= x1; x++ {
			p := math3d.Vec2i{X: x, Y: y}
			if steep {
				p = math3d.Vec2i{X: y, Y: x}
			}
			if !yield(p) {
				return
			}
			acc += dacc
			if acc > dx {
				y += incy
				acc -= dx * 2
			}
		}
	}
}

// DrawLine draws the line between (x0, y0) and (x1, y1) inclusive. It stops
// at the first pixel outside the image and returns that error.
func DrawLine(img *tga.Image, x0, y0, x1, y1 int, c tga.Color) error {
	for p := range LinePoints(x0, y0, x1, y1) {
		if err := img.SetPixel(p.X, p.Y, c); err != nil {
			return err
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
