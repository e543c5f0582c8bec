package render

import (
	"github.com/taigrr/swrender/pkg/math3d"
	"github.com/taigrr/swrender/pkg/tga"
)

// edgeCoeffs returns A, B, C for the edge function
// E(x, y) = A*x + B*y + C = (b - a) × (p - a).
// E is positive on the left of a→b, negative on the right and zero on it.
func edgeCoeffs(a, b math3d.Vec2i) (A, B, C int) {
	A = a.Y - b.Y
	B = b.X - a.X
	C = a.X*b.Y - b.X*a.Y
	return
}

// coverFunc is called for every pixel inside a triangle with the unnormalized
// barycentric weights of the three vertices and their sum (twice the signed
// area).
type coverFunc func(x, y int, w [3]int, area int) error

// cover walks the pixels of clip that lie inside triangle (a, b, c),
// boundary included. Weights are exact integers, so coverage does not depend
// on vertex order. Collinear triangles cover nothing.
func cover(a, b, c math3d.Vec2i, clip math3d.BBox2i, fn coverFunc) error {
	area := (b.Sub(a)).Cross(c.Sub(a))
	if area == 0 {
		return nil
	}

	box := math3d.EmptyBBox2i()
	box.AddPoint(a)
	box.AddPoint(b)
	box.AddPoint(c)
	box = box.Intersect(clip)
	if box.IsEmpty() {
		return nil
	}

	// w[0] is opposite a, w[1] opposite b, w[2] opposite c.
	var A, B, C [3]int
	A[0], B[0], C[0] = edgeCoeffs(b, c)
	A[1], B[1], C[1] = edgeCoeffs(c, a)
	A[2], B[2], C[2] = edgeCoeffs(a, b)

	sign := 1
	if area < 0 {
		sign = -1
	}

	for y := box.Min.Y; y <= box.Max.Y; y++ {
		var w [3]int
		for i := range 3 {
			w[i] = A[i]*box.Min.X + B[i]*y + C[i]
		}
		for x := box.Min.X; x <= box.Max.X; x++ {
			if w[0]*sign >= 0 && w[1]*sign >= 0 && w[2]*sign >= 0 {
				if err := fn(x, y, w, area); err != nil {
					return err
				}
			}
			for i := range 3 {
				w[i] += A[i]
			}
		}
	}
	return nil
}

// weights normalizes integer barycentric weights.
func weights(w [3]int, area int) math3d.Vec3 {
	inv := 1 / float32(area)
	return math3d.Vec3{
		X: float32(w[0]) * inv,
		Y: float32(w[1]) * inv,
		Z: float32(w[2]) * inv,
	}
}

// imageBox returns the inclusive pixel bounds of img.
func imageBox(img *tga.Image) math3d.BBox2i {
	return math3d.NewBBox2i(math3d.V2i(0, 0), math3d.V2i(img.Width()-1, img.Height()-1))
}

// DrawTriangle fills a screen-space triangle with a solid color. Pixels on
// the edges are included and the result does not depend on winding. A
// triangle whose vertices share one row or one column is drawn as that pixel
// run; any other collinear triangle draws nothing.
func DrawTriangle(img *tga.Image, v1, v2, v3 math3d.Vec2i, c tga.Color) error {
	if img.IsEmpty() {
		return tga.ErrEmptyImage
	}
	clip := imageBox(img)

	if v1.Y == v2.Y && v2.Y == v3.Y {
		return fillRun(img, clip, math3d.V2i(min(v1.X, v2.X, v3.X), v1.Y), math3d.V2i(max(v1.X, v2.X, v3.X), v1.Y), c)
	}
	if v1.X == v2.X && v2.X == v3.X {
		return fillRun(img, clip, math3d.V2i(v1.X, min(v1.Y, v2.Y, v3.Y)), math3d.V2i(v1.X, max(v1.Y, v2.Y, v3.Y)), c)
	}

	return cover(v1, v2, v3, clip, func(x, y int, _ [3]int, _ int) error {
		return img.SetPixel(x, y, c)
	})
}

// fillRun fills the axis-aligned pixel run from lo to hi inclusive.
func fillRun(img *tga.Image, clip math3d.BBox2i, lo, hi math3d.Vec2i, c tga.Color) error {
	box := math3d.NewBBox2i(lo, hi).Intersect(clip)
	if box.IsEmpty() {
		return nil
	}
	for y := box.Min.Y; y <= box.Max.Y; y++ {
		for x := box.Min.X; x <= box.Max.X; x++ {
			if err := img.SetPixel(x, y, c); err != nil {
				return err
			}
		}
	}
	return nil
}
