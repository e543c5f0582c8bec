package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/taigrr/swrender/pkg/math3d"
	"github.com/taigrr/swrender/pkg/tga"
)

func countLit(img *tga.Image) int {
	n := 0
	for y := range img.Height() {
		for x := range img.Width() {
			c, _ := img.GetPixel(x, y)
			if c.V[0] != 0 || c.V[1] != 0 || c.V[2] != 0 {
				n++
			}
		}
	}
	return n
}

func TestDrawTriangleWindingInvariant(t *testing.T) {
	tris := [][3]math3d.Vec2i{
		{{X: 2, Y: 3}, {X: 25, Y: 7}, {X: 11, Y: 28}},
		{{X: 0, Y: 0}, {X: 31, Y: 1}, {X: 30, Y: 2}},
		{{X: -5, Y: 10}, {X: 40, Y: 12}, {X: 16, Y: 35}},
	}
	perms := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	for i, tri := range tris {
		ref := newTestImage(t, 32, 32)
		if err := DrawTriangle(ref, tri[0], tri[1], tri[2], tga.White); err != nil {
			t.Fatal(err)
		}
		if countLit(ref) == 0 {
			t.Errorf("triangle %d drew nothing", i)
		}
		for _, p := range perms[1:] {
			img := newTestImage(t, 32, 32)
			if err := DrawTriangle(img, tri[p[0]], tri[p[1]], tri[p[2]], tga.White); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(ref.Bytes(), img.Bytes()) {
				t.Errorf("triangle %d with order %v differs", i, p)
			}
		}
	}
}

func TestDrawTriangleTilesSquare(t *testing.T) {
	const n = 12
	v00 := math3d.V2i(0, 0)
	vn0 := math3d.V2i(n, 0)
	vnn := math3d.V2i(n, n)
	v0n := math3d.V2i(0, n)

	tests := []struct {
		name   string
		tri    [3]math3d.Vec2i
		inside func(x, y int) bool
	}{
		{"below diagonal", [3]math3d.Vec2i{v00, vn0, vnn}, func(x, y int) bool { return x >= y }},
		{"above diagonal", [3]math3d.Vec2i{v00, vnn, v0n}, func(x, y int) bool { return y >= x }},
		{"above anti-diagonal", [3]math3d.Vec2i{vn0, vnn, v0n}, func(x, y int) bool { return x+y >= n }},
		{"below anti-diagonal", [3]math3d.Vec2i{v00, vn0, v0n}, func(x, y int) bool { return x+y <= n }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img := newTestImage(t, n+1, n+1)
			if err := DrawTriangle(img, tc.tri[0], tc.tri[1], tc.tri[2], tga.White); err != nil {
				t.Fatal(err)
			}
			for y := 0; y <= n; y++ {
				for x := 0; x <= n; x++ {
					c, _ := img.GetPixel(x, y)
					if got := c.V[0] == 255; got != tc.inside(x, y) {
						t.Errorf("pixel (%d,%d) covered=%v", x, y, got)
					}
				}
			}
		})
	}

	// Opposite halves together cover every pixel of the square.
	img := newTestImage(t, n+1, n+1)
	_ = DrawTriangle(img, v00, vn0, vnn, tga.White)
	_ = DrawTriangle(img, v00, vnn, v0n, tga.White)
	if got := countLit(img); got != (n+1)*(n+1) {
		t.Errorf("halves cover %d pixels, want %d", got, (n+1)*(n+1))
	}
}

func TestDrawTriangleDegenerate(t *testing.T) {
	tests := []struct {
		name string
		tri  [3]math3d.Vec2i
		want int
	}{
		{"horizontal run", [3]math3d.Vec2i{{X: 2, Y: 4}, {X: 7, Y: 4}, {X: 5, Y: 4}}, 6},
		{"vertical run", [3]math3d.Vec2i{{X: 3, Y: 1}, {X: 3, Y: 6}, {X: 3, Y: 2}}, 6},
		{"single point", [3]math3d.Vec2i{{X: 3, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 3}}, 1},
		{"diagonal collinear", [3]math3d.Vec2i{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 5, Y: 5}}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img := newTestImage(t, 10, 10)
			if err := DrawTriangle(img, tc.tri[0], tc.tri[1], tc.tri[2], tga.White); err != nil {
				t.Fatal(err)
			}
			if got := countLit(img); got != tc.want {
				t.Errorf("lit %d pixels, want %d", got, tc.want)
			}
		})
	}
}

func TestDrawTriangleClipped(t *testing.T) {
	img := newTestImage(t, 8, 8)
	err := DrawTriangle(img, math3d.V2i(-20, -20), math3d.V2i(40, -20), math3d.V2i(-20, 40), tga.White)
	if err != nil {
		t.Fatalf("DrawTriangle: %v", err)
	}
	if got := countLit(img); got != 64 {
		t.Errorf("lit %d pixels, want 64", got)
	}

	err = DrawTriangle(&tga.Image{}, math3d.V2i(0, 0), math3d.V2i(1, 0), math3d.V2i(0, 1), tga.White)
	if !errors.Is(err, tga.ErrEmptyImage) {
		t.Errorf("err = %v, want ErrEmptyImage", err)
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	img := newTestImage(b, 512, 512)
	v1, v2, v3 := math3d.V2i(10, 10), math3d.V2i(500, 40), math3d.V2i(200, 480)
	for b.Loop() {
		_ = DrawTriangle(img, v1, v2, v3, tga.White)
	}
}
