package math3d

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-5
}

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y cross z", V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{"z cross x", V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{"parallel", V3(2, 2, 2), V3(1, 1, 1), V3(0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Cross(tc.b); got != tc.want {
				t.Errorf("%v.Cross(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	n, err := V3(3, 0, 4).Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !approx(n.X, 0.6) || !approx(n.Z, 0.8) || !approx(n.Len(), 1) {
		t.Errorf("Normalize() = %v, want (0.6, 0, 0.8)", n)
	}

	_, err = V3(1e-9, 0, 0).Normalize()
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("Normalize() of tiny vector error = %v, want ErrDegenerate", err)
	}
}

func TestVec3Orthogonalize(t *testing.T) {
	ref, _ := V3(-1, -0.3, -1).Normalize()

	up, ok := Up().Orthogonalize(ref)
	if !ok {
		t.Fatal("Orthogonalize() reported degenerate for non-parallel input")
	}
	if !approx(up.Dot(ref), 0) {
		t.Errorf("residual . ref = %v, want 0", up.Dot(ref))
	}

	if _, ok := ref.Scale(-2).Orthogonalize(ref); ok {
		t.Error("Orthogonalize() of parallel vector should fail")
	}
}

func TestVec2iCross(t *testing.T) {
	if got := V2i(2, 0).Cross(V2i(0, 3)); got != 6 {
		t.Errorf("Cross = %d, want 6", got)
	}
	if got := V2i(0, 3).Cross(V2i(2, 0)); got != -6 {
		t.Errorf("Cross = %d, want -6", got)
	}
}

func TestBBox2(t *testing.T) {
	box := EmptyBBox2()
	if !box.IsEmpty() {
		t.Fatal("EmptyBBox2() should be empty")
	}

	box.AddPoint(V2(1, 5))
	box.AddPoint(V2(-3, 2))
	box.AddPoint(V2(0, 7))

	if box.IsEmpty() {
		t.Fatal("box should not be empty after AddPoint")
	}
	if box.Min != V2(-3, 2) || box.Max != V2(1, 7) {
		t.Errorf("box = [%v, %v], want [(-3,2), (1,7)]", box.Min, box.Max)
	}
	if got := box.Center(); got != V2(-1, 4.5) {
		t.Errorf("Center() = %v, want (-1, 4.5)", got)
	}
	if got := box.Clamp(V2(10, -10)); got != V2(1, 2) {
		t.Errorf("Clamp() = %v, want (1, 2)", got)
	}
}

func TestBBox2Intersect(t *testing.T) {
	a := NewBBox2(V2(0, 0), V2(10, 10))
	b := NewBBox2(V2(5, -5), V2(15, 5))

	got := a.Intersect(b)
	if got.Min != V2(5, 0) || got.Max != V2(10, 5) {
		t.Errorf("Intersect() = [%v, %v], want [(5,0), (10,5)]", got.Min, got.Max)
	}

	c := NewBBox2(V2(20, 20), V2(30, 30))
	if !a.Intersect(c).IsEmpty() {
		t.Error("disjoint boxes should intersect to empty")
	}
}

func TestBBox2iIntersect(t *testing.T) {
	tri := EmptyBBox2i()
	tri.AddPoint(V2i(-4, 3))
	tri.AddPoint(V2i(12, 8))
	tri.AddPoint(V2i(6, -2))

	screen := NewBBox2i(V2i(0, 0), V2i(9, 9))
	got := tri.Intersect(screen)
	if got.Min != V2i(0, 0) || got.Max != V2i(9, 8) {
		t.Errorf("Intersect() = [%v, %v], want [(0,0), (9,8)]", got.Min, got.Max)
	}
}

func TestBBox3(t *testing.T) {
	box := EmptyBBox3()
	box.AddPoint(V3(1, 2, 3))
	box.AddPoint(V3(-1, 0, 5))

	if box.Size() != V3(2, 2, 2) {
		t.Errorf("Size() = %v, want (2,2,2)", box.Size())
	}
	if box.Center() != V3(0, 1, 4) {
		t.Errorf("Center() = %v, want (0,1,4)", box.Center())
	}
}

func TestMat4Transforms(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(ScaleUniform(2))
	if got := m.MulVec3(V3(1, 1, 1)); got != V3(3, 4, 5) {
		t.Errorf("MulVec3() = %v, want (3,4,5)", got)
	}
	if got := m.MulVec3Dir(V3(1, 1, 1)); got != V3(2, 2, 2) {
		t.Errorf("MulVec3Dir() = %v, want (2,2,2)", got)
	}

	r := RotateY(math32.Pi / 2).MulVec3(V3(1, 0, 0))
	if !approx(r.X, 0) || !approx(r.Z, -1) {
		t.Errorf("RotateY(pi/2) * x = %v, want (0,0,-1)", r)
	}
}
