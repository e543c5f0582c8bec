package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_, _ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Orthogonalize(b *testing.B) {
	ref, _ := V3(-1, -0.3, -1).Normalize()
	v := Up()

	for b.Loop() {
		_, _ = v.Orthogonalize(ref)
	}
}

func BenchmarkBBox2AddPoint(b *testing.B) {
	box := EmptyBBox2()
	p := V2(3, -4)

	for b.Loop() {
		box.AddPoint(p)
	}
}
