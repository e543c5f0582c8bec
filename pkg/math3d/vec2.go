package math3d

import "github.com/chewxy/math32"

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X, Y float32
}

// V2 creates a new Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Mul returns the component-wise product a * b.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float32) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Dot returns the dot product a · b.
func (a Vec2) Dot(b Vec2) float32 {
	return a.X*b.X + a.Y*b.Y
}

// Len returns the Euclidean norm of the vector.
func (a Vec2) Len() float32 {
	return math32.Sqrt(a.X*a.X + a.Y*a.Y)
}

// Normalize returns the unit vector in the same direction.
func (a Vec2) Normalize() (Vec2, error) {
	l := a.Len()
	if l < Epsilon {
		return Vec2{}, ErrDegenerate
	}
	return Vec2{a.X / l, a.Y / l}, nil
}

// Trunc converts to integer pixel coordinates, truncating toward zero.
func (a Vec2) Trunc() Vec2i {
	return Vec2i{int(a.X), int(a.Y)}
}

// Vec2i is an integer 2D point, typically a pixel coordinate.
type Vec2i struct {
	X, Y int
}

// V2i creates a new Vec2i.
func V2i(x, y int) Vec2i {
	return Vec2i{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2i) Add(b Vec2i) Vec2i {
	return Vec2i{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2i) Sub(b Vec2i) Vec2i {
	return Vec2i{a.X - b.X, a.Y - b.Y}
}

// Cross returns the z component of the 3D cross product of a and b.
func (a Vec2i) Cross(b Vec2i) int {
	return a.X*b.Y - a.Y*b.X
}
