package math3d

import "github.com/chewxy/math32"

// BBox2 is a 2D axis-aligned bounding box. Use EmptyBBox2 to create one;
// once a point has been added Min <= Max holds component-wise.
type BBox2 struct {
	Min, Max Vec2
	empty    bool
}

// EmptyBBox2 returns a box containing no points.
func EmptyBBox2() BBox2 {
	return BBox2{empty: true}
}

// NewBBox2 returns the smallest box containing both corners.
func NewBBox2(a, b Vec2) BBox2 {
	box := EmptyBBox2()
	box.AddPoint(a)
	box.AddPoint(b)
	return box
}

// IsEmpty reports whether no point has been added.
func (b BBox2) IsEmpty() bool {
	return b.empty
}

// AddPoint grows the box to contain p.
func (b *BBox2) AddPoint(p Vec2) {
	if b.empty {
		b.Min, b.Max, b.empty = p, p, false
		return
	}
	b.Min = Vec2{math32.Min(b.Min.X, p.X), math32.Min(b.Min.Y, p.Y)}
	b.Max = Vec2{math32.Max(b.Max.X, p.X), math32.Max(b.Max.Y, p.Y)}
}

// Center returns the midpoint of the box.
func (b BBox2) Center() Vec2 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b BBox2) Size() Vec2 {
	return b.Max.Sub(b.Min)
}

// Clamp moves p to the nearest point inside the box.
func (b BBox2) Clamp(p Vec2) Vec2 {
	if b.empty {
		return p
	}
	return Vec2{
		math32.Min(math32.Max(p.X, b.Min.X), b.Max.X),
		math32.Min(math32.Max(p.Y, b.Min.Y), b.Max.Y),
	}
}

// Intersect clamps b against other. The result is empty when they do not
// overlap.
func (b BBox2) Intersect(other BBox2) BBox2 {
	if b.empty || other.empty {
		return EmptyBBox2()
	}
	res := BBox2{
		Min: Vec2{math32.Max(b.Min.X, other.Min.X), math32.Max(b.Min.Y, other.Min.Y)},
		Max: Vec2{math32.Min(b.Max.X, other.Max.X), math32.Min(b.Max.Y, other.Max.Y)},
	}
	if res.Min.X > res.Max.X || res.Min.Y > res.Max.Y {
		return EmptyBBox2()
	}
	return res
}

// BBox3 is a 3D axis-aligned bounding box.
type BBox3 struct {
	Min, Max Vec3
	empty    bool
}

// EmptyBBox3 returns a box containing no points.
func EmptyBBox3() BBox3 {
	return BBox3{empty: true}
}

// IsEmpty reports whether no point has been added.
func (b BBox3) IsEmpty() bool {
	return b.empty
}

// AddPoint grows the box to contain p.
func (b *BBox3) AddPoint(p Vec3) {
	if b.empty {
		b.Min, b.Max, b.empty = p, p, false
		return
	}
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Center returns the midpoint of the box.
func (b BBox3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b BBox3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Clamp moves p to the nearest point inside the box.
func (b BBox3) Clamp(p Vec3) Vec3 {
	if b.empty {
		return p
	}
	return p.Max(b.Min).Min(b.Max)
}

// BBox2i is an integer pixel-space bounding box with inclusive bounds.
type BBox2i struct {
	Min, Max Vec2i
	empty    bool
}

// EmptyBBox2i returns a box containing no pixels.
func EmptyBBox2i() BBox2i {
	return BBox2i{empty: true}
}

// NewBBox2i returns the smallest box containing both corners.
func NewBBox2i(a, b Vec2i) BBox2i {
	box := EmptyBBox2i()
	box.AddPoint(a)
	box.AddPoint(b)
	return box
}

// IsEmpty reports whether the box contains no pixels.
func (b BBox2i) IsEmpty() bool {
	return b.empty
}

// AddPoint grows the box to contain p.
func (b *BBox2i) AddPoint(p Vec2i) {
	if b.empty {
		b.Min, b.Max, b.empty = p, p, false
		return
	}
	b.Min = Vec2i{min(b.Min.X, p.X), min(b.Min.Y, p.Y)}
	b.Max = Vec2i{max(b.Max.X, p.X), max(b.Max.Y, p.Y)}
}

// Intersect clamps b against other. The result is empty when they do not
// overlap.
func (b BBox2i) Intersect(other BBox2i) BBox2i {
	if b.empty || other.empty {
		return EmptyBBox2i()
	}
	res := BBox2i{
		Min: Vec2i{max(b.Min.X, other.Min.X), max(b.Min.Y, other.Min.Y)},
		Max: Vec2i{min(b.Max.X, other.Max.X), min(b.Max.Y, other.Max.Y)},
	}
	if res.Min.X > res.Max.X || res.Min.Y > res.Max.Y {
		return EmptyBBox2i()
	}
	return res
}
