package render

import (
	"github.com/chewxy/math32"

	"github.com/taigrr/swrender/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float32
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

// ViewVolume is the world-space region an orthographic camera maps onto an
// image: an infinite box bounded by four side planes whose normals point
// inward. Depth is unbounded in both directions.
type ViewVolume struct {
	Planes [4]Plane
}

// View volume plane indices.
const (
	ViewLeft = iota
	ViewRight
	ViewBottom
	ViewTop
)

// ViewVolume returns the region visible in a width×height image, using the
// same centering as the triangle rasterizer. A negative zoom mirrors the
// image but covers the same region; a zero zoom collapses everything onto
// the image center, so the volume is unbounded.
func (c *Camera) ViewVolume(width, height int) ViewVolume {
	halfW, halfH := float32(math32.MaxFloat32), float32(math32.MaxFloat32)
	if zoom := math32.Abs(c.zoom); zoom > 0 {
		halfW = float32(width) / 2 / zoom
		halfH = float32(height) / 2 / zoom
	}
	locR := c.location.Dot(c.reference)
	locU := c.location.Dot(c.up)

	var v ViewVolume
	v.Planes[ViewLeft] = Plane{Normal: c.reference, D: halfW - locR}
	v.Planes[ViewRight] = Plane{Normal: c.reference.Negate(), D: halfW + locR}
	v.Planes[ViewBottom] = Plane{Normal: c.up, D: halfH - locU}
	v.Planes[ViewTop] = Plane{Normal: c.up.Negate(), D: halfH + locU}
	return v
}

// ContainsPoint tests if a point is inside the volume.
func (v ViewVolume) ContainsPoint(p math3d.Vec3) bool {
	for i := range v.Planes {
		if v.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectBox tests if any part of box may be visible. It uses the
// "positive vertex" test, so it can report boxes near a corner of the volume
// as visible when they are not.
func (v ViewVolume) IntersectBox(box math3d.BBox3) bool {
	if box.IsEmpty() {
		return false
	}
	for i := range v.Planes {
		plane := v.Planes[i]

		// The corner furthest along the normal is outside only if the whole
		// box is.
		pVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.DistanceToPoint(pVertex) < 0 {
			return false
		}
	}
	return true
}

// ContainsBox tests if box is completely inside the volume.
func (v ViewVolume) ContainsBox(box math3d.BBox3) bool {
	if box.IsEmpty() {
		return false
	}
	for i := range v.Planes {
		plane := v.Planes[i]

		nVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Min.X, box.Max.X),
			selectComponent(plane.Normal.Y >= 0, box.Min.Y, box.Max.Y),
			selectComponent(plane.Normal.Z >= 0, box.Min.Z, box.Max.Z),
		)
		if plane.DistanceToPoint(nVertex) < 0 {
			return false
		}
	}
	return true
}

func selectComponent(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}
