package render

import (
	"github.com/taigrr/swrender/pkg/math3d"
	"github.com/taigrr/swrender/pkg/tga"
)

// fitMargin leaves a border around a fitted projection.
const fitMargin = 1.05

// fitToImage maps projected points into the pixel grid of a width×height
// image with one uniform scale, so that their bounding box is centered and
// its longer side spans the shorter image side less a small margin.
func fitToImage(pts []math3d.Vec2, width, height int) []math3d.Vec2i {
	box := math3d.EmptyBBox2()
	for _, p := range pts {
		box.AddPoint(p)
	}

	out := make([]math3d.Vec2i, len(pts))
	if box.IsEmpty() {
		return out
	}

	size := box.Size()
	span := max(size.X, size.Y) * fitMargin
	center := box.Center()
	w, h := float32(width), float32(height)
	scale := float32(0)
	if span > math3d.Epsilon {
		scale = min(w, h) / span
	}

	for i, p := range pts {
		out[i] = math3d.Vec2i{
			X: int((p.X-center.X)*scale + w/2),
			Y: int((p.Y-center.Y)*scale + h/2),
		}
	}
	return out
}

// Overlay draws world-space guides such as axes and bounding boxes on top of
// a render, using the same screen mapping as the triangle rasterizer. Pixels
// falling outside the image are skipped.
type Overlay struct {
	camera *Camera
	img    *tga.Image
}

// NewOverlay creates an overlay drawing into img.
func NewOverlay(camera *Camera, img *tga.Image) *Overlay {
	return &Overlay{camera: camera, img: img}
}

func (o *Overlay) toScreen(p math3d.Vec3) math3d.Vec2i {
	c := o.camera.Transform(p)
	return math3d.Vec2i{
		X: int(c.X + float32(o.img.Width())/2),
		Y: int(c.Y + float32(o.img.Height())/2),
	}
}

// DrawLine3D draws a line between two world-space points.
func (o *Overlay) DrawLine3D(p1, p2 math3d.Vec3, c tga.Color) {
	a, b := o.toScreen(p1), o.toScreen(p2)
	w, h := o.img.Width(), o.img.Height()
	for p := range LinePoints(a.X, a.Y, b.X, b.Y) {
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
			continue
		}
		_ = o.img.SetPixel(p.X, p.Y, c)
	}
}

// boxEdges indexes the corners produced by boxCorners.
var boxEdges = [12][2]int{
	// Back face
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Front face
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Connecting edges
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func boxCorners(lo, hi math3d.Vec3) [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}

// DrawBox draws the edges of an axis-aligned box.
func (o *Overlay) DrawBox(box math3d.BBox3, c tga.Color) {
	if box.IsEmpty() {
		return
	}
	corners := boxCorners(box.Min, box.Max)
	for _, e := range boxEdges {
		o.DrawLine3D(corners[e[0]], corners[e[1]], c)
	}
}

// DrawAxes draws the coordinate axes at the origin in red, green and blue.
func (o *Overlay) DrawAxes(length float32) {
	origin := math3d.Zero3()
	o.DrawLine3D(origin, math3d.V3(length, 0, 0), tga.Red)
	o.DrawLine3D(origin, math3d.V3(0, length, 0), tga.Green)
	o.DrawLine3D(origin, math3d.V3(0, 0, length), tga.Blue)
}

// DrawGrid draws a grid on the XZ plane at y=0.
func (o *Overlay) DrawGrid(size, step float32, c tga.Color) {
	if step <= 0 {
		return
	}
	half := size / 2
	for x := -half; x <= half; x += step {
		o.DrawLine3D(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), c)
	}
	for z := -half; z <= half; z += step {
		o.DrawLine3D(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), c)
	}
}
