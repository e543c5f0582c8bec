package render

import "github.com/chewxy/math32"

// DepthBuffer holds one camera-space depth per pixel. Smaller is nearer.
// A buffer belongs to a single render pass.
type DepthBuffer struct {
	width, height int
	z             []float32
}

// NewDepthBuffer allocates a buffer with every entry at the far sentinel.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		width:  width,
		height: height,
		z:      make([]float32, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every entry to math32.MaxFloat32.
func (d *DepthBuffer) Clear() {
	n := len(d.z)
	if n == 0 {
		return
	}
	d.z[0] = math32.MaxFloat32
	for i := 1; i < n; i *= 2 {
		copy(d.z[i:], d.z[:i])
	}
}

// At returns the stored depth at (x, y), or the far sentinel outside the
// buffer.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return math32.MaxFloat32
	}
	return d.z[y*d.width+x]
}

// TestAndSet stores z at (x, y) and reports true only if z is strictly
// nearer than the stored depth.
func (d *DepthBuffer) TestAndSet(x, y int, z float32) bool {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return false
	}
	i := y*d.width + x
	if z >= d.z[i] {
		return false
	}
	d.z[i] = z
	return true
}
