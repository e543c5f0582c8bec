// Package render turns indexed triangle meshes into pixels: an orthographic
// camera, a line rasterizer, a depth-buffered triangle rasterizer and the
// mesh render passes built on them.
package render

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/taigrr/swrender/pkg/math3d"
	"github.com/taigrr/swrender/pkg/tga"
)

// CullMode selects how a triangle is judged to face away.
type CullMode int

const (
	// CullByLight skips triangles whose lighting intensity is not positive.
	// The intensity doubles as the facing test, so faces turned from the
	// light are dropped even when they face the camera.
	CullByLight CullMode = iota
	// CullByView skips triangles facing away from the camera. Faces turned
	// from the light are still drawn, at zero intensity.
	CullByView
	// CullNone draws every triangle.
	CullNone
)

func (m CullMode) String() string {
	switch m {
	case CullByLight:
		return "light"
	case CullByView:
		return "view"
	case CullNone:
		return "none"
	default:
		return fmt.Sprintf("CullMode(%d)", int(m))
	}
}

// ParseCullMode converts a mode name as accepted in configuration files.
func ParseCullMode(s string) (CullMode, error) {
	switch s {
	case "", "light":
		return CullByLight, nil
	case "view":
		return CullByView, nil
	case "none":
		return CullNone, nil
	}
	return 0, fmt.Errorf("render: unknown cull mode %q", s)
}

// ShadeFunc returns the color of a covered pixel. bc holds the barycentric
// weights of the triangle's three vertices and intensity is the flat
// lighting factor of the triangle.
type ShadeFunc func(bc math3d.Vec3, intensity float32) tga.Color

// SolidShader returns c scaled by the lighting intensity.
func SolidShader(c tga.Color) ShadeFunc {
	return func(_ math3d.Vec3, intensity float32) tga.Color {
		return c.Scale(intensity)
	}
}

// TextureShader samples tex at the interpolated texture coordinates and
// scales the texel by the lighting intensity.
func TextureShader(tex *Texture, uv [3]math3d.Vec2) ShadeFunc {
	return func(bc math3d.Vec3, intensity float32) tga.Color {
		u := uv[0].X*bc.X + uv[1].X*bc.Y + uv[2].X*bc.Z
		v := uv[0].Y*bc.X + uv[1].Y*bc.Y + uv[2].Y*bc.Z
		return tex.Sample(u, v).Scale(intensity)
	}
}

// Stats counts what happened to the triangles of one pass.
type Stats struct {
	Triangles int // triangles submitted
	Culled    int // skipped by the facing test or degenerate
	Drawn     int // passed culling and were scan-converted
	Pixels    int // pixels that won the depth test
}

// Rasterizer draws depth-tested triangles for a single render pass. It owns
// the pass's depth buffer; create a new Rasterizer for each pass.
type Rasterizer struct {
	camera *Camera
	img    *tga.Image
	depth  *DepthBuffer
	light  math3d.Vec3
	Cull   CullMode
	Stats  Stats
}

// NewRasterizer prepares a pass drawing into img. light is the direction
// light travels in and is normalized here.
func NewRasterizer(camera *Camera, img *tga.Image, light math3d.Vec3) (*Rasterizer, error) {
	if img.IsEmpty() {
		return nil, tga.ErrEmptyImage
	}
	l, err := light.Normalize()
	if err != nil {
		return nil, fmt.Errorf("light direction: %w", err)
	}
	return &Rasterizer{
		camera: camera,
		img:    img,
		depth:  NewDepthBuffer(img.Width(), img.Height()),
		light:  l,
	}, nil
}

// Depth returns the pass's depth buffer.
func (r *Rasterizer) Depth() *DepthBuffer {
	return r.depth
}

// toScreen maps a camera-space point to a pixel by centering the screen
// plane origin in the image and truncating.
func (r *Rasterizer) toScreen(p math3d.Vec3) math3d.Vec2i {
	return math3d.Vec2i{
		X: int(p.X + float32(r.img.Width())/2),
		Y: int(p.Y + float32(r.img.Height())/2),
	}
}

// intensity computes the flat shading factor of a world-space triangle and
// whether the triangle survives culling.
func (r *Rasterizer) intensity(v [3]math3d.Vec3) (float32, bool) {
	return faceIntensity(v, r.light, r.camera.Forward(), r.Cull)
}

// faceIntensity returns the lighting factor of a triangle lit along the unit
// direction light, and whether the triangle survives culling under mode.
func faceIntensity(v [3]math3d.Vec3, light, forward math3d.Vec3, mode CullMode) (float32, bool) {
	// Reversed winding, so a face lit from the front has a positive dot
	// product with the light's travel direction.
	n, err := v[2].Sub(v[0]).Cross(v[1].Sub(v[0])).Normalize()
	if err != nil {
		return 0, false
	}
	lit := n.Dot(light)

	switch mode {
	case CullByView:
		if n.Dot(forward) <= 0 {
			return 0, false
		}
		return math32.Max(lit, 0), true
	case CullNone:
		return math32.Max(lit, 0), true
	default:
		return lit, lit > 0
	}
}

// DrawTriangle3D transforms, culls, depth tests and shades one world-space
// triangle. It reports whether the triangle passed culling.
func (r *Rasterizer) DrawTriangle3D(v [3]math3d.Vec3, shade ShadeFunc) (bool, error) {
	r.Stats.Triangles++

	intensity, ok := r.intensity(v)
	if !ok {
		r.Stats.Culled++
		return false, nil
	}
	r.Stats.Drawn++

	var cam [3]math3d.Vec3
	var scr [3]math3d.Vec2i
	for i := range 3 {
		cam[i] = r.camera.Transform(v[i])
		scr[i] = r.toScreen(cam[i])
	}

	err := cover(scr[0], scr[1], scr[2], imageBox(r.img), func(x, y int, w [3]int, area int) error {
		bc := weights(w, area)
		z := cam[0].Z*bc.X + cam[1].Z*bc.Y + cam[2].Z*bc.Z
		if !r.depth.TestAndSet(x, y, z) {
			return nil
		}
		r.Stats.Pixels++
		return r.img.SetPixel(x, y, shade(bc, intensity))
	})
	return true, err
}

// DrawTriangleSolid draws a flat-shaded triangle of color c.
func (r *Rasterizer) DrawTriangleSolid(v [3]math3d.Vec3, c tga.Color) (bool, error) {
	return r.DrawTriangle3D(v, SolidShader(c))
}

// DrawTriangleTextured draws a flat-shaded triangle sampling tex at the
// interpolated texture coordinates uv.
func (r *Rasterizer) DrawTriangleTextured(v [3]math3d.Vec3, uv [3]math3d.Vec2, tex *Texture) (bool, error) {
	return r.DrawTriangle3D(v, TextureShader(tex, uv))
}
