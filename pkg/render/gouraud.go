package render

import (
	"github.com/chewxy/math32"

	"github.com/taigrr/swrender/pkg/math3d"
	"github.com/taigrr/swrender/pkg/tga"
)

// DefaultAmbient is the intensity floor of GouraudShader.
const DefaultAmbient = 0.3

// GouraudShader shades c by lighting computed at each vertex from its
// normal and interpolated across the triangle. normals point outward and
// light is the unit direction light travels in. The triangle's flat
// intensity is ignored.
func GouraudShader(c tga.Color, normals [3]math3d.Vec3, light math3d.Vec3, ambient float32) ShadeFunc {
	var vi [3]float32
	for i, n := range normals {
		vi[i] = ambient + (1-ambient)*math32.Max(0, -n.Dot(light))
	}
	return func(bc math3d.Vec3, _ float32) tga.Color {
		return c.Scale(vi[0]*bc.X + vi[1]*bc.Y + vi[2]*bc.Z)
	}
}

// DrawTriangleGouraud draws a triangle of color c lit per vertex.
func (r *Rasterizer) DrawTriangleGouraud(v [3]math3d.Vec3, normals [3]math3d.Vec3, c tga.Color) (bool, error) {
	return r.DrawTriangle3D(v, GouraudShader(c, normals, r.light, DefaultAmbient))
}
