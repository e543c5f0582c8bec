package render

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/swrender/pkg/math3d"
	"github.com/taigrr/swrender/pkg/models"
)

// Spring parameters for turntable easing. A damping ratio of 1 is critical
// damping: the yaw approaches the sweep without overshooting it.
const (
	turntableFrequency = 4.0
	turntableDamping   = 1.0
)

// TurntableAngles returns the yaw, in radians, of each frame of a turntable
// sequence. The yaw starts at 0 and eases toward sweep along a spring
// stepped at fps.
func TurntableAngles(frames, fps int, sweep float32) []float32 {
	if frames <= 0 || fps <= 0 {
		return nil
	}
	spring := harmonica.NewSpring(harmonica.FPS(fps), turntableFrequency, turntableDamping)

	angles := make([]float32, frames)
	var pos, vel float64
	for i := range angles {
		angles[i] = float32(pos)
		pos, vel = spring.Update(pos, vel, float64(sweep))
	}
	return angles
}

// SpinMesh returns a copy of mesh rotated by angle around the vertical axis
// through the center of its bounding box.
func SpinMesh(mesh *models.Mesh, angle float32) *models.Mesh {
	out := mesh.Clone()
	box := mesh.Bounds()
	if box.IsEmpty() {
		return out
	}
	c := box.Center()
	out.Transform(math3d.Translate(c).Mul(math3d.RotateY(angle)).Mul(math3d.Translate(c.Negate())))
	return out
}
