package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/swrender/pkg/math3d"
)

// ErrDegenerateCamera is returned when the camera axes cannot be derived,
// i.e. the up hint is parallel to the forward direction.
var ErrDegenerateCamera = errors.New("render: up hint parallel to forward direction")

// Camera is an orthographic camera. Its forward, up and reference (right)
// axes are mutually orthonormal and fixed at construction.
type Camera struct {
	location  math3d.Vec3
	forward   math3d.Vec3
	up        math3d.Vec3
	reference math3d.Vec3
	zoom      float32
}

// NewCamera derives the camera axes from a forward direction and an up hint.
// The up hint only has to be non-parallel to forward; its component along
// forward is removed.
func NewCamera(location, forward, upHint math3d.Vec3, zoom float32) (*Camera, error) {
	fwd, err := forward.Normalize()
	if err != nil {
		return nil, fmt.Errorf("forward direction: %w", err)
	}
	up, ok := upHint.Orthogonalize(fwd)
	if !ok {
		return nil, ErrDegenerateCamera
	}
	up, err = up.Normalize()
	if err != nil {
		return nil, ErrDegenerateCamera
	}
	return &Camera{
		location:  location,
		forward:   fwd,
		up:        up,
		reference: fwd.Cross(up),
		zoom:      zoom,
	}, nil
}

// MustCamera is like NewCamera but panics on degenerate input.
func MustCamera(location, forward, upHint math3d.Vec3, zoom float32) *Camera {
	c, err := NewCamera(location, forward, upHint, zoom)
	if err != nil {
		panic(err)
	}
	return c
}

// Location returns the eye position.
func (c *Camera) Location() math3d.Vec3 { return c.location }

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 { return c.forward }

// Up returns the unit up direction.
func (c *Camera) Up() math3d.Vec3 { return c.up }

// Reference returns the unit right direction, forward × up.
func (c *Camera) Reference() math3d.Vec3 { return c.reference }

// Zoom returns the linear scale applied to in-plane coordinates.
func (c *Camera) Zoom() float32 { return c.zoom }

// Transform maps a world-space point into camera space. Z is the signed
// distance along forward (larger is farther); X and Y are the zoomed
// components along reference and up.
func (c *Camera) Transform(p math3d.Vec3) math3d.Vec3 {
	r := p.Sub(c.location)
	z := r.Dot(c.forward)
	inPlane := r.Sub(c.forward.Scale(z))
	return math3d.Vec3{
		X: inPlane.Dot(c.reference) * c.zoom,
		Y: inPlane.Dot(c.up) * c.zoom,
		Z: z,
	}
}

// Project maps a world-space point onto the screen plane.
func (c *Camera) Project(p math3d.Vec3) math3d.Vec2 {
	return c.Transform(p).XY()
}
