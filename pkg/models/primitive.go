package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/taigrr/swrender/pkg/math3d"
)

// DefaultPrimitiveCells is the marching cubes resolution along the longest
// axis of a primitive's bounding box.
const DefaultPrimitiveCells = 48

// ErrUnknownPrimitive is returned for an unrecognised primitive name.
var ErrUnknownPrimitive = errors.New("models: unknown primitive")

// PrimitiveNames lists the names accepted by Primitive.
var PrimitiveNames = []string{"sphere", "box", "cylinder"}

// Primitive builds a unit-sized solid by name and triangulates it with
// marching cubes. cells <= 0 selects DefaultPrimitiveCells.
func Primitive(name string, cells int) (*Mesh, error) {
	var (
		s   sdf.SDF3
		err error
	)
	switch strings.ToLower(name) {
	case "sphere":
		s, err = sdf.Sphere3D(1)
	case "box":
		s, err = sdf.Box3D(v3.Vec{X: 1.6, Y: 1.6, Z: 1.6}, 0.1)
	case "cylinder":
		s, err = sdf.Cylinder3D(2, 0.8, 0.1)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, name)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return FromSDF(strings.ToLower(name), s, cells), nil
}

// FromSDF triangulates a signed distance field. Each triangle gets its own
// three vertices and a face normal.
func FromSDF(name string, s sdf.SDF3, cells int) *Mesh {
	if cells <= 0 {
		cells = DefaultPrimitiveCells
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	mesh := NewMesh(name)
	mesh.Vertices = make([]math3d.Vec3, 0, len(triangles)*3)
	mesh.Normals = make([]math3d.Vec3, 0, len(triangles))
	mesh.Triangles = make([]Triangle, 0, len(triangles))

	for _, tri := range triangles {
		n := tri.Normal()
		mesh.Normals = append(mesh.Normals, math3d.V3(float32(n.X), float32(n.Y), float32(n.Z)))
		ni := uint32(len(mesh.Normals))

		var t Triangle
		for j := range 3 {
			v := tri[j]
			mesh.Vertices = append(mesh.Vertices, math3d.V3(float32(v.X), float32(v.Y), float32(v.Z)))
			t.V[j] = uint32(len(mesh.Vertices))
			t.N[j] = ni
		}
		mesh.Triangles = append(mesh.Triangles, t)
	}
	return mesh
}
