// Package models provides the indexed triangle mesh consumed by the renderer
// and the loaders that build it.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/swrender/pkg/math3d"
)

// ErrIndexOutOfRange is returned when a triangle refers past the end of a
// vertex, texture coordinate or normal list.
var ErrIndexOutOfRange = errors.New("models: index out of range")

// Triangle holds 1-based indices into a Mesh's lists. An index of 0 marks
// the attribute as absent.
type Triangle struct {
	V [3]uint32 // positions
	T [3]uint32 // texture coordinates
	N [3]uint32 // normals
}

// HasTexCoords reports whether all three texture coordinate indices are set.
func (t Triangle) HasTexCoords() bool {
	return t.T[0] != 0 && t.T[1] != 0 && t.T[2] != 0
}

// HasNormals reports whether all three normal indices are set.
func (t Triangle) HasNormals() bool {
	return t.N[0] != 0 && t.N[1] != 0 && t.N[2] != 0
}

// Mesh is an indexed triangle mesh. It is built once by a loader and only
// read while rendering.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Triangles []Triangle
	TexCoords []math3d.Vec2
	Normals   []math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertex positions.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// HasTexCoords reports whether the mesh carries texture coordinates and every
// triangle references them.
func (m *Mesh) HasTexCoords() bool {
	if len(m.TexCoords) == 0 {
		return false
	}
	for _, t := range m.Triangles {
		if !t.HasTexCoords() {
			return false
		}
	}
	return true
}

// HasNormals reports whether the mesh carries vertex normals and every
// triangle references them.
func (m *Mesh) HasNormals() bool {
	if len(m.Normals) == 0 {
		return false
	}
	for _, t := range m.Triangles {
		if !t.HasNormals() {
			return false
		}
	}
	return true
}

func resolve[T any](list []T, idx [3]uint32, what string) ([3]T, error) {
	var out [3]T
	for i, n := range idx {
		if n == 0 || int(n) > len(list) {
			return out, fmt.Errorf("%w: %s index %d, have %d", ErrIndexOutOfRange, what, n, len(list))
		}
		out[i] = list[n-1]
	}
	return out, nil
}

// TriangleVertices returns the positions of triangle i.
func (m *Mesh) TriangleVertices(i int) ([3]math3d.Vec3, error) {
	return resolve(m.Vertices, m.Triangles[i].V, "vertex")
}

// TriangleTexCoords returns the texture coordinates of triangle i.
func (m *Mesh) TriangleTexCoords(i int) ([3]math3d.Vec2, error) {
	return resolve(m.TexCoords, m.Triangles[i].T, "texcoord")
}

// TriangleNormals returns the vertex normals of triangle i.
func (m *Mesh) TriangleNormals(i int) ([3]math3d.Vec3, error) {
	return resolve(m.Normals, m.Triangles[i].N, "normal")
}

// Validate checks that every present index is within its list.
func (m *Mesh) Validate() error {
	for i, t := range m.Triangles {
		if _, err := m.TriangleVertices(i); err != nil {
			return fmt.Errorf("triangle %d: %w", i, err)
		}
		if t.T != ([3]uint32{}) {
			if _, err := m.TriangleTexCoords(i); err != nil {
				return fmt.Errorf("triangle %d: %w", i, err)
			}
		}
		if t.N != ([3]uint32{}) {
			if _, err := m.TriangleNormals(i); err != nil {
				return fmt.Errorf("triangle %d: %w", i, err)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
func (m *Mesh) Bounds() math3d.BBox3 {
	box := math3d.EmptyBBox3()
	for _, v := range m.Vertices {
		box.AddPoint(v)
	}
	return box
}

// Transform applies a transformation matrix to all positions and normals.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	for i := range m.Normals {
		if n, err := mat.MulVec3Dir(m.Normals[i]).Normalize(); err == nil {
			m.Normals[i] = n
		}
	}
}

// Normalize centers the mesh on the origin and scales it uniformly so that
// its largest extent is 2, i.e. it fits in [-1, 1] on every axis.
func (m *Mesh) Normalize() {
	box := m.Bounds()
	if box.IsEmpty() {
		return
	}
	size := box.Size()
	extent := max(size.X, size.Y, size.Z)
	if extent < math3d.Epsilon {
		m.Transform(math3d.Translate(box.Center().Negate()))
		return
	}
	m.Transform(math3d.ScaleUniform(2 / extent).Mul(math3d.Translate(box.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Vertices:  append([]math3d.Vec3(nil), m.Vertices...),
		Triangles: append([]Triangle(nil), m.Triangles...),
		TexCoords: append([]math3d.Vec2(nil), m.TexCoords...),
		Normals:   append([]math3d.Vec3(nil), m.Normals...),
	}
}
