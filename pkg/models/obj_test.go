package models

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cubeFaceOBJ = `# a textured quad and a triangle
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
f 1 2 3
`

func TestParseOBJ(t *testing.T) {
	mesh, err := NewOBJLoader().Parse(strings.NewReader(cubeFaceOBJ))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
	if len(mesh.TexCoords) != 4 {
		t.Errorf("len(TexCoords) = %d, want 4", len(mesh.TexCoords))
	}
	if len(mesh.Normals) != 1 {
		t.Errorf("len(Normals) = %d, want 1", len(mesh.Normals))
	}
	// The quad fans into two triangles.
	if mesh.TriangleCount() != 3 {
		t.Fatalf("TriangleCount = %d, want 3", mesh.TriangleCount())
	}

	tests := []struct {
		name string
		tri  Triangle
	}{
		{"fan first", Triangle{V: [3]uint32{1, 2, 3}, T: [3]uint32{1, 2, 3}, N: [3]uint32{1, 1, 1}}},
		{"fan second", Triangle{V: [3]uint32{1, 3, 4}, T: [3]uint32{1, 3, 4}, N: [3]uint32{1, 1, 1}}},
		{"bare", Triangle{V: [3]uint32{1, 2, 3}}},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if mesh.Triangles[i] != tt.tri {
				t.Errorf("triangle %d = %+v, want %+v", i, mesh.Triangles[i], tt.tri)
			}
		})
	}

	if mesh.HasTexCoords() {
		t.Error("HasTexCoords should be false when one face lacks texture indices")
	}
	if err := mesh.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseOBJSkipsMalformed(t *testing.T) {
	src := `v 1 2
v 1 2 3
v 4 5 6 1.0
v 7 8 9
vt 0.5
vt 0.5 0.25 0
f 1 2
f a b c
f 1/x 2 3
o ignored
`
	mesh, err := NewOBJLoader().Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if mesh.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", mesh.VertexCount())
	}
	if mesh.Vertices[1].Z != 6 {
		t.Errorf("extra w component should be ignored, got %v", mesh.Vertices[1])
	}
	if len(mesh.TexCoords) != 1 || mesh.TexCoords[0].Y != 0.25 {
		t.Errorf("TexCoords = %v", mesh.TexCoords)
	}
	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	if mesh.Triangles[0].HasTexCoords() {
		t.Error("partially textured face should drop texture indices")
	}
}

type failingReader struct {
	r io.Reader
}

var errRead = errors.New("read failed")

func (f *failingReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err == io.EOF {
		return n, errRead
	}
	return n, err
}

func TestParseOBJReadError(t *testing.T) {
	mesh, err := NewOBJLoader().Parse(&failingReader{r: strings.NewReader("v 1 2 3\nv 4 5 6\n")})
	if !errors.Is(err, errRead) {
		t.Fatalf("err = %v, want %v", err, errRead)
	}
	if mesh == nil || mesh.VertexCount() != 2 {
		t.Errorf("expected the vertices read before the failure")
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(cubeFaceOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.Name != "quad.obj" {
		t.Errorf("Name = %q", mesh.Name)
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}

func BenchmarkParseOBJ(b *testing.B) {
	var sb strings.Builder
	for range 1000 {
		sb.WriteString(cubeFaceOBJ)
	}
	src := sb.String()
	loader := NewOBJLoader()

	for b.Loop() {
		if _, err := loader.Parse(strings.NewReader(src)); err != nil {
			b.Fatal(err)
		}
	}
}
