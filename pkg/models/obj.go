package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/swrender/pkg/math3d"
)

// OBJLoader parses Wavefront OBJ geometry. Parsing is best effort: lines that
// cannot be understood are skipped and logged at debug level.
type OBJLoader struct {
	Logger *zap.Logger
}

// NewOBJLoader creates a loader that discards its log output.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{Logger: zap.NewNop()}
}

// LoadOBJ loads an OBJ file with a default loader.
func LoadOBJ(path string) (*Mesh, error) {
	return NewOBJLoader().Load(path)
}

// Load opens and parses path. If reading fails part way, the mesh parsed so
// far is returned together with the error.
func (l *OBJLoader) Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := l.Parse(f)
	mesh.Name = filepath.Base(path)
	return mesh, err
}

// Parse reads v, vt, vn and f records from r. Faces with more than three
// vertices are split into a triangle fan. The returned mesh is never nil.
func (l *OBJLoader) Parse(r io.Reader) (*Mesh, error) {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}

	mesh := NewMesh("")
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		var ok bool
		switch fields[0] {
		case "v":
			var c [3]float32
			if ok = readCoords(fields[1:], c[:]); ok {
				mesh.Vertices = append(mesh.Vertices, math3d.V3(c[0], c[1], c[2]))
			}
		case "vt":
			var c [2]float32
			if ok = readCoords(fields[1:], c[:]); ok {
				mesh.TexCoords = append(mesh.TexCoords, math3d.V2(c[0], c[1]))
			}
		case "vn":
			var c [3]float32
			if ok = readCoords(fields[1:], c[:]); ok {
				mesh.Normals = append(mesh.Normals, math3d.V3(c[0], c[1], c[2]))
			}
		case "f":
			var tris []Triangle
			if tris, ok = readFace(fields[1:]); ok {
				mesh.Triangles = append(mesh.Triangles, tris...)
			}
		default:
			continue
		}

		if !ok {
			log.Debug("skipping malformed obj line",
				zap.Int("line", lineNo),
				zap.String("text", sc.Text()))
		}
	}

	if err := sc.Err(); err != nil {
		return mesh, fmt.Errorf("read obj line %d: %w", lineNo+1, err)
	}
	return mesh, nil
}

// readCoords fills dst with the first len(dst) numeric fields, ignoring
// fields that do not parse.
func readCoords(fields []string, dst []float32) bool {
	n := 0
	for _, f := range fields {
		if n == len(dst) {
			break
		}
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			continue
		}
		dst[n] = float32(v)
		n++
	}
	return n == len(dst)
}

// faceVertex is one v/vt/vn group of a face record.
type faceVertex struct {
	v, t, n uint32
}

func parseFaceVertex(s string) (faceVertex, bool) {
	var fv faceVertex
	parts := strings.Split(s, "/")
	dst := []*uint32{&fv.v, &fv.t, &fv.n}
	for i, p := range parts {
		if i >= len(dst) || p == "" {
			continue
		}
		idx, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			continue
		}
		*dst[i] = uint32(idx)
	}
	return fv, fv.v != 0
}

// readFace fan-triangulates a face record.
func readFace(fields []string) ([]Triangle, bool) {
	var verts []faceVertex
	for _, f := range fields {
		if fv, ok := parseFaceVertex(f); ok {
			verts = append(verts, fv)
		}
	}
	if len(verts) < 3 {
		return nil, false
	}

	tris := make([]Triangle, 0, len(verts)-2)
	for i := 1; i+1 < len(verts); i++ {
		a, b, c := verts[0], verts[i], verts[i+1]
		tri := Triangle{
			V: [3]uint32{a.v, b.v, c.v},
			T: [3]uint32{a.t, b.t, c.t},
			N: [3]uint32{a.n, b.n, c.n},
		}
		if !tri.HasTexCoords() {
			tri.T = [3]uint32{}
		}
		if !tri.HasNormals() {
			tri.N = [3]uint32{}
		}
		tris = append(tris, tri)
	}
	return tris, true
}
