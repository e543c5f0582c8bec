package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/taigrr/swrender/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// FlipV converts GLTF's top-left texture origin to the bottom-left
	// origin used by OBJ files and the renderer.
	FlipV bool

	Logger *zap.Logger
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		FlipV:  true,
		Logger: zap.NewNop(),
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh. All triangle primitives
// of all meshes in the document are merged.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	mesh, err := l.FromDocument(doc)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// FromDocument converts an already opened document.
func (l *GLTFLoader) FromDocument(doc *gltf.Document) (*Mesh, error) {
	mesh := NewMesh("")
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	return mesh, nil
}

func (l *GLTFLoader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// processMesh appends the triangle primitives of m to mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			l.logger().Debug("skipping non-triangle primitive",
				zap.String("mesh", m.Name),
				zap.Int("primitive", pi))
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var normals [][3]float32
		if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		l.appendPrimitive(mesh, positions, uvs, normals, indices)
	}
	return nil
}

// appendPrimitive adds one primitive's attributes and converts its 0-based
// indices into the mesh's 1-based ones.
func (l *GLTFLoader) appendPrimitive(mesh *Mesh, positions [][3]float32, uvs [][2]float32, normals [][3]float32, indices []uint32) {
	baseV := uint32(len(mesh.Vertices)) + 1
	baseT := uint32(len(mesh.TexCoords)) + 1
	baseN := uint32(len(mesh.Normals)) + 1

	for _, p := range positions {
		mesh.Vertices = append(mesh.Vertices, math3d.V3(p[0], p[1], p[2]))
	}

	// Attributes are only referenced when they cover every vertex.
	withUV := len(uvs) == len(positions)
	if withUV {
		for _, uv := range uvs {
			v := uv[1]
			if l.FlipV {
				v = 1 - v
			}
			mesh.TexCoords = append(mesh.TexCoords, math3d.V2(uv[0], v))
		}
	}
	withN := len(normals) == len(positions)
	if withN {
		for _, n := range normals {
			mesh.Normals = append(mesh.Normals, math3d.V3(n[0], n[1], n[2]))
		}
	}

tris:
	for i := 0; i+2 < len(indices); i += 3 {
		var tri Triangle
		for j := range 3 {
			idx := indices[i+j]
			if int(idx) >= len(positions) {
				l.logger().Debug("skipping triangle with bad index", zap.Uint32("index", idx))
				continue tris
			}
			tri.V[j] = baseV + idx
			if withUV {
				tri.T[j] = baseT + idx
			}
			if withN {
				tri.N[j] = baseN + idx
			}
		}
		mesh.Triangles = append(mesh.Triangles, tri)
	}
}

// LoadGLTFWithTextures loads a GLTF file and extracts the encoded bytes of
// its images, keyed by image index.
func LoadGLTFWithTextures(path string) (*Mesh, map[int][]byte, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := NewGLTFLoader().FromDocument(doc)
	if err != nil {
		return nil, nil, err
	}
	mesh.Name = filepath.Base(path)

	textures := make(map[int][]byte)
	for i, img := range doc.Images {
		if img.BufferView != nil {
			bv := doc.BufferViews[*img.BufferView]
			buf := doc.Buffers[bv.Buffer]
			if buf.Data != nil {
				start := bv.ByteOffset
				textures[i] = buf.Data[start : start+bv.ByteLength]
			}
		} else if img.URI != "" {
			data, err := os.ReadFile(filepath.Join(filepath.Dir(path), img.URI))
			if err == nil {
				textures[i] = data
			}
		}
	}

	return mesh, textures, nil
}

// LoadGLBWithTexture loads a GLB file and returns the mesh plus the first
// embedded texture that decodes. The texture may be nil.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	mesh, textures, err := LoadGLTFWithTextures(path)
	if err != nil {
		return nil, nil, err
	}

	for _, i := range slices.Sorted(maps.Keys(textures)) {
		data := textures[i]
		if len(data) == 0 {
			continue
		}
		if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return mesh, img, nil
		}
	}
	return mesh, nil, nil
}
