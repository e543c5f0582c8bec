package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/swrender/pkg/math3d"
	"github.com/taigrr/swrender/pkg/models"
	"github.com/taigrr/swrender/pkg/tga"
)

// ErrNoTexCoords is returned by a textured render of a mesh whose triangles
// do not all carry texture coordinates.
var ErrNoTexCoords = errors.New("render: mesh has no texture coordinates")

// ErrNoNormals is returned by a smooth render of a mesh whose triangles do
// not all carry vertex normals.
var ErrNoNormals = errors.New("render: mesh has no vertex normals")

// ErrNoTexture is returned by a textured render without a texture.
var ErrNoTexture = errors.New("render: no texture")

// Mode selects a mesh render pass.
type Mode int

const (
	// ModeWireframe draws triangle edges fitted to the image.
	ModeWireframe Mode = iota
	// ModeFlat fills lit triangles fitted to the image, without depth
	// testing.
	ModeFlat
	// ModeSolid fills depth-tested, flat-shaded triangles of one color.
	ModeSolid
	// ModeTextured fills depth-tested, flat-shaded, textured triangles.
	ModeTextured
	// ModeSmooth fills depth-tested triangles of one color lit per vertex.
	ModeSmooth
)

func (m Mode) String() string {
	switch m {
	case ModeWireframe:
		return "wireframe"
	case ModeFlat:
		return "flat"
	case ModeSolid:
		return "solid"
	case ModeTextured:
		return "textured"
	case ModeSmooth:
		return "smooth"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name as accepted in configuration files.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "wireframe":
		return ModeWireframe, nil
	case "flat":
		return ModeFlat, nil
	case "", "solid":
		return ModeSolid, nil
	case "textured":
		return ModeTextured, nil
	case "smooth":
		return ModeSmooth, nil
	}
	return 0, fmt.Errorf("render: unknown mode %q", s)
}

// Renderer draws whole meshes. Camera and Light are read only, so one
// Renderer may serve any number of passes; each pass allocates and discards
// its own depth buffer.
type Renderer struct {
	Camera *Camera
	// Light is the direction light travels in. It need not be normalized.
	Light  math3d.Vec3
	Cull   CullMode
	Logger *zap.Logger
}

// NewRenderer creates a renderer that culls by lighting and discards its
// log output.
func NewRenderer(camera *Camera, light math3d.Vec3) *Renderer {
	return &Renderer{
		Camera: camera,
		Light:  light,
		Cull:   CullByLight,
		Logger: zap.NewNop(),
	}
}

func (r *Renderer) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Renderer) logStats(pass string, mesh *models.Mesh, s Stats) {
	r.logger().Debug("render pass complete",
		zap.String("pass", pass),
		zap.String("mesh", mesh.Name),
		zap.Int("triangles", s.Triangles),
		zap.Int("culled", s.Culled),
		zap.Int("drawn", s.Drawn),
		zap.Int("pixels", s.Pixels))
}

// Render runs the pass selected by mode. tex is only used by ModeTextured.
func (r *Renderer) Render(mode Mode, mesh *models.Mesh, img *tga.Image, c tga.Color, tex *Texture) (Stats, error) {
	switch mode {
	case ModeWireframe:
		return r.RenderWireframe(mesh, img, c)
	case ModeFlat:
		return r.RenderFlat(mesh, img, c)
	case ModeSolid:
		return r.RenderSolid(mesh, img, c)
	case ModeTextured:
		return r.RenderTextured(mesh, img, tex)
	case ModeSmooth:
		return r.RenderSmooth(mesh, img, c)
	}
	return Stats{}, fmt.Errorf("render: unknown mode %v", mode)
}

// RenderWireframe draws the three edges of every triangle. The projected
// edge endpoints are fitted into the image rather than mapped through the
// camera zoom.
func (r *Renderer) RenderWireframe(mesh *models.Mesh, img *tga.Image, c tga.Color) (Stats, error) {
	if img.IsEmpty() {
		return Stats{}, tga.ErrEmptyImage
	}

	stats := Stats{Triangles: mesh.TriangleCount()}
	pts := make([]math3d.Vec2, 0, mesh.TriangleCount()*6)
	for i := range mesh.Triangles {
		v, err := mesh.TriangleVertices(i)
		if err != nil {
			return stats, fmt.Errorf("triangle %d: %w", i, err)
		}
		for j := range 3 {
			pts = append(pts, r.Camera.Project(v[j]), r.Camera.Project(v[(j+1)%3]))
		}
	}

	scr := fitToImage(pts, img.Width(), img.Height())
	for i := 0; i+1 < len(scr); i += 2 {
		a, b := scr[i], scr[i+1]
		if err := DrawLine(img, a.X, a.Y, b.X, b.Y, c); err != nil {
			return stats, err
		}
	}
	stats.Drawn = stats.Triangles
	r.logStats("wireframe", mesh, stats)
	return stats, nil
}

// RenderFlat fills every lit triangle with c scaled by its intensity. The
// projected vertices are fitted into the image and there is no depth test,
// so later triangles overwrite earlier ones.
func (r *Renderer) RenderFlat(mesh *models.Mesh, img *tga.Image, c tga.Color) (Stats, error) {
	if img.IsEmpty() {
		return Stats{}, tga.ErrEmptyImage
	}
	light, err := r.Light.Normalize()
	if err != nil {
		return Stats{}, fmt.Errorf("light direction: %w", err)
	}

	stats := Stats{Triangles: mesh.TriangleCount()}
	pts := make([]math3d.Vec2, 0, mesh.TriangleCount()*3)
	intensities := make([]float32, mesh.TriangleCount())
	visible := make([]bool, mesh.TriangleCount())
	for i := range mesh.Triangles {
		v, err := mesh.TriangleVertices(i)
		if err != nil {
			return stats, fmt.Errorf("triangle %d: %w", i, err)
		}
		for j := range 3 {
			pts = append(pts, r.Camera.Project(v[j]))
		}
		intensities[i], visible[i] = faceIntensity(v, light, r.Camera.Forward(), r.Cull)
	}

	scr := fitToImage(pts, img.Width(), img.Height())
	for i := range mesh.Triangles {
		if !visible[i] {
			stats.Culled++
			continue
		}
		stats.Drawn++
		if err := DrawTriangle(img, scr[3*i], scr[3*i+1], scr[3*i+2], c.Scale(intensities[i])); err != nil {
			return stats, err
		}
	}
	r.logStats("flat", mesh, stats)
	return stats, nil
}

// RenderSolid draws every triangle in color c, shaded by the light and
// resolved by depth.
func (r *Renderer) RenderSolid(mesh *models.Mesh, img *tga.Image, c tga.Color) (Stats, error) {
	rast, err := r.newRasterizer(img)
	if err != nil {
		return Stats{}, err
	}
	if stats, skip := r.offscreen("solid", mesh, img); skip {
		return stats, nil
	}
	shade := SolidShader(c)
	for i := range mesh.Triangles {
		v, err := mesh.TriangleVertices(i)
		if err != nil {
			return rast.Stats, fmt.Errorf("triangle %d: %w", i, err)
		}
		if _, err := rast.DrawTriangle3D(v, shade); err != nil {
			return rast.Stats, fmt.Errorf("triangle %d: %w", i, err)
		}
	}
	r.logStats("solid", mesh, rast.Stats)
	return rast.Stats, nil
}

// RenderTextured draws every triangle sampling tex at its interpolated
// texture coordinates, shaded by the light and resolved by depth.
func (r *Renderer) RenderTextured(mesh *models.Mesh, img *tga.Image, tex *Texture) (Stats, error) {
	if tex == nil {
		return Stats{}, ErrNoTexture
	}
	if !mesh.HasTexCoords() {
		return Stats{}, ErrNoTexCoords
	}
	rast, err := r.newRasterizer(img)
	if err != nil {
		return Stats{}, err
	}
	if stats, skip := r.offscreen("textured", mesh, img); skip {
		return stats, nil
	}
	for i := range mesh.Triangles {
		v, err := mesh.TriangleVertices(i)
		if err != nil {
			return rast.Stats, fmt.Errorf("triangle %d: %w", i, err)
		}
		uv, err := mesh.TriangleTexCoords(i)
		if err != nil {
			return rast.Stats, fmt.Errorf("triangle %d: %w", i, err)
		}
		if _, err := rast.DrawTriangleTextured(v, uv, tex); err != nil {
			return rast.Stats, fmt.Errorf("triangle %d: %w", i, err)
		}
	}
	r.logStats("textured", mesh, rast.Stats)
	return rast.Stats, nil
}

// RenderSmooth draws every triangle in color c with lighting interpolated
// from the mesh's vertex normals. Culling still uses the face normal.
func (r *Renderer) RenderSmooth(mesh *models.Mesh, img *tga.Image, c tga.Color) (Stats, error) {
	if !mesh.HasNormals() {
		return Stats{}, ErrNoNormals
	}
	rast, err := r.newRasterizer(img)
	if err != nil {
		return Stats{}, err
	}
	if stats, skip := r.offscreen("smooth", mesh, img); skip {
		return stats, nil
	}
	for i := range mesh.Triangles {
		v, err := mesh.TriangleVertices(i)
		if err != nil {
			return rast.Stats, fmt.Errorf("triangle %d: %w", i, err)
		}
		n, err := mesh.TriangleNormals(i)
		if err != nil {
			return rast.Stats, fmt.Errorf("triangle %d: %w", i, err)
		}
		if _, err := rast.DrawTriangleGouraud(v, n, c); err != nil {
			return rast.Stats, fmt.Errorf("triangle %d: %w", i, err)
		}
	}
	r.logStats("smooth", mesh, rast.Stats)
	return rast.Stats, nil
}

// offscreen reports whether mesh lies entirely outside the camera's view of
// img, in which case the returned stats count every triangle as culled.
func (r *Renderer) offscreen(pass string, mesh *models.Mesh, img *tga.Image) (Stats, bool) {
	if r.Camera.ViewVolume(img.Width(), img.Height()).IntersectBox(mesh.Bounds()) {
		return Stats{}, false
	}
	n := mesh.TriangleCount()
	r.logger().Debug("mesh outside view volume",
		zap.String("pass", pass),
		zap.String("mesh", mesh.Name))
	return Stats{Triangles: n, Culled: n}, true
}

func (r *Renderer) newRasterizer(img *tga.Image) (*Rasterizer, error) {
	rast, err := NewRasterizer(r.Camera, img, r.Light)
	if err != nil {
		return nil, err
	}
	rast.Cull = r.Cull
	return rast, nil
}

// RenderWireframe draws the edges of mesh into img.
func RenderWireframe(mesh *models.Mesh, camera *Camera, img *tga.Image, c tga.Color) error {
	_, err := NewRenderer(camera, math3d.Vec3{Z: -1}).RenderWireframe(mesh, img, c)
	return err
}

// RenderSolid draws mesh into img in color c lit along light.
func RenderSolid(mesh *models.Mesh, camera *Camera, light math3d.Vec3, img *tga.Image, c tga.Color) error {
	_, err := NewRenderer(camera, light).RenderSolid(mesh, img, c)
	return err
}

// RenderTextured draws mesh into img sampling tex, lit along light.
func RenderTextured(mesh *models.Mesh, camera *Camera, light math3d.Vec3, img *tga.Image, tex *Texture) error {
	_, err := NewRenderer(camera, light).RenderTextured(mesh, img, tex)
	return err
}
