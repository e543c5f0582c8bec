// swrender - CPU software rasterizer
// Render OBJ and GLB meshes, or generated primitives, to TGA images.
//
// Modes:
//
//	wireframe - Triangle edges fitted to the image
//	flat      - Lit triangles fitted to the image, no depth test
//	solid     - Depth-tested, flat-shaded triangles (default)
//	textured  - Depth-tested, flat-shaded, textured triangles
//	smooth    - Depth-tested triangles lit per vertex
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/taigrr/swrender/internal/config"
	"github.com/taigrr/swrender/internal/logger"
	"github.com/taigrr/swrender/pkg/models"
	"github.com/taigrr/swrender/pkg/render"
	"github.com/taigrr/swrender/pkg/tga"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "swrender - CPU software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: swrender [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model, the -primitive mesh is rendered.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flags := config.RegisterFlags(flag.CommandLine)
	if err := flags.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *config.Flags) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	mode, err := render.ParseMode(cfg.Render.Mode)
	if err != nil {
		return err
	}

	mesh, embedded, err := loadMesh(cfg.Mesh)
	if err != nil {
		return err
	}
	logger.Info("mesh loaded",
		zap.String("mesh", mesh.Name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))

	tex, err := loadTexture(cfg.Render.Texture, embedded)
	if err != nil {
		return err
	}

	r, err := cfg.NewRenderer()
	if err != nil {
		return err
	}
	r.Logger = logger.Log

	if cfg.Turntable.Frames == 0 {
		return renderFrame(cfg, r, mode, mesh, tex, cfg.Output.Path, cfg.Output.PNG)
	}

	sweep := cfg.Turntable.Sweep * math32.Pi / 180
	for i, angle := range render.TurntableAngles(cfg.Turntable.Frames, cfg.Turntable.FPS, sweep) {
		pngPath := ""
		if cfg.Output.PNG != "" {
			pngPath = framePath(cfg.Output.PNG, i)
		}
		if err := renderFrame(cfg, r, mode, render.SpinMesh(mesh, angle), tex, framePath(cfg.Output.Path, i), pngPath); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

// loadMesh loads the configured mesh file, or generates the configured
// primitive. A GLB file may also carry a texture.
func loadMesh(cfg config.MeshConfig) (*models.Mesh, image.Image, error) {
	var (
		mesh     *models.Mesh
		embedded image.Image
		err      error
	)

	switch ext := strings.ToLower(filepath.Ext(cfg.Path)); {
	case cfg.Path == "":
		mesh, err = models.Primitive(cfg.Primitive, cfg.Cells)
	case ext == ".obj":
		l := models.NewOBJLoader()
		l.Logger = logger.Log
		mesh, err = l.Load(cfg.Path)
	case ext == ".glb" || ext == ".gltf":
		mesh, embedded, err = models.LoadGLBWithTexture(cfg.Path)
	default:
		return nil, nil, fmt.Errorf("unsupported model format %q", ext)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load mesh: %w", err)
	}

	if cfg.Normalize {
		mesh.Normalize()
	}
	if err := mesh.Validate(); err != nil {
		return nil, nil, fmt.Errorf("mesh %s: %w", mesh.Name, err)
	}
	return mesh, embedded, nil
}

// loadTexture loads the texture file at path. Without a path it falls back
// to the texture embedded in the model, if any.
func loadTexture(path string, embedded image.Image) (*render.Texture, error) {
	if path != "" {
		tex, err := render.LoadTexture(path)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		logger.Debug("texture loaded", zap.String("path", path))
		return tex, nil
	}
	if embedded == nil {
		return nil, nil
	}
	tex, err := render.TextureFromImage(embedded)
	if err != nil {
		return nil, fmt.Errorf("embedded texture: %w", err)
	}
	logger.Debug("using embedded texture",
		zap.Int("width", tex.Image().Width()),
		zap.Int("height", tex.Image().Height()))
	return tex, nil
}

func renderFrame(cfg *config.Config, r *render.Renderer, mode render.Mode, mesh *models.Mesh, tex *render.Texture, outPath, pngPath string) error {
	img, err := cfg.NewImage()
	if err != nil {
		return err
	}

	// Wireframe and flat passes fit the mesh to the image, so only the
	// camera-mapped passes can miss it.
	bounds := mesh.Bounds()
	if mode != render.ModeWireframe && mode != render.ModeFlat &&
		!r.Camera.ViewVolume(img.Width(), img.Height()).IntersectBox(bounds) {
		logger.Warn("mesh is outside the view volume",
			zap.String("mesh", mesh.Name),
			zap.Stringer("mode", mode))
	}

	stats, err := r.Render(mode, mesh, img, cfg.Render.Color.Color(), tex)
	if err != nil {
		return err
	}

	if cfg.Render.Axes || cfg.Render.Bounds {
		overlay := render.NewOverlay(r.Camera, img)
		if cfg.Render.Bounds {
			overlay.DrawBox(bounds, tga.Gray(160))
		}
		if cfg.Render.Axes {
			size := bounds.Size()
			overlay.DrawAxes(max(size.X, size.Y, size.Z, 1))
		}
	}

	if cfg.Output.Preview > 0 {
		if err := printPreview(img, cfg.Output.Preview); err != nil {
			return err
		}
	}

	if cfg.Output.FlipVertically {
		if err := img.FlipVertically(); err != nil {
			return err
		}
	}

	if cfg.Output.RLE {
		err = img.WriteFile(outPath)
	} else {
		err = img.WriteFileRaw(outPath)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if pngPath != "" {
		if err := img.SavePNG(pngPath); err != nil {
			return fmt.Errorf("write %s: %w", pngPath, err)
		}
	}

	logger.Info("image written",
		zap.String("path", outPath),
		zap.Stringer("mode", mode),
		zap.Int("triangles", stats.Triangles),
		zap.Int("drawn", stats.Drawn),
		zap.Int("culled", stats.Culled),
		zap.Int("pixels", stats.Pixels))
	return nil
}

// printPreview writes img to stdout as terminal cells with camera up at the
// top, whether or not the file is written flipped.
func printPreview(img *tga.Image, cols int) error {
	view := img.Clone()
	// Rows are stored bottom first until the output flip.
	if err := view.FlipVertically(); err != nil {
		return err
	}
	out, err := render.Preview(view, cols)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	fmt.Fprintln(os.Stdout, out)
	return nil
}

// framePath inserts a zero-padded frame number before the extension.
func framePath(path string, frame int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(path, ext), frame, ext)
}
