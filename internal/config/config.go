// Package config handles render configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/swrender/pkg/math3d"
	"github.com/taigrr/swrender/pkg/models"
	"github.com/taigrr/swrender/pkg/render"
	"github.com/taigrr/swrender/pkg/tga"
)

// Vec3 is a vector written as a three element YAML sequence.
type Vec3 [3]float32

// Math converts v to a math3d vector.
func (v Vec3) Math() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// RGB is a color written as a three element YAML sequence.
type RGB [3]uint8

// Color converts c to an opaque tga color.
func (c RGB) Color() tga.Color {
	return tga.NewRGBA(c[0], c[1], c[2], 255)
}

// Config holds all render settings.
type Config struct {
	Image   ImageConfig   `yaml:"image"`
	Camera  CameraConfig  `yaml:"camera"`
	Light   LightConfig   `yaml:"light"`
	Render  RenderConfig  `yaml:"render"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Output    OutputConfig    `yaml:"output"`
	Turntable TurntableConfig `yaml:"turntable"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ImageConfig holds the target raster settings.
type ImageConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"` // grayscale, rgb or rgba
}

// CameraConfig holds the orthographic camera.
type CameraConfig struct {
	Location Vec3    `yaml:"location"`
	Forward  Vec3    `yaml:"forward"`
	Up       Vec3    `yaml:"up"`
	Zoom     float32 `yaml:"zoom"`
}

// LightConfig holds the directional light.
type LightConfig struct {
	Direction Vec3 `yaml:"direction"` // direction the light travels in
}

// RenderConfig selects the render pass.
type RenderConfig struct {
	Mode       string `yaml:"mode"` // wireframe, flat, solid, textured or smooth
	Cull       string `yaml:"cull"` // light, view or none
	Color      RGB    `yaml:"color"`
	Background RGB    `yaml:"background"`
	Texture    string `yaml:"texture"`
	Axes       bool   `yaml:"axes"`
	Bounds     bool   `yaml:"bounds"`
}

// MeshConfig selects the geometry. Path wins over Primitive.
type MeshConfig struct {
	Path      string `yaml:"path"`
	Primitive string `yaml:"primitive"`
	Cells     int    `yaml:"cells"`
	Normalize bool   `yaml:"normalize"`
}

// OutputConfig holds where and how the image is written.
type OutputConfig struct {
	Path string `yaml:"path"`
	PNG  string `yaml:"png"`
	// FlipVertically stores the image bottom row first, so that camera up
	// points up in viewers.
	FlipVertically bool `yaml:"flip_vertically"`
	RLE            bool `yaml:"rle"`
	// Preview prints the image to stdout as terminal cells this many
	// columns wide. 0 disables it.
	Preview int `yaml:"preview"`
}

// TurntableConfig renders a numbered frame sequence of the mesh spinning
// about its vertical axis. Frames of 0 renders a single image.
type TurntableConfig struct {
	Frames int     `yaml:"frames"`
	FPS    int     `yaml:"fps"`
	Sweep  float32 `yaml:"sweep"` // degrees
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the default scene: a 1024×1024 RGB solid render seen
// from (1, 0.2, 1).
func Default() *Config {
	return &Config{
		Image: ImageConfig{
			Width:  1024,
			Height: 1024,
			Format: "rgb",
		},
		Camera: CameraConfig{
			Location: Vec3{1, 0.2, 1},
			Forward:  Vec3{-1, -0.3, -1},
			Up:       Vec3{0, 1, 0},
			Zoom:     400,
		},
		Light: LightConfig{
			Direction: Vec3{-3, -1, -3},
		},
		Render: RenderConfig{
			Mode:       "solid",
			Cull:       "light",
			Color:      RGB{255, 255, 255},
			Background: RGB{0, 0, 0},
		},
		Mesh: MeshConfig{
			Primitive: "sphere",
			Cells:     models.DefaultPrimitiveCells,
		},
		Output: OutputConfig{
			Path:           "output.tga",
			FlipVertically: true,
			RLE:            true,
		},
		Turntable: TurntableConfig{
			FPS:   30,
			Sweep: 360,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Image.Width <= 0 || c.Image.Width > 0xffff || c.Image.Height <= 0 || c.Image.Height > 0xffff {
		errs = append(errs, fmt.Errorf("image: size %dx%d outside 1..65535", c.Image.Width, c.Image.Height))
	}
	if _, err := tga.ParseFormat(c.Image.Format); err != nil {
		errs = append(errs, fmt.Errorf("image: %w", err))
	}
	if c.Camera.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("camera: zoom %v must be positive", c.Camera.Zoom))
	}
	if _, err := c.NewCamera(); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}
	if _, err := c.Light.Direction.Math().Normalize(); err != nil {
		errs = append(errs, fmt.Errorf("light: %w", err))
	}
	mode, err := render.ParseMode(c.Render.Mode)
	if err != nil {
		errs = append(errs, err)
	}
	if _, err := render.ParseCullMode(c.Render.Cull); err != nil {
		errs = append(errs, err)
	}
	if c.Mesh.Path == "" && c.Mesh.Primitive == "" {
		errs = append(errs, errors.New("mesh: no path or primitive"))
	}
	if mode == render.ModeTextured && c.Render.Texture == "" && c.Mesh.Path == "" {
		errs = append(errs, errors.New("render: textured mode needs a texture"))
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("output: no path"))
	}
	if c.Output.Preview < 0 {
		errs = append(errs, fmt.Errorf("output: preview width %d must not be negative", c.Output.Preview))
	}
	if c.Turntable.Frames < 0 {
		errs = append(errs, fmt.Errorf("turntable: frames %d must not be negative", c.Turntable.Frames))
	}
	if c.Turntable.Frames > 0 && c.Turntable.FPS <= 0 {
		errs = append(errs, fmt.Errorf("turntable: fps %d must be positive", c.Turntable.FPS))
	}
	return errors.Join(errs...)
}

// NewCamera builds the configured camera.
func (c *Config) NewCamera() (*render.Camera, error) {
	return render.NewCamera(c.Camera.Location.Math(), c.Camera.Forward.Math(), c.Camera.Up.Math(), c.Camera.Zoom)
}

// NewImage allocates the configured image cleared to the background color.
func (c *Config) NewImage() (*tga.Image, error) {
	f, err := tga.ParseFormat(c.Image.Format)
	if err != nil {
		return nil, err
	}
	img, err := tga.New(c.Image.Width, c.Image.Height, f)
	if err != nil {
		return nil, err
	}
	img.Clear(c.Render.Background.Color())
	return img, nil
}

// NewRenderer builds a renderer for the configured camera, light and culling.
func (c *Config) NewRenderer() (*render.Renderer, error) {
	cam, err := c.NewCamera()
	if err != nil {
		return nil, err
	}
	cull, err := render.ParseCullMode(c.Render.Cull)
	if err != nil {
		return nil, err
	}
	r := render.NewRenderer(cam, c.Light.Direction.Math())
	r.Cull = cull
	return r, nil
}
