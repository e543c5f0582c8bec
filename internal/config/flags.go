package config

import (
	"flag"
	"strings"

	"github.com/taigrr/swrender/pkg/models"
)

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	ConfigPath string
	Debug      bool
	Mode       string
	Cull       string
	Texture    string
	Output     string
	PNG        string
	Width      int
	Height     int
	Zoom       float64
	Primitive  string
	NoFlip     bool
	Raw        bool
	Axes       bool
	Bounds     bool
	Frames     int
	Preview    int

	// MeshPath is the first positional argument.
	MeshPath string
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Mode, "mode", "", "Render mode: wireframe, flat, solid, textured or smooth")
	fs.StringVar(&f.Cull, "cull", "", "Culling: light, view or none")
	fs.StringVar(&f.Texture, "texture", "", "Texture image (tga, png, jpeg or bmp)")
	fs.StringVar(&f.Output, "out", "", "Output TGA path")
	fs.StringVar(&f.PNG, "png", "", "Also write a PNG to this path")
	fs.IntVar(&f.Width, "width", 0, "Image width")
	fs.IntVar(&f.Height, "height", 0, "Image height")
	fs.Float64Var(&f.Zoom, "zoom", 0, "Camera zoom")
	fs.StringVar(&f.Primitive, "primitive", "", "Render a generated mesh: "+strings.Join(models.PrimitiveNames, ", "))
	fs.BoolVar(&f.NoFlip, "noflip", false, "Write rows top first")
	fs.BoolVar(&f.Raw, "raw", false, "Write an uncompressed TGA")
	fs.BoolVar(&f.Axes, "axes", false, "Draw the world axes")
	fs.BoolVar(&f.Bounds, "bounds", false, "Draw the mesh bounding box")
	fs.IntVar(&f.Frames, "frames", 0, "Render a turntable sequence of this many frames")
	fs.IntVar(&f.Preview, "preview", 0, "Print the image to the terminal this many columns wide")
	return f
}

// Parse parses args and records the positional mesh path.
func (f *Flags) Parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	f.MeshPath = fs.Arg(0)
	return nil
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Mode != "" {
		cfg.Render.Mode = f.Mode
	}
	if f.Cull != "" {
		cfg.Render.Cull = f.Cull
	}
	if f.Texture != "" {
		cfg.Render.Texture = f.Texture
	}
	if f.Output != "" {
		cfg.Output.Path = f.Output
	}
	if f.PNG != "" {
		cfg.Output.PNG = f.PNG
	}
	if f.Width > 0 {
		cfg.Image.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Image.Height = f.Height
	}
	if f.Zoom > 0 {
		cfg.Camera.Zoom = float32(f.Zoom)
	}
	if f.Primitive != "" {
		cfg.Mesh.Primitive = f.Primitive
		cfg.Mesh.Path = ""
	}
	if f.MeshPath != "" {
		cfg.Mesh.Path = f.MeshPath
	}
	if f.NoFlip {
		cfg.Output.FlipVertically = false
	}
	if f.Raw {
		cfg.Output.RLE = false
	}
	if f.Axes {
		cfg.Render.Axes = true
	}
	if f.Bounds {
		cfg.Render.Bounds = true
	}
	if f.Frames > 0 {
		cfg.Turntable.Frames = f.Frames
	}
	if f.Preview > 0 {
		cfg.Output.Preview = f.Preview
	}
}
