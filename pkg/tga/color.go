package tga

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
)

// Format is the number of bytes stored per pixel.
type Format int

const (
	Grayscale Format = 1
	RGB       Format = 3
	RGBA      Format = 4
)

// Valid reports whether f is one of the supported pixel formats.
func (f Format) Valid() bool {
	return f == Grayscale || f == RGB || f == RGBA
}

func (f Format) String() string {
	switch f {
	case Grayscale:
		return "grayscale"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts a format name as accepted in configuration files.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "grayscale", "gray":
		return Grayscale, nil
	case "rgb":
		return RGB, nil
	case "rgba":
		return RGBA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Color is a pixel value in on-disk component order. V holds blue, green,
// red, alpha; only the first Format bytes are meaningful.
type Color struct {
	V      [4]uint8
	Format Format
}

// NewRGBA creates a four-channel color.
func NewRGBA(r, g, b, a uint8) Color {
	return Color{V: [4]uint8{b, g, r, a}, Format: RGBA}
}

// NewRGB creates an opaque three-channel color.
func NewRGB(r, g, b uint8) Color {
	return Color{V: [4]uint8{b, g, r, 255}, Format: RGB}
}

// Gray creates a single-channel color.
func Gray(v uint8) Color {
	return Color{V: [4]uint8{v}, Format: Grayscale}
}

// ColorFromPacked unpacks v laid out as B<<24 | G<<16 | R<<8 | A.
func ColorFromPacked(v uint32, f Format) Color {
	return Color{
		V:      [4]uint8{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)},
		Format: f,
	}
}

// Common colors.
var (
	Black = NewRGBA(0, 0, 0, 255)
	White = NewRGBA(255, 255, 255, 255)
	Red   = NewRGBA(255, 0, 0, 255)
	Green = NewRGBA(0, 255, 0, 255)
	Blue  = NewRGBA(0, 0, 255, 255)
)

// Scale multiplies every component, alpha included, by f and truncates.
// Results are clamped to [0, 255].
func (c Color) Scale(f float32) Color {
	for i := range c.V {
		v := math32.Floor(float32(c.V[i]) * f)
		switch {
		case v <= 0:
			c.V[i] = 0
		case v >= 255:
			c.V[i] = 255
		default:
			c.V[i] = uint8(v)
		}
	}
	return c
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	switch c.Format {
	case Grayscale:
		return color.Gray{Y: c.V[0]}.RGBA()
	case RGB:
		return color.RGBA{R: c.V[2], G: c.V[1], B: c.V[0], A: 255}.RGBA()
	default:
		return color.NRGBA{R: c.V[2], G: c.V[1], B: c.V[0], A: c.V[3]}.RGBA()
	}
}

// convert maps any color.Color onto format f.
func convert(c color.Color, f Format) Color {
	if tc, ok := c.(Color); ok && tc.Format == f {
		return tc
	}
	switch f {
	case Grayscale:
		g := color.GrayModel.Convert(c).(color.Gray)
		return Gray(g.Y)
	case RGB:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		return Color{V: [4]uint8{n.B, n.G, n.R, 255}, Format: RGB}
	default:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		return NewRGBA(n.R, n.G, n.B, n.A)
	}
}

// Model returns the color model of images stored in format f.
func Model(f Format) color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return convert(c, f)
	})
}
