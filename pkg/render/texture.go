package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // Register BMP decoder

	"github.com/taigrr/swrender/pkg/tga"
)

// Texture is an image sampled by texture coordinates. Row 0 corresponds to
// v = 0, so images decoded top row first are flipped on load.
type Texture struct {
	img *tga.Image
}

// NewTexture wraps img without copying it.
func NewTexture(img *tga.Image) (*Texture, error) {
	if img == nil || img.IsEmpty() {
		return nil, tga.ErrEmptyImage
	}
	return &Texture{img: img}, nil
}

// LoadTexture loads a texture from a TGA, PNG, JPEG or BMP file.
func LoadTexture(path string) (*Texture, error) {
	if !strings.EqualFold(filepath.Ext(path), ".tga") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open texture: %w", err)
		}
		defer f.Close()

		decoded, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return TextureFromImage(decoded)
	}

	img, err := tga.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture: %w", err)
	}
	if err := img.FlipVertically(); err != nil {
		return nil, err
	}
	return NewTexture(img)
}

// TextureFromImage converts a decoded image, stored top row first, into an
// RGBA texture.
func TextureFromImage(src image.Image) (*Texture, error) {
	if src == nil {
		return nil, tga.ErrEmptyImage
	}
	img, err := tga.FromImage(src, tga.RGBA)
	if err != nil {
		return nil, err
	}
	if err := img.FlipVertically(); err != nil {
		return nil, err
	}
	return NewTexture(img)
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 tga.Color) (*Texture, error) {
	img, err := tga.New(width, height, tga.RGBA)
	if err != nil {
		return nil, err
	}
	for y := range height {
		for x := range width {
			c := c2
			if (x/checkSize+y/checkSize)%2 == 0 {
				c = c1
			}
			if err := img.SetPixel(x, y, c); err != nil {
				return nil, err
			}
		}
	}
	return NewTexture(img)
}

// Image returns the underlying texel buffer.
func (t *Texture) Image() *tga.Image {
	return t.img
}

// Sample returns the texel nearest to (u*width, v*height), clamped to the
// texture edges. Grayscale and RGB texels are widened to opaque RGBA.
func (t *Texture) Sample(u, v float32) tga.Color {
	w, h := t.img.Width(), t.img.Height()
	x := min(max(int(u*float32(w)), 0), w-1)
	y := min(max(int(v*float32(h)), 0), h-1)
	c, _ := t.img.GetPixel(x, y)
	switch c.Format {
	case tga.Grayscale:
		return tga.NewRGBA(c.V[0], c.V[0], c.V[0], 255)
	case tga.RGB:
		c.V[3] = 255
		c.Format = tga.RGBA
	}
	return c
}
