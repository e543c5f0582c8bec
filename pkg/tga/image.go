// Package tga provides an in-memory pixel buffer and a Truevision TGA codec
// with run-length encoding.
package tga

import (
	"fmt"
	"image"
	"image/color"
)

// Image is a row-major pixel buffer with a fixed number of bytes per pixel.
// The zero value is an empty image that rejects all pixel access.
type Image struct {
	width  int
	height int
	format Format
	data   []byte
}

// New allocates a zero-filled image.
func New(width, height int, f Format) (*Image, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d bytes per pixel", ErrInvalidFormat, int(f))
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("tga: negative dimensions %dx%d", width, height)
	}
	return &Image{
		width:  width,
		height: height,
		format: f,
		data:   make([]byte, width*height*int(f)),
	}, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// Format returns the bytes-per-pixel format.
func (img *Image) Format() Format { return img.format }

// Bytes returns the underlying pixel data. The slice is shared with the image.
func (img *Image) Bytes() []byte { return img.data }

// IsEmpty reports whether the image has no pixels.
func (img *Image) IsEmpty() bool { return len(img.data) == 0 }

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	c := *img
	c.data = append([]byte(nil), img.data...)
	return &c
}

func (img *Image) offset(x, y int) (int, error) {
	if img.IsEmpty() {
		return 0, ErrEmptyImage
	}
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, img.width, img.height)
	}
	return (y*img.width + x) * int(img.format), nil
}

// GetPixel returns the color at (x, y).
func (img *Image) GetPixel(x, y int) (Color, error) {
	i, err := img.offset(x, y)
	if err != nil {
		return Color{}, err
	}
	c := Color{Format: img.format}
	copy(c.V[:], img.data[i:i+int(img.format)])
	return c, nil
}

// SetPixel stores the first Format() bytes of c at (x, y).
func (img *Image) SetPixel(x, y int, c Color) error {
	i, err := img.offset(x, y)
	if err != nil {
		return err
	}
	copy(img.data[i:i+int(img.format)], c.V[:])
	return nil
}

// Clear fills every pixel with c.
func (img *Image) Clear(c Color) {
	bpp := int(img.format)
	if len(img.data) == 0 {
		return
	}
	copy(img.data, c.V[:bpp])
	for i := bpp; i < len(img.data); i *= 2 {
		copy(img.data[i:], img.data[:i])
	}
}

// FlipVertically swaps row i with row height-1-i.
func (img *Image) FlipVertically() error {
	if img.IsEmpty() {
		return ErrEmptyImage
	}
	stride := img.width * int(img.format)
	tmp := make([]byte, stride)
	for y := 0; y < img.height/2; y++ {
		top := img.data[y*stride : (y+1)*stride]
		bottom := img.data[(img.height-1-y)*stride : (img.height-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
	return nil
}

// FlipHorizontally mirrors every row.
func (img *Image) FlipHorizontally() error {
	if img.IsEmpty() {
		return ErrEmptyImage
	}
	bpp := int(img.format)
	stride := img.width * bpp
	tmp := make([]byte, bpp)
	for y := 0; y < img.height; y++ {
		row := img.data[y*stride : (y+1)*stride]
		for x := 0; x < img.width/2; x++ {
			l := row[x*bpp : (x+1)*bpp]
			r := row[(img.width-1-x)*bpp : (img.width-x)*bpp]
			copy(tmp, l)
			copy(l, r)
			copy(r, tmp)
		}
	}
	return nil
}

// ColorModel implements image.Image.
func (img *Image) ColorModel() color.Model {
	return Model(img.format)
}

// Bounds implements image.Image.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// At implements image.Image. Out-of-range reads return the zero color.
func (img *Image) At(x, y int) color.Color {
	c, err := img.GetPixel(x, y)
	if err != nil {
		return Color{Format: img.format}
	}
	return c
}

// Set implements draw.Image. Out-of-range writes are ignored; use SetPixel
// to observe them.
func (img *Image) Set(x, y int, c color.Color) {
	_ = img.SetPixel(x, y, convert(c, img.format))
}
