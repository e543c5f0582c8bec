package tga

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// FromImage copies any image.Image into a new buffer of format f.
func FromImage(src image.Image, f Format) (*Image, error) {
	b := src.Bounds()
	img, err := New(b.Dx(), b.Dy(), f)
	if err != nil {
		return nil, err
	}
	xdraw.Draw(img, img.Bounds(), src, b.Min, xdraw.Src)
	return img, nil
}

// ToRGBA converts the image to a standard Go image.RGBA.
func (img *Image) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	xdraw.Draw(dst, dst.Bounds(), img, image.Point{}, xdraw.Src)
	return dst
}

// SavePNG saves the image as a PNG file.
func (img *Image) SavePNG(path string) (err error) {
	if img.IsEmpty() {
		return ErrEmptyImage
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer closeFile(f, &err)
	if err := png.Encode(f, img.ToRGBA()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Scale resamples the image in place to width x height using
// nearest-neighbor sampling.
func (img *Image) Scale(width, height int) error {
	if img.IsEmpty() {
		return ErrEmptyImage
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("tga: invalid scale target %dx%d", width, height)
	}
	dst, err := New(width, height, img.format)
	if err != nil {
		return err
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	*img = *dst
	return nil
}
