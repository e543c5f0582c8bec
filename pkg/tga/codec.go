package tga

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Image type codes from the TGA header.
const (
	typeRawTrueColor = 2
	typeRawGray      = 3
	typeRLETrueColor = 10
	typeRLEGray      = 11
)

// Image descriptor bits.
const (
	descRightToLeft = 0x10
	descTopToBottom = 0x20
)

const headerSize = 18

var footer = append(make([]byte, 8), "TRUEVISION-XFILE.\x00"...)

// header is the 18-byte TGA file header. Field order and sizes match the
// on-disk layout, so it can be read and written with encoding/binary.
type header struct {
	IDLength       uint8
	ColorMapType   uint8
	DataType       uint8
	ColorMapOrigin uint16
	ColorMapLength uint16
	ColorMapDepth  uint8
	XOrigin        uint16
	YOrigin        uint16
	Width          uint16
	Height         uint16
	BitsPerPixel   uint8
	Descriptor     uint8
}

func (img *Image) header(rle bool) (header, error) {
	if img.IsEmpty() {
		return header{}, ErrEmptyImage
	}
	if img.width > 0xffff || img.height > 0xffff {
		return header{}, fmt.Errorf("%w: %dx%d", ErrTooLarge, img.width, img.height)
	}
	h := header{
		Width:        uint16(img.width),
		Height:       uint16(img.height),
		BitsPerPixel: uint8(img.format) * 8,
		Descriptor:   descTopToBottom,
	}
	switch {
	case img.format == Grayscale && rle:
		h.DataType = typeRLEGray
	case img.format == Grayscale:
		h.DataType = typeRawGray
	case rle:
		h.DataType = typeRLETrueColor
	default:
		h.DataType = typeRawTrueColor
	}
	return h, nil
}

// Encode writes the image as an RLE-compressed TGA stream. Rows are written
// in memory order with a top-left origin, so flip first if the pixel data was
// produced bottom-up.
func (img *Image) Encode(w io.Writer) error {
	return img.encode(w, true)
}

// EncodeRaw writes the image as an uncompressed TGA stream.
func (img *Image) EncodeRaw(w io.Writer) error {
	return img.encode(w, false)
}

func (img *Image) encode(w io.Writer, rle bool) error {
	h, err := img.header(rle)
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("%w: header: %w", ErrWrite, err)
	}

	payload := img.data
	if rle {
		payload = EncodeRLE(img.data, int(img.format))
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w: pixel data: %w", ErrWrite, err)
	}
	if _, err := w.Write(footer); err != nil {
		return fmt.Errorf("%w: footer: %w", ErrWrite, err)
	}
	return nil
}

// WriteFile writes the image to path as an RLE-compressed TGA file.
func (img *Image) WriteFile(path string) error {
	return img.writeFile(path, true)
}

// WriteFileRaw writes the image to path as an uncompressed TGA file.
func (img *Image) WriteFileRaw(path string) error {
	return img.writeFile(path, false)
}

func (img *Image) writeFile(path string, rle bool) (err error) {
	if img.IsEmpty() {
		return ErrEmptyImage
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer closeFile(f, &err)

	bw := bufio.NewWriter(f)
	if err := img.encode(bw, rle); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// closeFile closes c and reports a close failure through err as ErrWrite
// unless err already holds an earlier failure.
func closeFile(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("%w: %w", ErrWrite, cerr)
	}
}

// Decode reads a TGA stream of type 2, 3, 10 or 11. The returned image is
// always stored top row first regardless of the file's origin.
func Decode(r io.Reader) (*Image, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header", ErrTruncated)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if h.ColorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped images", ErrUnsupported)
	}
	if h.Width == 0 || h.Height == 0 {
		return nil, fmt.Errorf("%w: zero dimensions", ErrInvalidHeader)
	}
	if h.BitsPerPixel%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupported, h.BitsPerPixel)
	}
	f := Format(h.BitsPerPixel / 8)
	rle := false
	switch h.DataType {
	case typeRawGray, typeRLEGray:
		if f != Grayscale {
			return nil, fmt.Errorf("%w: grayscale with %d bits per pixel", ErrInvalidHeader, h.BitsPerPixel)
		}
		rle = h.DataType == typeRLEGray
	case typeRawTrueColor, typeRLETrueColor:
		if f != RGB && f != RGBA {
			return nil, fmt.Errorf("%w: true-color with %d bits per pixel", ErrUnsupported, h.BitsPerPixel)
		}
		rle = h.DataType == typeRLETrueColor
	default:
		return nil, fmt.Errorf("%w: type %d", ErrUnsupported, h.DataType)
	}

	if _, err := io.CopyN(io.Discard, r, int64(h.IDLength)); err != nil {
		return nil, fmt.Errorf("%w: image id", ErrTruncated)
	}

	// The header's dimensions are not trusted for allocation until the
	// stream has shown it holds enough data for them.
	npixels := int(h.Width) * int(h.Height)
	size := npixels * int(f)
	var data []byte
	if rle {
		rest, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read pixel data: %w", err)
		}
		// Every packet covers at most 128 pixels and costs at least one
		// marker byte and one pixel.
		if need := (npixels + 127) / 128 * (1 + int(f)); len(rest) < need {
			return nil, fmt.Errorf("%w: %d bytes cannot hold %d pixels", ErrTruncated, len(rest), npixels)
		}
		if data, _, err = DecodeRLE(rest, npixels, int(f)); err != nil {
			return nil, err
		}
	} else {
		var err error
		data, err = io.ReadAll(io.LimitReader(r, int64(size)))
		if err != nil {
			return nil, fmt.Errorf("read pixel data: %w", err)
		}
		if len(data) < size {
			return nil, fmt.Errorf("%w: pixel data", ErrTruncated)
		}
	}
	img := &Image{
		width:  int(h.Width),
		height: int(h.Height),
		format: f,
		data:   data,
	}

	if h.Descriptor&descTopToBottom == 0 {
		if err := img.FlipVertically(); err != nil {
			return nil, err
		}
	}
	if h.Descriptor&descRightToLeft != 0 {
		if err := img.FlipHorizontally(); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// ReadFile decodes the TGA file at path.
func ReadFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
