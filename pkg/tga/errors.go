package tga

import "errors"

// Sentinel errors returned by the image buffer and the codec. They are
// wrapped with context, so test with errors.Is.
var (
	ErrEmptyImage    = errors.New("tga: empty image")
	ErrOutOfBounds   = errors.New("tga: pixel out of bounds")
	ErrInvalidFormat = errors.New("tga: invalid pixel format")
	ErrTooLarge      = errors.New("tga: image dimensions exceed 65535")
	ErrFileOpen      = errors.New("tga: cannot open file")
	ErrWrite         = errors.New("tga: write failed")
	ErrInvalidHeader = errors.New("tga: invalid header")
	ErrUnsupported   = errors.New("tga: unsupported image type")
	ErrTruncated     = errors.New("tga: truncated data")
	ErrInvalidRLE    = errors.New("tga: malformed RLE stream")
)
