package tga

import (
	"bytes"
	"fmt"
)

// maxRun is the longest run a single RLE packet can describe.
const maxRun = 128

// EncodeRLE compresses a row-major pixel stream of bpp-byte pixels into TGA
// RLE packets. A raw packet is cut only when the next three pixels are equal,
// so a lone pair stays inside the raw packet.
func EncodeRLE(pixels []byte, bpp int) []byte {
	n := len(pixels) / bpp
	px := func(i int) []byte { return pixels[i*bpp : (i+1)*bpp] }
	eq := func(i, j int) bool { return bytes.Equal(px(i), px(j)) }

	out := make([]byte, 0, len(pixels)/2+n/maxRun+1)
	for cur := 0; cur < n; {
		run := 1
		if cur+1 < n && eq(cur, cur+1) {
			for cur+run < n && run < maxRun && eq(cur, cur+run) {
				run++
			}
			out = append(out, byte(run-1)|0x80)
			out = append(out, px(cur)...)
		} else {
			for cur+run < n && run < maxRun {
				i := cur + run
				if i+2 < n && eq(i, i+1) && eq(i, i+2) {
					break
				}
				run++
			}
			out = append(out, byte(run-1))
			out = append(out, pixels[cur*bpp:(cur+run)*bpp]...)
		}
		cur += run
	}
	return out
}

// DecodeRLE expands RLE packets from src until npixels pixels have been
// produced. It returns the pixels and the number of bytes of src consumed.
func DecodeRLE(src []byte, npixels, bpp int) ([]byte, int, error) {
	out := make([]byte, 0, npixels*bpp)
	pos := 0
	for len(out) < npixels*bpp {
		if pos >= len(src) {
			return nil, pos, fmt.Errorf("%w: %d of %d pixels decoded", ErrTruncated, len(out)/bpp, npixels)
		}
		marker := src[pos]
		pos++
		count := int(marker&0x7f) + 1
		if len(out)/bpp+count > npixels {
			return nil, pos, fmt.Errorf("%w: packet of %d overruns %d pixels", ErrInvalidRLE, count, npixels)
		}

		if marker&0x80 != 0 {
			if pos+bpp > len(src) {
				return nil, pos, fmt.Errorf("%w: replicate packet", ErrTruncated)
			}
			p := src[pos : pos+bpp]
			pos += bpp
			for range count {
				out = append(out, p...)
			}
			continue
		}

		size := count * bpp
		if pos+size > len(src) {
			return nil, pos, fmt.Errorf("%w: raw packet", ErrTruncated)
		}
		out = append(out, src[pos:pos+size]...)
		pos += size
	}
	return out, pos, nil
}
