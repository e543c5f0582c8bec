package tga

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeRLEFixture(t *testing.T) {
	pixels := []byte{0, 3, 1, 4, 4, 5, 5, 5, 0}
	want := []byte{4, 0, 3, 1, 4, 4, 130, 5, 0, 0}

	got := EncodeRLE(pixels, 1)
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeRLE() = %v, want %v", got, want)
	}

	back, n, err := DecodeRLE(got, 9, 1)
	if err != nil {
		t.Fatalf("DecodeRLE() error = %v", err)
	}
	if n != len(got) || !bytes.Equal(back, pixels) {
		t.Errorf("DecodeRLE() = %v (%d bytes), want %v (%d bytes)", back, n, pixels, len(got))
	}
}

func TestEncodeRLE(t *testing.T) {
	seq := func(n int) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(i)
		}
		return b
	}

	tests := []struct {
		name   string
		pixels []byte
		bpp    int
		want   []byte
	}{
		{"single pixel", []byte{9}, 1, []byte{0, 9}},
		{"leading pair", []byte{7, 7, 1}, 1, []byte{0x81, 7, 0, 1}},
		{"trailing pair stays raw", []byte{1, 2, 2}, 1, []byte{2, 1, 2, 2}},
		{"rgb replicate", []byte{1, 2, 3, 1, 2, 3, 1, 2, 3}, 3, []byte{0x82, 1, 2, 3}},
		{"rgb raw", []byte{1, 2, 3, 1, 2, 4}, 3, []byte{1, 1, 2, 3, 1, 2, 4}},
		{
			"long replicate splits at 128",
			bytes.Repeat([]byte{5}, 300), 1,
			[]byte{0xff, 5, 0xff, 5, 0x80 | 43, 5},
		},
		{
			"long raw splits at 128",
			seq(130), 1,
			append(append([]byte{127}, seq(128)...), 1, 128, 129),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeRLE(tc.pixels, tc.bpp)
			if !bytes.Equal(got, tc.want) {
				t.Errorf("EncodeRLE() = %v, want %v", got, tc.want)
			}
			back, _, err := DecodeRLE(got, len(tc.pixels)/tc.bpp, tc.bpp)
			if err != nil {
				t.Fatalf("DecodeRLE() error = %v", err)
			}
			if !bytes.Equal(back, tc.pixels) {
				t.Errorf("round trip = %v, want %v", back, tc.pixels)
			}
		})
	}
}

func TestDecodeRLEErrors(t *testing.T) {
	if _, _, err := DecodeRLE([]byte{4, 1, 2}, 5, 1); !errors.Is(err, ErrTruncated) {
		t.Errorf("short raw packet error = %v, want ErrTruncated", err)
	}
	if _, _, err := DecodeRLE([]byte{0x81}, 2, 1); !errors.Is(err, ErrTruncated) {
		t.Errorf("short replicate packet error = %v, want ErrTruncated", err)
	}
	if _, _, err := DecodeRLE([]byte{0x85, 1}, 3, 1); !errors.Is(err, ErrInvalidRLE) {
		t.Errorf("overrunning packet error = %v, want ErrInvalidRLE", err)
	}
}

func TestEncodeLayout(t *testing.T) {
	img := grayImage(t, 3, 3, []byte{0, 3, 1, 4, 4, 5, 5, 5, 0})

	var buf bytes.Buffer
	if err := img.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := buf.Bytes()

	wantHeader := []byte{0, 0, 11, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 0, 3, 0, 8, 0x20}
	if !bytes.Equal(out[:headerSize], wantHeader) {
		t.Errorf("header = %v, want %v", out[:headerSize], wantHeader)
	}
	payload := out[headerSize : len(out)-len(footer)]
	if want := []byte{4, 0, 3, 1, 4, 4, 130, 5, 0, 0}; !bytes.Equal(payload, want) {
		t.Errorf("payload = %v, want %v", payload, want)
	}
	tail := out[len(out)-26:]
	if !bytes.Equal(tail[:8], make([]byte, 8)) || string(tail[8:25]) != "TRUEVISION-XFILE." || tail[25] != 0 {
		t.Errorf("footer = %q", tail)
	}
}

func TestEncodeTrueColorHeader(t *testing.T) {
	img, _ := New(300, 2, RGBA)
	var buf bytes.Buffer
	if err := img.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	var h header
	if err := binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, &h); err != nil {
		t.Fatal(err)
	}
	if h.DataType != typeRLETrueColor || h.Width != 300 || h.Height != 2 || h.BitsPerPixel != 32 {
		t.Errorf("header = %+v", h)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, f := range []Format{Grayscale, RGB, RGBA} {
		for _, rle := range []bool{true, false} {
			img, _ := New(17, 9, f)
			for y := range 9 {
				for x := range 17 {
					v := uint8((x / 3) * (y + 1))
					_ = img.SetPixel(x, y, NewRGBA(v, v+1, v+2, v+3))
				}
			}

			var buf bytes.Buffer
			var err error
			if rle {
				err = img.Encode(&buf)
			} else {
				err = img.EncodeRaw(&buf)
			}
			if err != nil {
				t.Fatalf("%v rle=%v: encode error = %v", f, rle, err)
			}

			got, err := Decode(&buf)
			if err != nil {
				t.Fatalf("%v rle=%v: Decode() error = %v", f, rle, err)
			}
			if got.Width() != 17 || got.Height() != 9 || got.Format() != f {
				t.Errorf("%v rle=%v: decoded %dx%d %v", f, rle, got.Width(), got.Height(), got.Format())
			}
			if !bytes.Equal(got.Bytes(), img.Bytes()) {
				t.Errorf("%v rle=%v: pixel data differs after round trip", f, rle)
			}
		}
	}
}

func TestDecodeBottomLeftOrigin(t *testing.T) {
	data := []byte{0, 0, typeRawGray, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 2, 0, 8, 0}
	data = append(data, 1, 2)

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if want := []byte{2, 1}; !bytes.Equal(img.Bytes(), want) {
		t.Errorf("pixels = %v, want %v", img.Bytes(), want)
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := func() []byte {
		return []byte{0, 0, typeRawTrueColor, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 24, 0x20}
	}

	tests := []struct {
		name string
		data func() []byte
		want error
	}{
		{"short header", func() []byte { return valid()[:10] }, ErrTruncated},
		{"color map", func() []byte { d := valid(); d[1] = 1; return d }, ErrUnsupported},
		{"unknown type", func() []byte { d := valid(); d[2] = 9; return d }, ErrUnsupported},
		{"zero width", func() []byte { d := valid(); d[12] = 0; return d }, ErrInvalidHeader},
		{"16 bit", func() []byte { d := valid(); d[16] = 16; return d }, ErrUnsupported},
		{"missing pixels", valid, ErrTruncated},
		{"huge raw image", func() []byte { d := valid(); d[12], d[13], d[14], d[15] = 0xff, 0xff, 0xff, 0xff; return append(d, 1, 2, 3) }, ErrTruncated},
		{"huge rle image", func() []byte {
			d := valid()
			d[2] = typeRLETrueColor
			d[12], d[13], d[14], d[15] = 0xff, 0xff, 0xff, 0xff
			return append(d, 0xff, 1, 2, 3)
		}, ErrTruncated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tc.data()))
			if !errors.Is(err, tc.want) {
				t.Errorf("Decode() error = %v, want %v", err, tc.want)
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeErrors(t *testing.T) {
	var empty Image
	if err := empty.Encode(&bytes.Buffer{}); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Encode(empty) error = %v, want ErrEmptyImage", err)
	}

	img, _ := New(2, 2, RGB)
	if err := img.Encode(failWriter{}); !errors.Is(err, ErrWrite) {
		t.Errorf("Encode(failing writer) error = %v, want ErrWrite", err)
	}

	big, _ := New(70000, 1, Grayscale)
	if err := big.Encode(&bytes.Buffer{}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Encode(70000x1) error = %v, want ErrTooLarge", err)
	}
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tga")

	img, _ := New(4, 4, RGB)
	_ = img.SetPixel(1, 2, Red)
	if err := img.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() <= headerSize+26 {
		t.Errorf("file size = %d, expected header + payload + footer", info.Size())
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	c, _ := got.GetPixel(1, 2)
	if c.V[2] != 255 || c.V[0] != 0 {
		t.Errorf("pixel (1,2) = %v, want red", c.V)
	}

	if err := img.WriteFile(filepath.Join(dir, "missing", "out.tga")); !errors.Is(err, ErrFileOpen) {
		t.Errorf("WriteFile() into missing dir error = %v, want ErrFileOpen", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "nope.tga")); !errors.Is(err, ErrFileOpen) {
		t.Errorf("ReadFile() missing file error = %v, want ErrFileOpen", err)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img, _ := New(3, 3, RGB)
	img.Clear(Blue)
	if err := img.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("SavePNG() did not write a PNG signature")
	}
}

type closer struct{ err error }

func (c closer) Close() error { return c.err }

func TestCloseFile(t *testing.T) {
	diskFull := errors.New("disk full")
	earlier := errors.New("earlier")

	tests := []struct {
		name     string
		closeErr error
		prior    error
		want     error
	}{
		{"clean", nil, nil, nil},
		{"close fails", diskFull, nil, ErrWrite},
		{"earlier error wins", diskFull, earlier, earlier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prior
			closeFile(closer{tt.closeErr}, &err)
			if tt.want == nil {
				if err != nil {
					t.Errorf("err = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if tt.prior == nil && !errors.Is(err, diskFull) {
				t.Errorf("err = %v does not wrap the close error", err)
			}
		})
	}
}

func TestSavePNGErrors(t *testing.T) {
	var empty Image
	if err := empty.SavePNG(filepath.Join(t.TempDir(), "x.png")); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("SavePNG(empty) error = %v, want ErrEmptyImage", err)
	}
	img, _ := New(2, 2, RGB)
	if err := img.SavePNG(t.TempDir()); !errors.Is(err, ErrFileOpen) {
		t.Errorf("SavePNG(dir) error = %v, want ErrFileOpen", err)
	}
}

func BenchmarkEncodeRLE(b *testing.B) {
	img, _ := New(512, 512, RGB)
	for y := range 512 {
		for x := range 512 {
			_ = img.SetPixel(x, y, NewRGB(uint8(x/16), uint8(y/16), 0))
		}
	}

	for b.Loop() {
		_ = EncodeRLE(img.Bytes(), 3)
	}
}
