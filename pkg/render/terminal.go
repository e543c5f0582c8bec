package render

import (
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/swrender/pkg/tga"
)

// CellSetter receives terminal cells. uv.Screen and *uv.Buffer both
// satisfy it.
type CellSetter interface {
	SetCell(x, y int, c *uv.Cell)
}

// DrawCells draws img onto area of scr. Each terminal row shows two image
// rows: ▀ (upper half block) with fg=top pixel and bg=bottom pixel.
func DrawCells(img *tga.Image, scr CellSetter, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= img.Height() {
			return
		}
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= img.Width() {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(img, x, topY),
					Bg: cellColor(img, x, botY),
				},
			})
		}
	}
}

// cellColor returns the pixel at (x, y) as an opaque color, or nil outside
// the image and for transparent pixels.
func cellColor(img *tga.Image, x, y int) color.Color {
	if x < 0 || y < 0 || x >= img.Width() || y >= img.Height() {
		return nil
	}
	r, g, b, a := img.At(x, y).RGBA()
	if a == 0 {
		return nil
	}
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
}

// Preview renders img, scaled down to cols columns, as styled half-block
// text ready to print to a terminal. Row 0 of img is the top line.
func Preview(img *tga.Image, cols int) (string, error) {
	if img.IsEmpty() {
		return "", tga.ErrEmptyImage
	}
	if cols <= 0 {
		return "", fmt.Errorf("render: invalid preview width %d", cols)
	}
	// Each cell holds two pixels vertically, so pixels stay square.
	height := max(1, cols*img.Height()/img.Width())
	rows := (height + 1) / 2

	small := img.Clone()
	if err := small.Scale(cols, height); err != nil {
		return "", err
	}

	buf := uv.NewBuffer(cols, rows)
	DrawCells(small, buf, uv.Rect(0, 0, cols, rows))
	return buf.Render(), nil
}
