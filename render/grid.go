package render

import (
	"image"
	"image/color"
)

// Grid is a Width x Height grid of RGB24 pixels, stored row-major from the
// top-left corner.
type Grid struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewGrid returns a black grid of the given size.
func NewGrid(width, height int) Grid {
	return Grid{
		Pix:    make([]uint8, width*height*3),
		Width:  width,
		Height: height,
	}
}

// GridFromImage converts img to a grid of the same size. Alpha is dropped
// without compositing, using straight (non-premultiplied) color values.
func GridFromImage(img image.Image) Grid {
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())

	i := 0

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, _ := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			g.Pix[i], g.Pix[i+1], g.Pix[i+2] = c.R, c.G, c.B
			i += 3
		}
	}

	return g
}

// At returns the pixel at column x, row y.
func (g Grid) At(x, y int) RGB {
	i := (y*g.Width + x) * 3

	return RGB{R: g.Pix[i], G: g.Pix[i+1], B: g.Pix[i+2]}
}

// Set stores p at column x, row y.
func (g Grid) Set(x, y int, p RGB) {
	i := (y*g.Width + x) * 3
	g.Pix[i], g.Pix[i+1], g.Pix[i+2] = p.R, p.G, p.B
}

// Size returns the grid dimensions.
func (g Grid) Size() Size {
	return Size{W: g.Width, H: g.Height}
}
