package pipeline

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Registered image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"go.jacobcolvin.com/asciivid/render"
)

// ErrDecodeImage indicates an image file that could not be read or decoded.
var ErrDecodeImage = errors.New("decode image")

// DecodeImage reads and decodes the image at path. PNG, JPEG, GIF, BMP, TIFF
// and WebP are supported; GIFs yield their first frame.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeImage, err)
	}
	defer f.Close() //nolint:errcheck // Read-only file.

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeImage, path, err)
	}

	return img, nil
}

// ScaleImage resamples img to exactly size with bilinear filtering.
func ScaleImage(img image.Image, size render.Size) render.Grid {
	dst := image.NewNRGBA(image.Rect(0, 0, size.W, size.H))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return render.GridFromImage(dst)
}

// ImageSize returns the pixel dimensions of img.
func ImageSize(img image.Image) render.Size {
	b := img.Bounds()

	return render.Size{W: b.Dx(), H: b.Dy()}
}

// RenderImage scales img to the target size for s and renders it.
func RenderImage(img image.Image, s render.Settings) string {
	target := render.TargetSize(s, ImageSize(img))

	return render.Render(ScaleImage(img, target), s)
}
