package image

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Canvas is the destination buffer tiles are copied into. A canvas may be shared between several descrambling
// passes to compose multiple sources onto one target.
type Canvas struct {
	img *image.NRGBA
}

func NewCanvas(width, height int, background color.Color) *Canvas {
	return &Canvas{img: imaging.New(width, height, background)}
}

// CanvasFromImage copies img into a new canvas anchored at the origin
func CanvasFromImage(img image.Image) *Canvas {
	return &Canvas{img: imaging.Clone(img)}
}

func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// copyTile copies the pixels of srcRect row by row. Callers running concurrently must target disjoint destination
// rectangles, each row write only touches its own slice of Pix.
func (c *Canvas) copyTile(src *image.NRGBA, srcRect image.Rectangle, dst image.Point) {
	rowBytes := srcRect.Dx() * 4
	for y := 0; y < srcRect.Dy(); y++ {
		srcOffset := src.PixOffset(srcRect.Min.X, srcRect.Min.Y+y)
		dstOffset := c.img.PixOffset(dst.X, dst.Y+y)
		copy(c.img.Pix[dstOffset:dstOffset+rowBytes], src.Pix[srcOffset:srcOffset+rowBytes])
	}
}
