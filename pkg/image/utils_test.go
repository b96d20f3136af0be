package image

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"
	"untile/pkg/tile"
)

const testTileSize = 50

func generateImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	_, _ = rand.Read(img.Pix)
	for p := 3; p < len(img.Pix); p += 4 {
		img.Pix[p] = 255
	}
	return img
}

// generateLabeledImage fills every tile with a solid color identifying its group and its index inside the group
func generateLabeledImage(t *testing.T, width, height int) (*image.NRGBA, []tile.Group) {
	groups, err := tile.Layout(width, height, testTileSize, testTileSize)
	if err != nil {
		t.Fatalf("Error computing layout: %s", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for gIdx, g := range groups {
		for tIdx, tl := range g.Tiles {
			fillRect(img, tl.Rect(), tileLabel(gIdx, tIdx))
		}
	}
	return img, groups
}

func tileLabel(groupIdx, tileIdx int) color.NRGBA {
	return color.NRGBA{R: uint8(groupIdx * 40), G: uint8(tileIdx * 5), B: 7, A: 255}
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func assertRectColor(t *testing.T, img *image.NRGBA, r image.Rectangle, expected color.NRGBA) {
	t.Helper()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c := img.NRGBAAt(x, y); c != expected {
				t.Fatalf("Pixel (%d,%d) of %v was %v, expected %v", x, y, r, c, expected)
			}
		}
	}
}

func assertSamePixels(t *testing.T, got, expected *image.NRGBA) {
	t.Helper()
	if got.Bounds() != expected.Bounds() {
		t.Fatalf("Bounds differ, got %v, expected %v", got.Bounds(), expected.Bounds())
	}
	if !bytes.Equal(got.Pix, expected.Pix) {
		t.Fatalf("Pixels differ")
	}
}
