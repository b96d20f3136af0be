package test

import (
	"bytes"
	"image"
	"image/png"
	"math/rand"
	"testing"
)

func GenerateRandomBytes(numOfBytesToGenerate int) []byte {
	generatedBytes := make([]byte, numOfBytesToGenerate)
	_, err := rand.Read(generatedBytes)
	if err != nil {
		panic(err)
	}
	return generatedBytes
}

// GenerateRandomImage returns an opaque image with random pixels, so that any misplaced tile changes its content
func GenerateRandomImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, GenerateRandomBytes(len(img.Pix)))
	for p := 3; p < len(img.Pix); p += 4 {
		img.Pix[p] = 255
	}
	return img
}

func EncodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Error encoding test image: %s", err)
	}
	return buf.Bytes()
}

// AssertSamePixels compares two images pixel by pixel after converting both to NRGBA
func AssertSamePixels(t testing.TB, got, expected image.Image) {
	t.Helper()
	if got.Bounds().Size() != expected.Bounds().Size() {
		t.Fatalf("Error, image size %v differs from expected %v", got.Bounds().Size(), expected.Bounds().Size())
	}
	gb, eb := got.Bounds(), expected.Bounds()
	for y := 0; y < gb.Dy(); y++ {
		for x := 0; x < gb.Dx(); x++ {
			gr, gg, gbl, ga := got.At(gb.Min.X+x, gb.Min.Y+y).RGBA()
			er, eg, ebl, ea := expected.At(eb.Min.X+x, eb.Min.Y+y).RGBA()
			if gr != er || gg != eg || gbl != ebl || ga != ea {
				t.Fatalf("Error, pixel (%d, %d) differs from expected", x, y)
			}
		}
	}
}
