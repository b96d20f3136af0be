package image

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Decode reads a served page image. Pixels are taken as stored, EXIF orientation is ignored since tiles are
// scrambled on the stored layout.
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

func DecodeFile(path string) (image.Image, error) {
	return imaging.Open(path)
}

// DetectFormat reports the output format an encoded image is stored in, reading only its header. Images stored in
// a format that can be decoded but not written, such as webp, yield ErrUnsupportedFormat.
func DetectFormat(content []byte) (Format, error) {
	_, name, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	return ParseFormat(name)
}
