package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"untile/pkg/config"

	"github.com/disintegration/imaging"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported output format, supported formats are png, jpeg, gif and bmp")
	ErrWrite             = errors.New("error writing output image")

	formatsByToken = map[string]Format{
		"png":  PNG,
		"jpeg": JPEG,
		"jpg":  JPEG,
		"gif":  GIF,
		"bmp":  BMP,
	}

	imagingFormats = map[Format]imaging.Format{
		PNG:  imaging.PNG,
		JPEG: imaging.JPEG,
		GIF:  imaging.GIF,
		BMP:  imaging.BMP,
	}

	mimeTypes = map[Format]string{
		PNG:  "image/png",
		JPEG: "image/jpeg",
		GIF:  "image/gif",
		BMP:  "image/bmp",
	}
)

type EncodeOptions struct {
	JPEGQuality         int
	PngCompressionLevel png.CompressionLevel
}

func EncodeOptionsFromConfig(c config.DescrambleConfig) EncodeOptions {
	return EncodeOptions{
		JPEGQuality:         c.JPEGQuality,
		PngCompressionLevel: c.PngCompressionLevel,
	}
}

// ParseFormat maps a format token or file extension (with or without the dot) to a Format
func ParseFormat(token string) (Format, error) {
	f, found := formatsByToken[strings.ToLower(strings.TrimPrefix(token, "."))]
	if !found {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, token)
	}
	return f, nil
}

func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) MimeType() string {
	return mimeTypes[f]
}

func Encode(w io.Writer, img image.Image, f Format, opts EncodeOptions) error {
	imagingFormat, found := imagingFormats[f]
	if !found {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}

	encodeOpts := []imaging.EncodeOption{imaging.PNGCompressionLevel(opts.PngCompressionLevel)}
	if opts.JPEGQuality > 0 {
		encodeOpts = append(encodeOpts, imaging.JPEGQuality(opts.JPEGQuality))
	}
	if err := imaging.Encode(w, img, imagingFormat, encodeOpts...); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// EncodeToBytes encodes img in memory, to be stored as an archive entry or sent over the wire
func EncodeToBytes(img image.Image, f Format, opts EncodeOptions) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(buf, img, f, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OutputPath returns path with the extension of f appended, unless path already carries an extension of f
func OutputPath(path string, f Format) string {
	if pathFormat, err := FormatFromPath(path); err != nil || pathFormat != f {
		return path + f.Extension()
	}
	return path
}

// ExportFile encodes img to path, appending the extension of the format if the path doesn't already carry it, and
// returns the final path. The image is written to a temporary file next to the target which is renamed once
// complete, so a failed export never leaves a truncated image behind.
func ExportFile(path string, img image.Image, f Format, opts EncodeOptions) (string, error) {
	if _, found := imagingFormats[f]; !found {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return writeAtomically(OutputPath(path, f), func(w io.Writer) error {
		return Encode(w, img, f, opts)
	})
}

// WriteFile stores an already encoded image of format f as is, with the same path handling as ExportFile
func WriteFile(path string, content []byte, f Format) (string, error) {
	if _, found := imagingFormats[f]; !found {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return writeAtomically(OutputPath(path, f), func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	})
}

func writeAtomically(path string, write func(w io.Writer) error) (string, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	tmpPath := tmpFile.Name()

	err = write(tmpFile)
	if err == nil {
		err = tmpFile.Sync()
	}
	if closeErr := tmpFile.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		if !errors.Is(err, ErrWrite) {
			err = fmt.Errorf("%w: %w", ErrWrite, err)
		}
		return "", err
	}

	return path, nil
}
