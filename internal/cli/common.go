package cli

import (
	"image/png"
	"time"
	"untile/pkg/config"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	pngCompressionMapping = map[string]png.CompressionLevel{
		"default": png.DefaultCompression,
		"none":    png.NoCompression,
		"fast":    png.BestSpeed,
		"best":    png.BestCompression,
	}
)

func MarkFlagsRequired(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

func NewSpinner() *spinner.Spinner {
	return spinner.New(spinner.CharSets[4], 100*time.Millisecond)
}

// commonOpts are the flags shared by every command that writes images
type commonOpts struct {
	tileSize       int
	tileWidth      int
	tileHeight     int
	format         string
	pngCompression string
	jpegQuality    int
	background     string
	sequential     bool
}

func (o *commonOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.tileSize, "tile-size", config.DefaultTileSize, "Width and height in pixels of the tiles the image was cut into")
	cmd.Flags().IntVar(&o.tileWidth, "tile-width", 0, "Width in pixels of the tiles, overrides --tile-size")
	cmd.Flags().IntVar(&o.tileHeight, "tile-height", 0, "Height in pixels of the tiles, overrides --tile-size")
	cmd.Flags().StringVar(&o.format, "format", config.DefaultFormat, "Output image format. Options are png, jpeg, gif, bmp")
	cmd.Flags().StringVar(&o.pngCompression, "png-compression", "default", "Compression for output png. Options are default, none, fast, best")
	cmd.Flags().IntVar(&o.jpegQuality, "jpeg-quality", config.DefaultJPEGQuality, "Quality of output jpeg images, from 1 to 100")
	cmd.Flags().StringVar(&o.background, "background", config.DefaultBackground, "Hex color of the canvas behind the tiles")
	cmd.Flags().BoolVar(&o.sequential, "sequential", false, "Copy tiles from a single goroutine")
}

func (o commonOpts) toDescrambleConfig() config.DescrambleConfig {
	mappedCompression, found := pngCompressionMapping[o.pngCompression]
	if !found {
		mappedCompression = png.DefaultCompression
	}
	tileWidth, tileHeight := o.tileSize, o.tileSize
	if o.tileWidth != 0 {
		tileWidth = o.tileWidth
	}
	if o.tileHeight != 0 {
		tileHeight = o.tileHeight
	}
	iConfig := config.DescrambleConfig{
		TileWidth:           tileWidth,
		TileHeight:          tileHeight,
		Format:              o.format,
		JPEGQuality:         o.jpegQuality,
		PngCompressionLevel: mappedCompression,
		Background:          o.background,
		Sequential:          o.sequential,
	}
	iConfig.PopulateUnsetConfigVars()
	return iConfig
}
