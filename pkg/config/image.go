package config

import (
	"fmt"
	"image/color"
	"image/png"
	"untile/pkg/tile"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultTileSize    = 50
	DefaultFormat      = "png"
	DefaultJPEGQuality = 95
	DefaultBackground  = "#ffffff"
)

type DescrambleConfig struct {
	TileWidth, TileHeight int
	Format                string
	JPEGQuality           int
	PngCompressionLevel   png.CompressionLevel
	// Background is the hex color the canvas starts with, only visible if tiles don't cover the whole canvas
	Background string
	// Sequential disables copying tiles from several goroutines
	Sequential bool
}

func (c *DescrambleConfig) PopulateUnsetConfigVars() {
	if c.TileWidth == 0 {
		c.TileWidth = DefaultTileSize
	}
	if c.TileHeight == 0 {
		c.TileHeight = c.TileWidth
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = DefaultJPEGQuality
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
}

// Validate rejects tile sizes that were set to a non positive value, unset ones must be populated first
func (c DescrambleConfig) Validate() error {
	if c.TileWidth < 1 || c.TileHeight < 1 {
		return fmt.Errorf("%w: tile %dx%d", tile.ErrInvalidGeometry, c.TileWidth, c.TileHeight)
	}
	return nil
}

func (c DescrambleConfig) BackgroundColor() (color.Color, error) {
	background, err := colorful.Hex(c.Background)
	if err != nil {
		return nil, fmt.Errorf("invalid background color %q: %w", c.Background, err)
	}
	r, g, b := background.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
