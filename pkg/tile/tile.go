package tile

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrInvalidGeometry = errors.New("image dimensions and tile size must be positive")
	ErrGroupIntegrity  = errors.New("tile group does not form a complete grid, the image layout is unexpected")
)

// Tile is a rectangle of source pixels at grid aligned coordinates. Tiles on the right and bottom edges of an image
// are clipped to the remaining pixels.
type Tile struct {
	X, Y          int
	Width, Height int
}

func (t Tile) Rect() image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+t.Width, t.Y+t.Height)
}

func (t Tile) sizeKey() image.Point {
	return image.Point{X: t.Width, Y: t.Height}
}

// Grid partitions an image into tiles in raster order, left to right and top to bottom
func Grid(imageWidth, imageHeight, tileWidth, tileHeight int) ([]Tile, error) {
	if imageWidth <= 0 || imageHeight <= 0 || tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("%w: image %dx%d, tile %dx%d", ErrInvalidGeometry, imageWidth, imageHeight, tileWidth, tileHeight)
	}

	verticalCount := ceilDiv(imageWidth, tileWidth)
	totalTiles := verticalCount * ceilDiv(imageHeight, tileHeight)

	tiles := make([]Tile, totalTiles)
	for i := range tiles {
		row := i / verticalCount
		col := i % verticalCount
		t := Tile{
			X:      col * tileWidth,
			Y:      row * tileHeight,
			Width:  tileWidth,
			Height: tileHeight,
		}
		if t.X+tileWidth > imageWidth {
			t.Width = imageWidth - t.X
		}
		if t.Y+tileHeight > imageHeight {
			t.Height = imageHeight - t.Y
		}
		tiles[i] = t
	}

	return tiles, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
