package tile

import (
	"fmt"
	"image"
)

// Group holds the tiles of an image that share the same size. Tiles are only ever permuted within their group, so
// the group forms a grid of its own with Cols x Rows tiles starting at Origin.
type Group struct {
	Tiles      []Tile
	Cols, Rows int
	Origin     image.Point
}

func (g Group) TileWidth() int {
	return g.Tiles[0].Width
}

func (g Group) TileHeight() int {
	return g.Tiles[0].Height
}

// Size returns the pixel size covered by the group's local grid
func (g Group) Size() image.Point {
	return image.Point{X: g.TileWidth() * g.Cols, Y: g.TileHeight() * g.Rows}
}

// SourceRect returns the rectangle of the tile at the given index of the group's local grid
func (g Group) SourceRect(localIdx int) image.Rectangle {
	row := localIdx / g.Cols
	col := localIdx % g.Cols
	topLeft := g.Origin.Add(image.Point{X: col * g.TileWidth(), Y: row * g.TileHeight()})
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Point{X: g.TileWidth(), Y: g.TileHeight()})}
}

// GroupTiles buckets tiles by size, keeping raster order inside each bucket. Groups are returned in the order in
// which their first tile appears.
func GroupTiles(tiles []Tile) ([]Group, error) {
	var groups []Group
	groupIdxBySize := make(map[image.Point]int)
	for _, t := range tiles {
		idx, found := groupIdxBySize[t.sizeKey()]
		if !found {
			idx = len(groups)
			groupIdxBySize[t.sizeKey()] = idx
			groups = append(groups, Group{Origin: image.Point{X: t.X, Y: t.Y}})
		}
		groups[idx].Tiles = append(groups[idx].Tiles, t)
	}

	for i := range groups {
		g := &groups[i]
		g.Cols = colsInGroup(g.Tiles)
		if len(g.Tiles)%g.Cols != 0 {
			return nil, fmt.Errorf("%w: %d tiles of %dx%d cannot be split in rows of %d", ErrGroupIntegrity,
				len(g.Tiles), g.TileWidth(), g.TileHeight(), g.Cols)
		}
		g.Rows = len(g.Tiles) / g.Cols
	}

	return groups, nil
}

// Layout computes the tile grid of an image and groups it
func Layout(imageWidth, imageHeight, tileWidth, tileHeight int) ([]Group, error) {
	tiles, err := Grid(imageWidth, imageHeight, tileWidth, tileHeight)
	if err != nil {
		return nil, err
	}
	return GroupTiles(tiles)
}

func colsInGroup(tiles []Tile) int {
	firstRowY := tiles[0].Y
	for i, t := range tiles {
		if t.Y != firstRowY {
			return i
		}
	}
	return len(tiles)
}
