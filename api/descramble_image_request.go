package api

import "untile/pkg/model"

// DescrambleImageRequest carries a scrambled page. Either Seed or SourceURL must be set, when only SourceURL is
// given the seed is derived from it and the result is cached under that url.
type DescrambleImageRequest struct {
	Image      []byte `json:"image" binding:"required"`
	Seed       string `json:"seed,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
	TileWidth  int    `json:"tile_width,omitempty"`
	TileHeight int    `json:"tile_height,omitempty"`
	Format     string `json:"format,omitempty"`
}

type DescrambleImageResponse struct {
	Image       []byte                `json:"image"`
	Format      string                `json:"format"`
	Seed        string                `json:"seed"`
	Descrambled bool                  `json:"descrambled"`
	Cached      bool                  `json:"cached"`
	Stats       model.DescrambleStats `json:"stats"`
}

type ScrambleImageRequest struct {
	Image      []byte `json:"image" binding:"required"`
	Seed       string `json:"seed" binding:"required"`
	TileWidth  int    `json:"tile_width,omitempty"`
	TileHeight int    `json:"tile_height,omitempty"`
	Format     string `json:"format,omitempty"`
}

type ScrambleImageResponse struct {
	Image  []byte `json:"image"`
	Format string `json:"format"`
}

type InvalidateCacheResponse struct {
	Invalidated bool `json:"invalidated"`
	Remaining   int  `json:"remaining"`
}
