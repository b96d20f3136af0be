package image

import (
	"fmt"
	"image"
	"io"
	"time"
	"untile/pkg/config"
	"untile/pkg/model"
	"untile/pkg/shuffle"
	"untile/pkg/tile"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

type tileMove struct {
	src image.Rectangle
	dst image.Point
}

type Option func(r *reassembler)

// WithCanvas draws onto an existing canvas instead of a blank one, which must be at least as large as the source
func WithCanvas(c *Canvas) Option {
	return func(r *reassembler) {
		r.canvas = c
	}
}

// reassembler holds what Descrambler and Scrambler share, they only differ in the direction tiles are moved
type reassembler struct {
	source *image.NRGBA
	canvas *Canvas
	groups []tile.Group
	format Format

	config config.DescrambleConfig
	stats  model.DescrambleStats
}

func newReassembler(src image.Image, iConfig config.DescrambleConfig, opts []Option) (*reassembler, error) {
	setupStart := time.Now()

	iConfig.PopulateUnsetConfigVars()
	if err := iConfig.Validate(); err != nil {
		return nil, err
	}
	format, err := ParseFormat(iConfig.Format)
	if err != nil {
		return nil, err
	}

	r := &reassembler{
		source: imaging.Clone(src),
		config: iConfig,
		format: format,
	}
	for _, opt := range opts {
		opt(r)
	}

	sourceBounds := r.source.Bounds()
	r.groups, err = tile.Layout(sourceBounds.Dx(), sourceBounds.Dy(), iConfig.TileWidth, iConfig.TileHeight)
	if err != nil {
		return nil, err
	}

	if r.canvas == nil {
		background, err := iConfig.BackgroundColor()
		if err != nil {
			return nil, err
		}
		r.canvas = NewCanvas(sourceBounds.Dx(), sourceBounds.Dy(), background)
	} else if !sourceBounds.In(r.canvas.Bounds()) {
		return nil, fmt.Errorf("%w: canvas %v does not fit source image %v", tile.ErrInvalidGeometry,
			r.canvas.Bounds(), sourceBounds)
	}

	r.stats.Groups = len(r.groups)
	for _, g := range r.groups {
		r.stats.Tiles += len(g.Tiles)
	}
	r.stats.Setup = time.Since(setupStart)
	return r, nil
}

// planMoves computes the permutation of every group before any pixel is touched. When descrambling, the tile at
// local index p[i] of the scrambled image belongs at the position of the group's i-th tile, scrambling reverses it.
func (r *reassembler) planMoves(seed string, scramble bool) ([]tileMove, error) {
	moves := make([]tileMove, 0, r.stats.Tiles)
	for _, g := range r.groups {
		perm, err := shuffle.Permutation(seed, len(g.Tiles))
		if err != nil {
			return nil, err
		}

		for i, s := range perm {
			shuffledRect := g.SourceRect(s)
			if scramble {
				moves = append(moves, tileMove{src: g.Tiles[i].Rect(), dst: shuffledRect.Min})
			} else {
				moves = append(moves, tileMove{src: shuffledRect, dst: image.Point{X: g.Tiles[i].X, Y: g.Tiles[i].Y}})
			}
		}
	}
	return moves, nil
}

func (r *reassembler) run(seed string, scramble bool) error {
	reassemblyStart := time.Now()
	defer func() {
		r.stats.Reassembly = time.Since(reassemblyStart)
	}()

	moves, err := r.planMoves(seed, scramble)
	if err != nil {
		return err
	}

	if r.config.Sequential {
		for _, m := range moves {
			r.canvas.copyTile(r.source, m.src, m.dst)
		}
		return nil
	}

	// Destination rectangles never overlap, so goroutines can write to the canvas without synchronization
	parallel.Line(len(moves), func(start, end int) {
		for _, m := range moves[start:end] {
			r.canvas.copyTile(r.source, m.src, m.dst)
		}
	})
	return nil
}

func (r *reassembler) Canvas() *Canvas {
	return r.canvas
}

func (r *reassembler) Stats() model.DescrambleStats {
	return r.stats
}

func (r *reassembler) Format() Format {
	return r.format
}

func (r *reassembler) WriteImage(output io.Writer) error {
	imageEncodeStart := time.Now()
	defer func() {
		r.stats.OutputImageEncoding = time.Since(imageEncodeStart)
	}()
	return Encode(output, r.canvas.Image(), r.format, EncodeOptionsFromConfig(r.config))
}

func (r *reassembler) Bytes() ([]byte, error) {
	imageEncodeStart := time.Now()
	defer func() {
		r.stats.OutputImageEncoding = time.Since(imageEncodeStart)
	}()
	return EncodeToBytes(r.canvas.Image(), r.format, EncodeOptionsFromConfig(r.config))
}

// Export writes the canvas to path and returns the final path, which carries the extension of the output format
func (r *reassembler) Export(path string) (string, error) {
	imageEncodeStart := time.Now()
	defer func() {
		r.stats.OutputImageEncoding = time.Since(imageEncodeStart)
	}()
	return ExportFile(path, r.canvas.Image(), r.format, EncodeOptionsFromConfig(r.config))
}
