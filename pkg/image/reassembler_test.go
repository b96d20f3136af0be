package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"untile/pkg/config"
	"untile/pkg/shuffle"
	"untile/pkg/tile"
)

func TestDescrambleFixture(t *testing.T) {
	scrambled, groups := generateLabeledImage(t, 230, 130)

	// Permutations generated by shuffle-seed for seed FGHABCDE, one per group size
	expectedPerms := [][]int{
		{0, 1, 5, 6, 2, 4, 3, 7},
		{0, 1},
		{0, 1, 3, 2},
		{0},
	}
	if len(groups) != len(expectedPerms) {
		t.Fatalf("Expected %d groups, got %d", len(expectedPerms), len(groups))
	}

	descrambler, err := NewDescrambler(scrambled, config.DescrambleConfig{TileWidth: testTileSize})
	if err != nil {
		t.Fatalf("Error creating descrambler: %s", err)
	}
	if err = descrambler.Descramble("FGHABCDE"); err != nil {
		t.Fatalf("Error descrambling: %s", err)
	}

	for gIdx, g := range groups {
		for i, tl := range g.Tiles {
			assertRectColor(t, descrambler.Canvas().Image(), tl.Rect(), tileLabel(gIdx, expectedPerms[gIdx][i]))
		}
	}
}

func TestScrambleDescrambleRoundTrip(t *testing.T) {
	for _, dims := range [][2]int{{50, 50}, {120, 80}, {230, 130}, {640, 960}, {761, 1083}} {
		for _, seed := range []string{"FGHABCDE", "QWERTYUI", "A"} {
			dims, seed := dims, seed
			t.Run(fmt.Sprintf("%dx%d-%s", dims[0], dims[1], seed), func(t *testing.T) {
				t.Parallel()
				original := generateImage(dims[0], dims[1])

				scrambler, err := NewScrambler(original, config.DescrambleConfig{})
				if err != nil {
					t.Fatalf("Error creating scrambler: %s", err)
				}
				if err = scrambler.Scramble(seed); err != nil {
					t.Fatalf("Error scrambling: %s", err)
				}

				// Go through a lossless encoding, as pages would when served
				encoded, err := scrambler.Bytes()
				if err != nil {
					t.Fatalf("Error encoding scrambled image: %s", err)
				}
				scrambled, err := Decode(bytes.NewReader(encoded))
				if err != nil {
					t.Fatalf("Error decoding scrambled image: %s", err)
				}

				descrambler, err := NewDescrambler(scrambled, config.DescrambleConfig{})
				if err != nil {
					t.Fatalf("Error creating descrambler: %s", err)
				}
				if err = descrambler.Descramble(seed); err != nil {
					t.Fatalf("Error descrambling: %s", err)
				}

				assertSamePixels(t, descrambler.Canvas().Image(), original)
			})
		}
	}
}

func TestScrambleMovesTiles(t *testing.T) {
	original := generateImage(400, 300)
	scrambler, err := NewScrambler(original, config.DescrambleConfig{})
	if err != nil {
		t.Fatalf("Error creating scrambler: %s", err)
	}
	if err = scrambler.Scramble("QWERTYUI"); err != nil {
		t.Fatalf("Error scrambling: %s", err)
	}
	if bytes.Equal(scrambler.Canvas().Image().Pix, original.Pix) {
		t.Errorf("Scrambled image is identical to the original")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	scrambled := generateImage(1320, 1870)

	canvases := make([]*Canvas, 0, 2)
	for _, sequential := range []bool{true, false} {
		descrambler, err := NewDescrambler(scrambled, config.DescrambleConfig{Sequential: sequential})
		if err != nil {
			t.Fatalf("Error creating descrambler: %s", err)
		}
		if err = descrambler.Descramble("HABCDEFG"); err != nil {
			t.Fatalf("Error descrambling: %s", err)
		}
		canvases = append(canvases, descrambler.Canvas())
	}

	assertSamePixels(t, canvases[1].Image(), canvases[0].Image())
}

func TestDescrambleInvalidInput(t *testing.T) {
	scrambled := generateImage(120, 80)
	descrambler, err := NewDescrambler(scrambled, config.DescrambleConfig{})
	if err != nil {
		t.Fatalf("Error creating descrambler: %s", err)
	}
	if err = descrambler.Descramble(""); !errors.Is(err, shuffle.ErrInvalidSeed) {
		t.Errorf("Expected ErrInvalidSeed, got %v", err)
	}

	if _, err = NewDescrambler(scrambled, config.DescrambleConfig{Format: "tiff"}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err = NewDescrambler(scrambled, config.DescrambleConfig{Background: "#zzzzzz"}); err == nil {
		t.Errorf("Expected error for invalid background")
	}
}

func TestDescrambleNegativeTileSize(t *testing.T) {
	for _, c := range []config.DescrambleConfig{
		{TileWidth: -5, TileHeight: -5},
		{TileWidth: -5},
		{TileWidth: 50, TileHeight: -1},
	} {
		if _, err := NewDescrambler(generateImage(120, 80), c); !errors.Is(err, tile.ErrInvalidGeometry) {
			t.Errorf("Expected ErrInvalidGeometry for tile %dx%d, got %v", c.TileWidth, c.TileHeight, err)
		}
		if _, err := NewScrambler(generateImage(120, 80), c); !errors.Is(err, tile.ErrInvalidGeometry) {
			t.Errorf("Expected ErrInvalidGeometry when scrambling with tile %dx%d, got %v", c.TileWidth, c.TileHeight, err)
		}
	}
}

func TestDescrambleBlankCanvasBackground(t *testing.T) {
	descrambler, err := NewDescrambler(generateImage(120, 80), config.DescrambleConfig{})
	if err != nil {
		t.Fatalf("Error creating descrambler: %s", err)
	}
	assertRectColor(t, descrambler.Canvas().Image(), image.Rect(0, 0, 120, 80), color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	stats := descrambler.Stats()
	if stats.Groups != 4 || stats.Tiles != 6 {
		t.Errorf("Expected 4 groups and 6 tiles, got %d and %d", stats.Groups, stats.Tiles)
	}
}

func TestDescrambleOntoExistingCanvas(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	canvas := NewCanvas(300, 200, red)

	scrambled := generateImage(120, 80)
	descrambler, err := NewDescrambler(scrambled, config.DescrambleConfig{}, WithCanvas(canvas))
	if err != nil {
		t.Fatalf("Error creating descrambler: %s", err)
	}
	if err = descrambler.Descramble("FGHABCDE"); err != nil {
		t.Fatalf("Error descrambling: %s", err)
	}

	if descrambler.Canvas() != canvas {
		t.Fatalf("Descrambler did not draw onto the supplied canvas")
	}
	assertRectColor(t, canvas.Image(), image.Rect(120, 0, 300, 200), red)
	assertRectColor(t, canvas.Image(), image.Rect(0, 80, 120, 200), red)

	standalone, _ := NewDescrambler(scrambled, config.DescrambleConfig{})
	_ = standalone.Descramble("FGHABCDE")
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			if canvas.Image().NRGBAAt(x, y) != standalone.Canvas().Image().NRGBAAt(x, y) {
				t.Fatalf("Composed pixel (%d,%d) differs from standalone descramble", x, y)
			}
		}
	}
}

func TestDescrambleCanvasTooSmall(t *testing.T) {
	canvas := NewCanvas(100, 100, color.White)
	_, err := NewDescrambler(generateImage(120, 80), config.DescrambleConfig{}, WithCanvas(canvas))
	if !errors.Is(err, tile.ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry, got %v", err)
	}
}

func TestWriteImage(t *testing.T) {
	descrambler, err := NewDescrambler(generateImage(120, 80), config.DescrambleConfig{PngCompressionLevel: png.BestSpeed})
	if err != nil {
		t.Fatalf("Error creating descrambler: %s", err)
	}
	if err = descrambler.Descramble("FGHABCDE"); err != nil {
		t.Fatalf("Error descrambling: %s", err)
	}

	buf := bytes.NewBuffer(nil)
	if err = descrambler.WriteImage(buf); err != nil {
		t.Fatalf("Error writing image: %s", err)
	}
	decoded, err := png.Decode(buf)
	if err != nil {
		t.Fatalf("Output is not a valid png: %s", err)
	}
	if decoded.Bounds().Dx() != 120 || decoded.Bounds().Dy() != 80 {
		t.Errorf("Output image is %v", decoded.Bounds())
	}
}

func BenchmarkDescramble(b *testing.B) {
	scrambled := generateImage(1320, 1870)
	for _, sequential := range []bool{true, false} {
		b.Run(fmt.Sprintf("sequential=%t", sequential), func(b *testing.B) {
			b.SetBytes(int64(len(scrambled.Pix)))
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				descrambler, err := NewDescrambler(scrambled, config.DescrambleConfig{Sequential: sequential})
				if err != nil {
					b.Fatalf("Error creating descrambler for benchmark")
				}
				b.StartTimer()
				if err = descrambler.Descramble("FGHABCDE"); err != nil {
					b.Fatalf("Error during descramble: %s", err)
				}
			}
		})
	}
}
