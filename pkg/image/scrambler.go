package image

import (
	"image"
	"untile/pkg/config"
)

// Scrambler shuffles the tiles of an image the same way the serving side does
type Scrambler struct {
	*reassembler
}

func NewScrambler(original image.Image, iConfig config.DescrambleConfig, opts ...Option) (*Scrambler, error) {
	r, err := newReassembler(original, iConfig, opts)
	if err != nil {
		return nil, err
	}
	return &Scrambler{reassembler: r}, nil
}

func (s *Scrambler) Scramble(seed string) error {
	return s.run(seed, true)
}
