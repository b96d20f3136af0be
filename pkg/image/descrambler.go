package image

import (
	"image"
	"untile/pkg/config"
)

// Descrambler puts the tiles of a scrambled page back in place
type Descrambler struct {
	*reassembler
}

func NewDescrambler(scrambled image.Image, iConfig config.DescrambleConfig, opts ...Option) (*Descrambler, error) {
	r, err := newReassembler(scrambled, iConfig, opts)
	if err != nil {
		return nil, err
	}
	return &Descrambler{reassembler: r}, nil
}

func (d *Descrambler) Descramble(seed string) error {
	return d.run(seed, false)
}
