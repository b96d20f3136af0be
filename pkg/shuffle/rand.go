package shuffle

const (
	chunks       = 6
	startDenom   = float64(1 << (8 * chunks))
	significance = float64(1 << 52)
	overflow     = significance * 2
)

// Rand is a deterministic random source seeded from a string. The same seed always yields the same sequence of
// floats, which matches the one produced by the seedrandom library used by the scrambling side.
type Rand struct {
	arc4 *arc4
}

func NewRand(seed string) *Rand {
	return &Rand{arc4: newARC4(mixKey(seed))}
}

// Float64 returns a number in [0, 1) with 52 bits of randomness
func (r *Rand) Float64() float64 {
	n := float64(r.arc4.next(chunks))
	d := startDenom
	var x uint64
	for n < significance {
		n = (n + float64(x)) * width
		d *= width
		x = r.arc4.next(1)
	}
	for n >= overflow {
		n /= 2
		d /= 2
		x >>= 1
	}
	return (n + float64(x)) / d
}
