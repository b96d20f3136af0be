package shuffle

import "unicode/utf16"

const width = 256

// arc4 is the RC4 keystream generator used by the seeded random source. It is not meant to provide any security,
// only to reproduce the same stream the scrambling side uses.
type arc4 struct {
	i, j uint8
	s    [width]uint8
}

func newARC4(key []uint8) *arc4 {
	if len(key) == 0 {
		key = []uint8{0}
	}

	a := &arc4{}
	for i := range a.s {
		a.s[i] = uint8(i)
	}
	var j uint8
	for i := 0; i < width; i++ {
		t := a.s[i]
		j += key[i%len(key)] + t
		a.s[i] = a.s[j]
		a.s[j] = t
	}

	// RC4-drop[256]
	a.next(width)
	return a
}

// next returns the next count bytes of the keystream as a big endian number
func (a *arc4) next(count int) uint64 {
	var r uint64
	i, j := a.i, a.j
	for ; count > 0; count-- {
		i++
		t := a.s[i]
		j += t
		a.s[i] = a.s[j]
		a.s[j] = t
		r = r*width + uint64(a.s[a.s[i]+t])
	}
	a.i, a.j = i, j
	return r
}

// mixKey smears the UTF-16 code units of the seed into a key of at most 256 bytes
func mixKey(seed string) []uint8 {
	var key []uint8
	var smear int
	for j, unit := range utf16.Encode([]rune(seed)) {
		idx := j % width
		if idx == len(key) {
			key = append(key, 0)
		}
		smear ^= int(key[idx]) * 19
		key[idx] = uint8(smear + int(unit))
	}
	return key
}
