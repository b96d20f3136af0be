package shuffle

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSeed     = errors.New("seed must not be empty")
	ErrDegenerateGroup = errors.New("permutation size must be positive")
)

// Permutation returns the order in which the scrambling side shuffled n items for the given seed
func Permutation(seed string, n int) ([]int, error) {
	if seed == "" {
		return nil, ErrInvalidSeed
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerateGroup, n)
	}
	return drawOrder(seed, n), nil
}

// Shuffle returns a shuffled copy of items. Item i of the result is items[Permutation(seed, len(items))[i]].
func Shuffle[T any](items []T, seed string) ([]T, error) {
	perm, err := Permutation(seed, len(items))
	if err != nil {
		return nil, err
	}

	shuffled := make([]T, len(items))
	for i, p := range perm {
		shuffled[i] = items[p]
	}
	return shuffled, nil
}

// Unshuffle reverts Shuffle for the same seed
func Unshuffle[T any](items []T, seed string) ([]T, error) {
	perm, err := Permutation(seed, len(items))
	if err != nil {
		return nil, err
	}

	unshuffled := make([]T, len(items))
	for i, p := range perm {
		unshuffled[p] = items[i]
	}
	return unshuffled, nil
}

// drawOrder picks indexes one by one out of the remaining ones, removing each pick from the pool
func drawOrder(seed string, n int) []int {
	rng := NewRand(seed)

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	order := make([]int, 0, n)
	for len(remaining) > 0 {
		r := int(math.Floor(rng.Float64() * float64(len(remaining))))
		order = append(order, remaining[r])
		remaining = append(remaining[:r], remaining[r+1:]...)
	}
	return order
}
