package quiz

import "math/rand/v2"

// Source is the randomness the engine draws from. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

// NewSource returns a PCG generator with a random seed.
func NewSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededSource returns a reproducible generator.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// shuffle permutes s in place with Fisher–Yates.
func shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
