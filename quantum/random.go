package quantum

import "math/rand/v2"

// RandomSource draws a uniform integer in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewRandomSource returns the process-wide generator, or a seeded PCG when seed is set.
func NewRandomSource(seed *uint64) RandomSource {
	if seed == nil {
		return globalSource{}
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}
