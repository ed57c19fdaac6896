package reflex

import (
	"math/rand"
	"time"
)

// RandomSource produces uniform values in [0, 1).
// It drives every random decision in a round: interval lengths and color channels.
type RandomSource interface {
	NextUniform() float64
}

// SeededSource is a RandomSource backed by its own math/rand generator.
// Two sources created with the same seed yield the same sequence.
// Not safe for concurrent use; each engine owns one.
type SeededSource struct {
	seed int64
	rng  *rand.Rand
}

// NewRandomSource creates a source for the given seed.
// A zero seed is replaced by the current time.
func NewRandomSource(seed int64) *SeededSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SeededSource{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NextUniform returns the next value in [0, 1).
func (s *SeededSource) NextUniform() float64 {
	return s.rng.Float64()
}

// Seed returns the seed the source was created with.
func (s *SeededSource) Seed() int64 {
	return s.seed
}

