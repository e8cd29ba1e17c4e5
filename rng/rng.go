// Package rng provides the seeded sampling service that drives every
// stochastic choice of a simulation: parameter noise, topology generation and
// thalamic input.
//
// A Source owns one pseudo-random stream. Constructing two sources with the
// same non-zero seed yields identical draw sequences as long as the calls have
// the same shape. Batch forms fill their destination in index order and draw
// exactly one scalar per element, so a batch of n values equals n consecutive
// scalar calls.
package rng

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// streamIncrement selects the PCG stream derived from the seed.
const streamIncrement = 0x9e3779b97f4a7c15

// A Source is a seeded pseudo-random generator. It is not safe for concurrent
// use; give each concurrent consumer its own Source.
type Source struct {
	seed uint64
	src  rand.Source
	rnd  *rand.Rand
}

// New creates a Source. A zero seed draws a seed from the runtime entropy
// pool, making the stream non-reproducible unless the seed reported by Seed is
// reused.
func New(seed uint64) *Source {
	if seed == 0 {
		seed = entropySeed()
	}

	src := rand.NewPCG(seed, seed^streamIncrement)

	return &Source{
		seed: seed,
		src:  src,
		rnd:  rand.New(src),
	}
}

func entropySeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// Seed returns the seed the stream was started from.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Uniform draws a value uniformly from [lower, upper).
func (s *Source) Uniform(lower, upper float64) float64 {
	return distuv.Uniform{Min: lower, Max: upper, Src: s.src}.Rand()
}

// UniformFill fills dst with independent draws from [lower, upper).
func (s *Source) UniformFill(dst []float64, lower, upper float64) {
	for i := range dst {
		dst[i] = s.Uniform(lower, upper)
	}
}

// Normal draws from a normal distribution.
func (s *Source) Normal(mean, sd float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: sd, Src: s.src}.Rand()
}

// NormalFill fills dst with independent normal draws.
func (s *Source) NormalFill(dst []float64, mean, sd float64) {
	for i := range dst {
		dst[i] = s.Normal(mean, sd)
	}
}

// Poisson draws a non-negative count with the given mean. A mean of zero
// always yields zero. Negative means are the caller's responsibility.
func (s *Source) Poisson(mean float64) int {
	return int(distuv.Poisson{Lambda: mean, Src: s.src}.Rand())
}

// PoissonFill fills dst with independent Poisson draws.
func (s *Source) PoissonFill(dst []int, mean float64) {
	for i := range dst {
		dst[i] = s.Poisson(mean)
	}
}

// Shuffle permutes idx in place.
func (s *Source) Shuffle(idx []int) {
	s.rnd.Shuffle(len(idx), func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})
}
