// Package rng is the opaque random-number collaborator the simulation
// engine draws from. It is a thin, borrowed-not-owned wrapper so the
// engine never reaches for math/rand/v2 or gonum/stat/distuv directly
// (§9 "implicit global state": the random source is passed in and
// stored as a borrowed collaborator).
package rng

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is the set of draws the engine needs: uniform, exponential,
// Poisson, binomial, and hypergeometric, per §1's "external collaborator"
// description of the random-number source.
type Source struct {
	r *rand.Rand
}

// New wraps a *rand.Rand. A nil r seeds from a fresh random source,
// mirroring the teacher's NewEngine seeding fallback
// (genetic/engine.go: config.Seed == 0 picks a random PCG seed).
func New(r *rand.Rand) *Source {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Source{r: r}
}

// NewSeeded creates a deterministic source from a uint64 seed pair,
// for reproducible seeded scenarios (§8 "Seeded end-to-end scenarios").
func NewSeeded(seed1, seed2 uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// Uniform01 draws a uniform sample in [0, 1).
func (s *Source) Uniform01() float64 { return s.r.Float64() }

// UniformInt draws a uniform integer in [0, n).
func (s *Source) UniformInt(n int) int { return s.r.IntN(n) }

// Exponential draws from Exp(rate); rate must be > 0.
func (s *Source) Exponential(rate float64) float64 {
	d := distuv.Exponential{Rate: rate, Src: s.r}
	return d.Rand()
}

// Poisson draws from Poisson(lambda); lambda must be >= 0.
func (s *Source) Poisson(lambda float64) float64 {
	d := distuv.Poisson{Lambda: lambda, Src: s.r}
	return d.Rand()
}

// Binomial draws from Binomial(n, p).
func (s *Source) Binomial(n, p float64) float64 {
	d := distuv.Binomial{N: n, P: p, Src: s.r}
	return d.Rand()
}

// Beta draws from Beta(alpha, beta), used by the Beta-coalescent model's
// merger-size distribution.
func (s *Source) Beta(alpha, beta float64) float64 {
	d := distuv.Beta{Alpha: alpha, Beta: beta, Src: s.r}
	return d.Rand()
}

// Hypergeometric draws a hypergeometric sample: the number of "success"
// draws when drawing `draws` items without replacement from a population
// of `total` containing `successes` successes. gonum has no
// distuv.Hypergeometric, so this is sampled directly by simulating the
// draws, matching the definition in msprime's own hypergeometric sampler
// (original_source/lib/msprime.h references a hypergeometric draw for
// multiple-merger models).
func (s *Source) Hypergeometric(total, successes, draws int) int {
	if draws > total {
		draws = total
	}
	remaining := total
	remainingSuccesses := successes
	count := 0
	for i := 0; i < draws; i++ {
		if remaining <= 0 {
			break
		}
		if s.r.IntN(remaining) < remainingSuccesses {
			count++
			remainingSuccesses--
		}
		remaining--
	}
	return count
}

// Shuffle permutes a slice of length n in place using swap(i, j).
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// Perm returns a random permutation of [0, n).
func (s *Source) Perm(n int) []int {
	return s.r.Perm(n)
}
