package qsearch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/theapemachine/errnie"
	"golang.org/x/sync/errgroup"
)

/*
Entropy is the uniform random source a Sampler draws from. Float64 must return
values in [0, 1). *rand.Rand from math/rand/v2 satisfies it, so tests can pass
a seeded PCG generator and get reproducible counts.
*/
type Entropy interface {
	Float64() float64
}

// NewEntropy returns a PCG-backed source for the given seed and stream.
func NewEntropy(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

/*
Sampler turns a register into classical outcomes according to the Born rule.
A Sampler is not safe for concurrent use because it owns its Entropy.
*/
type Sampler struct {
	entropy Entropy
}

// NewSampler wraps entropy. A nil source falls back to an unseeded PCG stream.
func NewSampler(entropy Entropy) *Sampler {
	if entropy == nil {
		entropy = NewEntropy(rand.Uint64(), rand.Uint64())
	}

	return &Sampler{entropy: entropy}
}

/*
Sample runs shots independent measurements and counts the outcomes.

With shots == 1 the measurement is destructive: the register collapses to the
observed basis state, as a single execution on hardware would. With more shots
each draw models a fresh execution of the same circuit, so the register is
left untouched.
*/
func (s *Sampler) Sample(r *Register, shots int) (Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}

	cdf := cumulative(r)
	counts := make(Counts)

	for range shots {
		counts[draw(cdf, s.entropy.Float64())]++
	}

	if shots == 1 {
		for index := range counts {
			r.Collapse(index)
		}
	}

	return counts, nil
}

/*
SampleParallel splits shots across workers. Every worker draws from its own PCG
stream keyed by (seed, worker index) so no two workers share random state and
the merged result is reproducible for a fixed seed and worker count. The
register is read only; a single shot still goes through Sample so the collapse
semantics match.
*/
func (s *Sampler) SampleParallel(
	ctx context.Context, r *Register, shots, workers int, seed uint64,
) (Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}

	if workers < 2 || shots == 1 {
		return s.Sample(r, shots)
	}

	workers = min(workers, shots)
	cdf := cumulative(r)
	partial := make([]Counts, workers)
	group, ctx := errgroup.WithContext(ctx)

	for w := range workers {
		share := shots / workers
		if w < shots%workers {
			share++
		}

		group.Go(func() error {
			entropy := NewEntropy(seed, uint64(w))
			counts := make(Counts)

			for n := range share {
				if n%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				counts[draw(cdf, entropy.Float64())]++
			}

			partial[w] = counts
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := make(Counts)
	for _, counts := range partial {
		merged.Merge(counts)
	}

	errnie.Debug("SampleParallel - shots %d, workers %d, outcomes %d", shots, workers, len(merged))
	return merged, nil
}

// cumulative builds the running sum of |amplitude|² in index order.
func cumulative(r *Register) []float64 {
	cdf := make([]float64, 0, r.Size())

	var running float64
	for _, p := range r.Probabilities() {
		running += p
		cdf = append(cdf, running)
	}

	return cdf
}

/*
draw maps u ∈ [0, 1) to the first index whose cumulative mass exceeds u scaled
to the actual total. Scaling absorbs floating-point drift in the norm, and the
strict comparison means zero-probability states are never selected.
*/
func draw(cdf []float64, u float64) int {
	total := cdf[len(cdf)-1]
	target := u * total

	index := sort.Search(len(cdf), func(i int) bool {
		return cdf[i] > target
	})

	// u*total rounded up to total: take the last state that carries mass.
	for index == len(cdf) || (index > 0 && cdf[index] == cdf[index-1]) {
		index--
	}

	return index
}
