package feed

import (
	"math"
	"math/rand"
	"time"
)

// softmaxTemperature controls how sharply mass differences separate into
// probability differences. Softmax was chosen over linear normalization
// because candidate masses tend to cluster inside a narrow band (all
// factors are bounded [0,1]); at tau=0.25 a 0.1 mass gap still maps to a
// ~1.5x probability ratio, while linear normalization would flatten the
// pool toward uniform.
const softmaxTemperature = 0.25

// SampleOrdering performs weighted sampling without replacement over the
// candidate pool and returns the indices of all candidates in sampled
// order. Higher-mass candidates are more likely to appear earlier, but
// every candidate keeps a non-zero chance at every position; that
// property is what distinguishes the probability cloud from a
// deterministic sort and must hold for any change made here.
//
// When all masses are equal (including all-zero pools, e.g. a brand-new
// viewer with no signals) the probabilities degenerate to uniform and
// the result is a plain shuffle, never an error.
func SampleOrdering(candidates []Candidate, rng *rand.Rand) []int {
	n := len(candidates)
	if n == 0 {
		return nil
	}

	// Softmax over masses. Shifting by the max mass keeps the
	// exponentials in range regardless of absolute mass values.
	maxMass := candidates[0].Mass
	for _, c := range candidates[1:] {
		if c.Mass > maxMass {
			maxMass = c.Mass
		}
	}
	probs := make([]float64, n)
	var total float64
	for i, c := range candidates {
		p := math.Exp((c.Mass - maxMass) / softmaxTemperature)
		probs[i] = p
		total += p
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	order := make([]int, 0, n)
	for len(remaining) > 0 {
		if total <= 0 || math.IsNaN(total) {
			// Degenerate distribution: fall back to uniform over the
			// remaining candidates.
			pick := rng.Intn(len(remaining))
			order = append(order, remaining[pick])
			remaining[pick] = remaining[len(remaining)-1]
			remaining = remaining[:len(remaining)-1]
			continue
		}

		target := rng.Float64() * total
		pick := len(remaining) - 1
		var acc float64
		for j, idx := range remaining {
			acc += probs[idx]
			if target < acc {
				pick = j
				break
			}
		}

		idx := remaining[pick]
		order = append(order, idx)
		total -= probs[idx]
		remaining[pick] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return order
}

// NewRNG builds the sampling RNG for one generation call. seed == nil
// draws from entropy (non-deterministic feed); a fixed seed reproduces
// the exact ordering, which A/B replays and tests rely on. The returned
// generator is call-local: the engine holds no RNG state.
func NewRNG(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
