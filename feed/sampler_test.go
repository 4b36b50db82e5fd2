package feed

import (
	"math/rand"
	"testing"
)

func poolWithMasses(masses ...float64) []Candidate {
	out := make([]Candidate, len(masses))
	for i, m := range masses {
		out[i] = Candidate{Mass: m}
	}
	return out
}

func TestSampleOrderingEmptyPool(t *testing.T) {
	if got := SampleOrdering(nil, rand.New(rand.NewSource(1))); got != nil {
		t.Fatalf("empty pool must sample to nil, got %v", got)
	}
}

func TestSampleOrderingZeroMassFallback(t *testing.T) {
	// A brand-new viewer with no signals produces an all-zero-mass pool;
	// sampling must still return a full uniform ordering, never fewer
	// items and never an error.
	pool := poolWithMasses(0, 0, 0, 0, 0)
	order := SampleOrdering(pool, rand.New(rand.NewSource(7)))
	if len(order) != len(pool) {
		t.Fatalf("want full ordering of %d items, got %d", len(pool), len(order))
	}
	seen := map[int]bool{}
	for _, idx := range order {
		if idx < 0 || idx >= len(pool) || seen[idx] {
			t.Fatalf("ordering must be a permutation, got %v", order)
		}
		seen[idx] = true
	}
}

func TestSampleOrderingIsPermutation(t *testing.T) {
	pool := poolWithMasses(0.9, 0.1, 0.5, 0.3, 0.7, 0.2)
	order := SampleOrdering(pool, rand.New(rand.NewSource(42)))
	if len(order) != len(pool) {
		t.Fatalf("want %d items, got %d", len(pool), len(order))
	}
	seen := map[int]bool{}
	for _, idx := range order {
		if seen[idx] {
			t.Fatalf("duplicate index %d in %v", idx, order)
		}
		seen[idx] = true
	}
}

func TestSampleOrderingSeedReproducible(t *testing.T) {
	pool := poolWithMasses(0.9, 0.1, 0.5, 0.3, 0.7)
	a := SampleOrdering(pool, rand.New(rand.NewSource(42)))
	b := SampleOrdering(pool, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed must reproduce the ordering: %v vs %v", a, b)
		}
	}
}

func TestSampleOrderingHighMassWinsMostly(t *testing.T) {
	// Statistical, not single-run: the high-mass candidate must come
	// first in a clear majority of trials, while the low-mass one keeps
	// a real non-zero chance of surfacing on top.
	pool := poolWithMasses(1.0, 0.1)
	rng := rand.New(rand.NewSource(123))

	const trials = 2000
	highFirst := 0
	lowFirst := 0
	for i := 0; i < trials; i++ {
		order := SampleOrdering(pool, rng)
		if order[0] == 0 {
			highFirst++
		} else {
			lowFirst++
		}
	}
	if highFirst < trials*80/100 {
		t.Fatalf("high-mass candidate led only %d/%d trials", highFirst, trials)
	}
	if lowFirst == 0 {
		t.Fatalf("low-mass candidate must retain a non-zero chance of leading")
	}
}

func TestSampleOrderingVariesAcrossDraws(t *testing.T) {
	// Over many unseeded-style draws (distinct RNG states) the ordering
	// must not be constant.
	pool := poolWithMasses(0.5, 0.45, 0.4, 0.35, 0.3, 0.25, 0.2, 0.15)
	first := SampleOrdering(pool, rand.New(rand.NewSource(1)))

	differs := false
	for seed := int64(2); seed <= 50; seed++ {
		order := SampleOrdering(pool, rand.New(rand.NewSource(seed)))
		for i := range order {
			if order[i] != first[i] {
				differs = true
				break
			}
		}
		if differs {
			break
		}
	}
	if !differs {
		t.Fatal("sampling collapsed into a deterministic sort")
	}
}
