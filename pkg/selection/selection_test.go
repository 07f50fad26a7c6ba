package selection

import (
	"math/rand"
	"slices"
	"testing"
)

func TestTakeExtremesFixed(t *testing.T) {
	a := []float64{5, 100, 10, 20, 90}
	TakeExtremes(a, 1)

	if a[4] != 100 {
		t.Errorf("largest not at tail: %v", a)
	}
	if a[3] != 5 {
		t.Errorf("smallest not before tail: %v", a)
	}
	rest := slices.Clone(a[:3])
	slices.Sort(rest)
	if rest[0] != 10 || rest[1] != 20 || rest[2] != 90 {
		t.Errorf("remainder = %v, want {10, 20, 90}", rest)
	}
}

func TestTakeExtremesZero(t *testing.T) {
	a := []float64{3, 1, 2}
	want := slices.Clone(a)
	TakeExtremes(a, 0)
	if !slices.Equal(a, want) {
		t.Errorf("k=0 modified the slice: %v", a)
	}
}

// TestTakeExtremesRandomized checks the post-condition on randomized
// inputs: the tail k elements are the k largest as a multiset, the k before
// them the k smallest, for every k in [0, n/2).
func TestTakeExtremesRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(30)
		orig := make([]int, n)
		for i := range orig {
			// Small range so duplicates are common.
			orig[i] = rng.Intn(10)
		}

		for k := 0; 2*k < n; k++ {
			a := slices.Clone(orig)
			TakeExtremes(a, k)

			ref := slices.Clone(orig)
			slices.Sort(ref)

			largest := slices.Clone(a[n-k:])
			slices.Sort(largest)
			if !slices.Equal(largest, ref[n-k:]) {
				t.Fatalf("n=%d k=%d: tail %v is not the %d largest of %v", n, k, largest, k, orig)
			}

			smallest := slices.Clone(a[n-2*k : n-k])
			slices.Sort(smallest)
			if !slices.Equal(smallest, ref[:k]) {
				t.Fatalf("n=%d k=%d: %v is not the %d smallest of %v", n, k, smallest, k, orig)
			}

			rest := slices.Clone(a[:n-2*k])
			slices.Sort(rest)
			if !slices.Equal(rest, ref[k:n-k]) {
				t.Fatalf("n=%d k=%d: remainder %v does not match middle of %v", n, k, rest, orig)
			}
		}
	}
}
