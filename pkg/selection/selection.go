// Package selection implements in-place partial selection: isolating the k
// largest and k smallest elements of a slice without fully ordering the
// rest. The trimmed-mean aggregator uses it to discard extremes before
// averaging; a full sort would do strictly more work than needed, since the
// middle of the slice only ever gets summed.
package selection

import "cmp"

// TakeExtremes rearranges a in place so that its last k positions hold the
// k largest elements, the k positions before those hold the k smallest, and
// a[:len(a)-2k] holds everything else in unspecified order. Ties among
// duplicates are resolved arbitrarily; callers that only sum the remainder
// are unaffected by which duplicate lands where.
//
// It runs k selection sweeps for maxima into the tail, then k sweeps for
// minima over the reduced prefix. O(n*k) comparisons, no allocation. k must
// satisfy 0 <= 2k <= len(a); k=0 is a no-op.
func TakeExtremes[T cmp.Ordered](a []T, k int) {
	n := len(a)
	for i := 0; i < k; i++ {
		idx := 0
		for j := 1; j < n-i; j++ {
			if a[j] > a[idx] {
				idx = j
			}
		}
		a[idx], a[n-1-i] = a[n-1-i], a[idx]
	}
	m := n - k
	for i := 0; i < k; i++ {
		idx := 0
		for j := 1; j < m-i; j++ {
			if a[j] < a[idx] {
				idx = j
			}
		}
		a[idx], a[m-1-i] = a[m-1-i], a[idx]
	}
}
