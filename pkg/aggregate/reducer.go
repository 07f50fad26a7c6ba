package aggregate

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"framestack/pkg/selection"
)

// Reducer folds one pixel's worth of source values into a single canonical
// value. It is compiled once per engine run from the mode, the per-source
// labels, and the domain family, so the per-pixel path does no lookups and
// no allocation. Reduce may reorder its input slice (trimming and median
// sort in place); callers refill the buffer per pixel anyway.
type Reducer struct {
	op            Op
	discard       int
	weights       []float64
	weightSum     float64
	integerDomain bool
}

// NewReducer validates the mode against the source count and compiles the
// reducer. labels must be aligned with the source order; integerDomain
// selects the truncating even-count median average required for integer
// sample families.
func NewReducer(mode Mode, labels []CategoryLabel, integerDomain bool) (*Reducer, error) {
	if err := mode.Validate(len(labels)); err != nil {
		return nil, err
	}
	r := &Reducer{op: mode.Op, discard: mode.Discard, integerDomain: integerDomain}
	if mode.Op == OpWeighted {
		r.weights = make([]float64, len(labels))
		for i, l := range labels {
			r.weights[i] = l.Weight(mode.Weights)
		}
		r.weightSum = floats.Sum(r.weights)
	}
	return r, nil
}

// Reduce aggregates values (one per source, in source order) into one
// canonical value.
func (r *Reducer) Reduce(values []float64) (float64, error) {
	switch r.op {
	case OpMean:
		return stat.Mean(values, nil), nil
	case OpWeighted:
		if r.weightSum == 0 {
			return 0, ErrDegenerate
		}
		return stat.Mean(values, r.weights), nil
	case OpTrimmed:
		selection.TakeExtremes(values, r.discard)
		rest := values[:len(values)-2*r.discard]
		return floats.Sum(rest) / float64(len(rest)), nil
	case OpMedian:
		slices.Sort(values)
		if len(values)&1 == 1 {
			return values[len(values)>>1], nil
		}
		mid := len(values) >> 1
		m := (values[mid-1] + values[mid]) / 2
		if r.integerDomain {
			m = math.Trunc(m)
		}
		return m, nil
	default:
		panic("aggregate: reduce with invalid reducer")
	}
}
