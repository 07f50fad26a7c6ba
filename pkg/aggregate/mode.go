package aggregate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when an aggregation mode is malformed:
// discard out of range for the source count, a bad weight triple, an
// unknown preset, or weighting and trimming requested together. It is
// always raised at validation time, before any output sample is written.
var ErrInvalidParams = errors.New("aggregate: invalid mode parameters")

// ErrDegenerate is returned when a weighted mean has an all-zero effective
// weight sum, which would produce a non-finite result. The engine surfaces
// it at the first offending pixel instead of writing a substitute value.
var ErrDegenerate = errors.New("aggregate: degenerate weighted mean, all effective weights are zero")

// Op selects one of the four aggregation strategies.
type Op int

const (
	// OpMean is the unweighted arithmetic mean.
	OpMean Op = iota

	// OpWeighted is the mean weighted per source by its CategoryLabel.
	OpWeighted

	// OpTrimmed is the symmetric trimmed mean: the Discard largest and
	// Discard smallest values are removed before averaging.
	OpTrimmed

	// OpMedian is the median of all source values.
	OpMedian
)

// String returns the op name used by the CLI and config file.
func (o Op) String() string {
	switch o {
	case OpMean:
		return "mean"
	case OpWeighted:
		return "weighted"
	case OpTrimmed:
		return "trimmed"
	case OpMedian:
		return "median"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Mode is one fully parameterized aggregation request.
type Mode struct {
	// Op is the aggregation strategy.
	Op Op

	// Weights is the [I, P, B] weight triple. Only OpWeighted reads it.
	Weights [3]float64

	// Discard is the number of extremes trimmed from each end. Only
	// OpTrimmed reads it.
	Discard int
}

// presets holds the weight triples selectable by number, indexed [I, P, B].
var presets = [][3]float64{
	{1.00, 1.00, 1.00}, // 0: balanced
	{1.82, 1.30, 1.00}, // 1: x264/5 defaults    (IP = 1.4, PB = 1.3)
	{1.21, 1.10, 1.00}, // 2: x264 --tune grain  (IP = 1.1, PB = 1.1)
	{1.10, 1.00, 1.00}, // 3: x265 --tune grain  (IP = 1.1, PB = 1.0)
}

// Preset returns the weight triple for preset n, or ErrInvalidParams for an
// unknown preset number.
func Preset(n int) ([3]float64, error) {
	if n < 0 || n >= len(presets) {
		return [3]float64{}, fmt.Errorf("%w: unknown preset %d (only 0..%d supported)",
			ErrInvalidParams, n, len(presets)-1)
	}
	return presets[n], nil
}

// ResolveMean builds the mean-family Mode from the host's preset and
// discard arguments, enforcing their mutual exclusion: preset 0 with
// discard 0 is the plain mean, a positive discard selects the trimmed mean,
// and a positive preset selects the weighted mean. Asking for both at once
// is ErrInvalidParams.
func ResolveMean(preset, discard int) (Mode, error) {
	switch {
	case preset > 0 && discard > 0:
		return Mode{}, fmt.Errorf("%w: preset and discard cannot be used simultaneously", ErrInvalidParams)
	case discard < 0:
		return Mode{}, fmt.Errorf("%w: discard cannot be negative", ErrInvalidParams)
	case discard > 0:
		return Mode{Op: OpTrimmed, Discard: discard}, nil
	case preset > 0:
		w, err := Preset(preset)
		if err != nil {
			return Mode{}, err
		}
		return Mode{Op: OpWeighted, Weights: w}, nil
	case preset < 0:
		_, err := Preset(preset)
		return Mode{}, err
	default:
		return Mode{Op: OpMean}, nil
	}
}

// Validate checks the mode against the number of sources it will reduce.
// It must pass before any pixel is processed.
func (m Mode) Validate(sourceCount int) error {
	if sourceCount < 1 {
		return fmt.Errorf("%w: at least one source is required", ErrInvalidParams)
	}
	switch m.Op {
	case OpMean, OpMedian:
		return nil
	case OpWeighted:
		if m.Discard != 0 {
			return fmt.Errorf("%w: weighting and discard are mutually exclusive", ErrInvalidParams)
		}
		for i, w := range m.Weights {
			if w < 0 || math.IsInf(w, 0) || math.IsNaN(w) {
				return fmt.Errorf("%w: weight[%d] = %v must be finite and non-negative",
					ErrInvalidParams, i, w)
			}
		}
		return nil
	case OpTrimmed:
		if m.Discard < 0 {
			return fmt.Errorf("%w: discard cannot be negative", ErrInvalidParams)
		}
		if 2*m.Discard >= sourceCount {
			return fmt.Errorf("%w: discard %d would remove all %d sources",
				ErrInvalidParams, m.Discard, sourceCount)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown op %v", ErrInvalidParams, m.Op)
	}
}
