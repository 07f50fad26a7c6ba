// Package aggregate implements the per-pixel reducers of the aggregation
// engine: plain mean, category-weighted mean, symmetric-trim mean, and
// median, all computed in the canonical float64 domain. It also carries the
// mode/preset vocabulary the host uses to request them.
package aggregate

// CategoryLabel classifies one source by its picture type. It only
// influences the weighted mean; every other mode ignores it.
type CategoryLabel uint8

const (
	// LabelUnknown is the fallback for absent or unrecognized picture
	// types. Its weight is always 1.0.
	LabelUnknown CategoryLabel = iota

	// LabelI marks an intra-coded source.
	LabelI

	// LabelP marks a predicted source.
	LabelP

	// LabelB marks a bidirectionally predicted source.
	LabelB
)

// ParseLabel maps a single-byte picture-type code to a CategoryLabel.
// 'I'/'i' and 'P'/'p' match either case; only uppercase 'B' marks a B
// picture. Everything else, lowercase 'b' included, is LabelUnknown: this
// mirrors the upstream metadata convention exactly.
func ParseLabel(code byte) CategoryLabel {
	switch code {
	case 'I', 'i':
		return LabelI
	case 'P', 'p':
		return LabelP
	case 'B':
		return LabelB
	default:
		return LabelUnknown
	}
}

// Weight returns the weight the label selects from an [I, P, B] triple.
func (l CategoryLabel) Weight(w [3]float64) float64 {
	switch l {
	case LabelI:
		return w[0]
	case LabelP:
		return w[1]
	case LabelB:
		return w[2]
	default:
		return 1.0
	}
}

// String returns the single-letter name of the label.
func (l CategoryLabel) String() string {
	switch l {
	case LabelI:
		return "I"
	case LabelP:
		return "P"
	case LabelB:
		return "B"
	default:
		return "U"
	}
}
