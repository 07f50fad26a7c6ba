package models

import (
	"framestack/pkg/aggregate"
	"framestack/pkg/sample"
)

// SourceFile describes one input frame as named on the command line,
// before it is decoded into planes.
type SourceFile struct {
	// Path is the file holding the frame data.
	Path string

	// Label is the category label parsed from the path suffix
	// ("frame.png:P"), defaulting to unknown.
	Label aggregate.CategoryLabel

	// Index is the position of this source in the input order, which is
	// also its weighting order.
	Index int
}

// DecodedSource pairs a loaded frame with its originating file description.
type DecodedSource struct {
	File  SourceFile
	Frame *sample.Frame
}
