package sample

import "fmt"

// Plane is a rectangular grid of samples of a single Kind. Samples are
// stored row-major in Pix; multi-byte samples are little-endian. The engine
// borrows source planes read-only for the duration of one aggregation call
// and never retains references beyond it.
type Plane struct {
	// Kind is the physical encoding of every sample in the plane.
	Kind Kind

	// Width and Height are the plane dimensions in samples.
	Width  int
	Height int

	// Stride is the byte distance between vertically adjacent samples.
	Stride int

	// Pix holds the raw sample bytes, Height*Stride long.
	Pix []byte
}

// NewPlane allocates a zeroed plane of the given kind and dimensions.
func NewPlane(kind Kind, width, height int) *Plane {
	stride := width * kind.StorageBytes()
	return &Plane{
		Kind:   kind,
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, height*stride),
	}
}

// Row returns the raw bytes of row y.
func (p *Plane) Row(y int) []byte {
	return p.Pix[y*p.Stride : y*p.Stride+p.Width*p.Kind.StorageBytes()]
}

// SameGeometry reports whether two planes have identical kind and
// dimensions.
func (p *Plane) SameGeometry(q *Plane) bool {
	return p.Kind == q.Kind && p.Width == q.Width && p.Height == q.Height
}

// Frame is an ordered set of planes making up one source or output image
// (for example Y, Cb, Cr). All sources and the output of one aggregation
// call must have the same number of planes, and plane i of every frame must
// share dimensions with plane i of the others.
type Frame struct {
	Planes []*Plane
}

// NewFrame allocates a frame whose planes all share one kind and whose
// per-plane dimensions are given in order.
func NewFrame(kind Kind, dims [][2]int) *Frame {
	f := &Frame{Planes: make([]*Plane, len(dims))}
	for i, d := range dims {
		f.Planes[i] = NewPlane(kind, d[0], d[1])
	}
	return f
}

// CheckLayout verifies that frame g has the same plane count as f and that
// each pair of corresponding planes matches in width and height. Kind is
// deliberately not compared: the output frame of an aggregation call may use
// a different encoding than its sources.
func (f *Frame) CheckLayout(g *Frame) error {
	if len(f.Planes) != len(g.Planes) {
		return fmt.Errorf("plane count mismatch: %d vs %d", len(f.Planes), len(g.Planes))
	}
	for i := range f.Planes {
		p, q := f.Planes[i], g.Planes[i]
		if p.Width != q.Width || p.Height != q.Height {
			return fmt.Errorf("plane %d dimension mismatch: %dx%d vs %dx%d",
				i, p.Width, p.Height, q.Width, q.Height)
		}
	}
	return nil
}
