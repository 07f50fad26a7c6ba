// Package engine drives the per-pixel aggregation across whole frames: it
// walks every plane, row, and column of the output, gathers the matching
// sample from every source through the codec, applies the reducer, and
// writes the re-encoded result. The scan can run sequentially or fanned out
// over a worker pool; the two are bit-identical because every output sample
// is a pure function of its own source column.
package engine

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"framestack/pkg/aggregate"
	"framestack/pkg/sample"
)

// ErrSourceUnavailable is returned when a source frame or one of its planes
// was not supplied by the host. It is propagated verbatim; re-requesting
// upstream data is the host's responsibility.
var ErrSourceUnavailable = errors.New("engine: source frame unavailable")

// Source is one input to an aggregation call: a frame plus the category
// label that drives weighted aggregation. Source order is weighting order.
type Source struct {
	Frame *sample.Frame
	Label aggregate.CategoryLabel
}

// Engine applies one aggregation mode across frames. It is stateless
// between calls; scratch buffers live per worker inside Run.
type Engine struct {
	workers int
}

// New returns an engine that fans row scans out over the given number of
// workers. workers <= 0 selects runtime.NumCPU(); 1 runs fully
// sequentially.
func New(workers int) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{workers: workers}
}

// Run populates every sample of out by aggregating the sources under mode.
// Validation (mode parameters, sample kinds, geometry) completes before the
// first sample is written; a per-pixel failure aborts the remaining scan
// and no repaired or partial result is ever reported as success.
func (e *Engine) Run(mode aggregate.Mode, sources []Source, out *sample.Frame) error {
	if len(sources) == 0 {
		return fmt.Errorf("%w: no sources", aggregate.ErrInvalidParams)
	}
	if out == nil || len(out.Planes) == 0 {
		return fmt.Errorf("output frame is missing")
	}
	for i, s := range sources {
		if s.Frame == nil {
			return fmt.Errorf("%w: source %d", ErrSourceUnavailable, i)
		}
		for p, pl := range s.Frame.Planes {
			if pl == nil {
				return fmt.Errorf("%w: source %d plane %d", ErrSourceUnavailable, i, p)
			}
		}
		if err := s.Frame.CheckLayout(out); err != nil {
			return fmt.Errorf("source %d: %v", i, err)
		}
	}

	srcKind := sources[0].Frame.Planes[0].Kind
	for i, s := range sources {
		for p, pl := range s.Frame.Planes {
			if pl.Kind != srcKind {
				return fmt.Errorf("%w: source %d plane %d is %v, want %v",
					sample.ErrUnsupportedKind, i, p, pl.Kind, srcKind)
			}
		}
	}
	outKind := out.Planes[0].Kind
	for p, pl := range out.Planes {
		if pl.Kind != outKind {
			return fmt.Errorf("%w: output plane %d is %v, want %v",
				sample.ErrUnsupportedKind, p, pl.Kind, outKind)
		}
	}
	if err := sample.CheckCompatible(srcKind, outKind); err != nil {
		return err
	}

	domainBits := sample.DomainBits(srcKind, outKind)
	srcCodec, err := sample.NewCodec(srcKind, domainBits)
	if err != nil {
		return err
	}
	outCodec, err := sample.NewCodec(outKind, domainBits)
	if err != nil {
		return err
	}

	labels := make([]aggregate.CategoryLabel, len(sources))
	for i, s := range sources {
		labels[i] = s.Label
	}
	reducer, err := aggregate.NewReducer(mode, labels, srcKind.IsInteger())
	if err != nil {
		return err
	}

	run := scan{
		sources:  sources,
		out:      out,
		srcCodec: srcCodec,
		outCodec: outCodec,
		reducer:  reducer,
	}
	if e.workers == 1 {
		return run.sequential()
	}
	return run.parallel(e.workers)
}

// scan carries the resolved state of one Run call.
type scan struct {
	sources  []Source
	out      *sample.Frame
	srcCodec sample.Codec
	outCodec sample.Codec
	reducer  *aggregate.Reducer
}

// rowTask addresses one output row.
type rowTask struct {
	plane int
	row   int
}

func (s *scan) sequential() error {
	srcRows := make([][]byte, 0, len(s.sources))
	values := make([]float64, 0, len(s.sources))
	for plane := range s.out.Planes {
		for y := 0; y < s.out.Planes[plane].Height; y++ {
			if err := s.scanRow(rowTask{plane, y}, srcRows, values); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *scan) parallel(workers int) error {
	jobs := make(chan rowTask, workers)
	stop := make(chan struct{})
	var once sync.Once
	var firstErr error
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			close(stop)
		})
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Per-worker scratch: rows and values are refilled per
			// pixel but never reallocated.
			srcRows := make([][]byte, 0, len(s.sources))
			values := make([]float64, 0, len(s.sources))
			for task := range jobs {
				if err := s.scanRow(task, srcRows, values); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

dispatch:
	for plane := range s.out.Planes {
		for y := 0; y < s.out.Planes[plane].Height; y++ {
			select {
			case jobs <- rowTask{plane, y}:
			case <-stop:
				break dispatch
			}
		}
	}
	close(jobs)
	wg.Wait()
	return firstErr
}

// scanRow aggregates one output row. Distinct tasks touch disjoint output
// memory, so workers need no locking.
func (s *scan) scanRow(task rowTask, srcRows [][]byte, values []float64) error {
	dst := s.out.Planes[task.plane]
	dstRow := dst.Row(task.row)

	srcRows = srcRows[:0]
	for _, src := range s.sources {
		srcRows = append(srcRows, src.Frame.Planes[task.plane].Row(task.row))
	}

	for x := 0; x < dst.Width; x++ {
		values = values[:0]
		for _, row := range srcRows {
			values = append(values, s.srcCodec.Decode(row, x))
		}
		v, err := s.reducer.Reduce(values)
		if err != nil {
			return fmt.Errorf("plane %d row %d col %d: %w", task.plane, task.row, x, err)
		}
		s.outCodec.Encode(dstRow, x, v)
	}
	return nil
}
