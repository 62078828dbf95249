package trim

import (
	"context"
	"errors"
	"io"

	"github.com/papillo-vmw/apitrace/internal/callset"
	"github.com/papillo-vmw/apitrace/internal/trace"
)

// AllThreads disables the thread filter.
const AllThreads int64 = -1

// Source yields events in file order. Next returns io.EOF after the last
// event.
type Source interface {
	Next() (*trace.Event, error)
}

// Sink receives the selected events.
type Sink interface {
	WriteEvent(*trace.Event) error
}

// Options configures one pipeline invocation. Both selection sets must be
// non-nil; an empty set leaves that axis unused.
type Options struct {
	Calls  *callset.Set
	Frames *callset.Set
	Thread int64 // AllThreads or a specific thread id
	Filter *Filter
}

// Stats summarizes a completed (or aborted) pipeline run.
type Stats struct {
	Read    uint64
	Written uint64
	Frames  uint64
}

// Pipeline drives the read-filter-write loop for a single invocation. It is
// single-threaded and holds no event beyond the current iteration; the only
// cross-iteration state is the contiguity tracker and the frame counter.
type Pipeline struct {
	opts    Options
	tracker *Tracker
	frame   uint64
}

// NewPipeline builds a pipeline with fresh per-invocation state.
func NewPipeline(opts Options) *Pipeline {
	if opts.Filter == nil {
		opts.Filter = &Filter{}
	}
	return &Pipeline{opts: opts, tracker: NewTracker()}
}

// Run copies selected events from src to dst until the input ends, an error
// occurs, or no further event can satisfy the selection.
func (p *Pipeline) Run(ctx context.Context, src Source, dst Sink) (Stats, error) {
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			stats.Frames = p.frame
			return stats, err
		}
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.Frames = p.frame
			return stats, &IOError{Side: "input", Err: err}
		}
		stats.Read++

		// Mark every event finished, selected or not; the frontier is the
		// only number early termination may rely on.
		nextExpected := p.tracker.Finish(ev.No)

		if p.selects(ev) {
			if err := dst.WriteEvent(ev); err != nil {
				stats.Frames = p.frame
				return stats, &IOError{Side: "output", Err: err}
			}
			stats.Written++
		}

		// The frame counter advances after the selection decision, so the
		// frame-end event itself belongs to the frame it ends.
		if ev.EndsFrame() {
			p.frame++
		}

		if p.done(nextExpected) {
			break
		}
	}
	stats.Frames = p.frame
	return stats, nil
}

// selects applies the thread filter, the two selection axes, and the
// optional expression filter to one event.
func (p *Pipeline) selects(ev *trace.Event) bool {
	if p.opts.Thread != AllThreads && ev.Thread != p.opts.Thread {
		return false
	}
	if !p.opts.Calls.Contains(ev.No) && !p.opts.Frames.Contains(p.frame) {
		return false
	}
	return p.opts.Filter.Eval(ev, p.frame)
}

// done reports whether no further event can satisfy the selection. Both
// axes must independently permit termination: an empty axis permits it
// vacuously, an unbounded axis never does.
func (p *Pipeline) done(nextExpected uint64) bool {
	return axisDone(p.opts.Calls, nextExpected) && axisDone(p.opts.Frames, p.frame)
}

func axisDone(set *callset.Set, progress uint64) bool {
	if set.Empty() {
		return true
	}
	max, bounded := set.Bound()
	return bounded && progress > max
}
