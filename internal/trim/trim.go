package trim

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/papillo-vmw/apitrace/internal/callset"
	"github.com/papillo-vmw/apitrace/internal/trace"
	logpkg "github.com/papillo-vmw/apitrace/pkg/log"
)

// DefaultOutputSuffix is appended to the input's basename when no output
// path is given.
const DefaultOutputSuffix = "-trim.trace"

// Request describes one trimming invocation as assembled by the command
// layer.
type Request struct {
	Input        string
	Output       string   // empty: derive from Input
	OutputSuffix string   // empty: DefaultOutputSuffix
	Calls        []string // selection specs, merged
	Frames       []string // selection specs, merged
	Thread       int64    // AllThreads or a specific thread id
	Filter       string   // optional CEL expression
}

// DeriveOutputPath strips the input's extension and appends the trimmed
// file suffix.
func DeriveOutputPath(input, suffix string) string {
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// mergeSpecs folds selection specs into one set; no specs yields an empty
// set.
func mergeSpecs(specs []string) (*callset.Set, error) {
	s := callset.New(callset.FrequencyNone)
	for _, spec := range specs {
		if err := s.Merge(spec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Trim runs one trimming invocation end to end: configuration is validated
// before any I/O, the input is opened, the output container is created with
// the input's version and properties, and the pipeline streams events
// between them. On a mid-stream failure the output keeps whatever was
// already flushed. Returns the output path alongside the pipeline stats.
func Trim(ctx context.Context, logger logpkg.Logger, req Request) (string, Stats, error) {
	calls, err := mergeSpecs(req.Calls)
	if err != nil {
		return "", Stats{}, err
	}
	frames, err := mergeSpecs(req.Frames)
	if err != nil {
		return "", Stats{}, err
	}
	// Trimming with no criteria trims nothing: default to every call.
	if calls.Empty() && frames.Empty() {
		calls = callset.New(callset.FrequencyAll)
	}
	filter, err := NewFilter(req.Filter)
	if err != nil {
		return "", Stats{}, err
	}

	r, err := trace.OpenFile(req.Input)
	if err != nil {
		return "", Stats{}, &IOError{Side: "input", Path: req.Input, Err: err}
	}
	defer r.Close()

	output := req.Output
	if output == "" {
		output = DeriveOutputPath(req.Input, req.OutputSuffix)
	}
	w, err := trace.Create(output, r.Version(), r.Properties())
	if err != nil {
		return "", Stats{}, &IOError{Side: "output", Path: output, Err: err}
	}

	p := NewPipeline(Options{Calls: calls, Frames: frames, Thread: req.Thread, Filter: filter})
	stats, runErr := p.Run(ctx, r, w)
	if closeErr := w.Close(); closeErr != nil && runErr == nil {
		runErr = &IOError{Side: "output", Path: output, Err: closeErr}
	}
	if runErr != nil {
		return output, stats, runErr
	}

	logger.Info("trimmed trace written",
		logpkg.Str("input", req.Input),
		logpkg.Str("output", output),
		logpkg.Uint64("read", stats.Read),
		logpkg.Uint64("written", stats.Written),
		logpkg.Uint64("frames", stats.Frames),
	)
	return output, stats, nil
}
