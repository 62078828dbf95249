package trim

import (
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/papillo-vmw/apitrace/internal/trace"
)

// Filter wraps a compiled CEL program evaluated against each event. When
// disabled, Eval always returns true.
type Filter struct {
	prog    cel.Program
	enabled bool
}

// NewFilter compiles a CEL expression over event attributes. An empty
// expression yields a disabled filter.
func NewFilter(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return &Filter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("no", cel.UintType),
		cel.Variable("thread", cel.IntType),
		cel.Variable("frame", cel.UintType),
		cel.Variable("end_frame", cel.BoolType),
		cel.Variable("size", cel.IntType),
		// Payload bytes as a string for cheap substring matching.
		cel.Variable("text", cel.StringType),
	)
	if err != nil {
		return nil, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return nil, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return nil, err
	}
	return &Filter{prog: prog, enabled: true}, nil
}

// Eval evaluates the expression against an event and the frame it belongs
// to. Evaluation errors count as non-matches.
func (f *Filter) Eval(ev *trace.Event, frame uint64) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"no":        ev.No,
		"thread":    ev.Thread,
		"frame":     frame,
		"end_frame": ev.EndsFrame(),
		"size":      int64(len(ev.Payload)),
		"text":      string(ev.Payload),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
