package trim

import "fmt"

// IOError reports a failure on one side of the pipeline. Side is "input" or
// "output"; Path is empty when the failure happened mid-stream and the
// wrapped error already carries it.
type IOError struct {
	Side string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Side, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Side, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
