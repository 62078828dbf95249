package traceindex

import "path/filepath"

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - idx/trace/{absolute path}

var (
	tracePrefix = []byte("idx/trace/")
)

// KeyTrace builds the catalog key for a trace path.
func KeyTrace(path string) []byte {
	k := make([]byte, 0, len(tracePrefix)+len(path))
	k = append(k, tracePrefix...)
	k = append(k, path...)
	return k
}

// KeyTracePrefix returns the scan bounds covering every catalog entry.
func KeyTracePrefix() (lower, upper []byte) {
	lower = append([]byte(nil), tracePrefix...)
	upper = append([]byte(nil), tracePrefix...)
	upper[len(upper)-1]++
	return lower, upper
}

func absPath(path string) (string, error) {
	return filepath.Abs(path)
}
