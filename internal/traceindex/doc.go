// Package traceindex maintains a local catalog of trace summaries.
//
// Scanning a multi-gigabyte trace just to learn its call and frame counts
// is wasteful to repeat, so `apitrace index add` stores the result of one
// full scan (call count, frame boundaries, disorder statistics, and a
// content fingerprint) in a Pebble-backed catalog keyed by the trace's
// absolute path. `apitrace index show` and `apitrace index list` read it
// back; the fingerprint lets callers notice when a trace changed on disk
// since it was indexed.
package traceindex
