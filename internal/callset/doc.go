// Package callset implements selection sets over call and frame numbers.
//
// A Set is a predicate over non-negative integers built from a compact
// textual syntax and frozen after configuration. The syntax accepts the
// keywords "none" and "all" (or "*"), and comma-separated terms:
//
//	7        a single number
//	2-5      an inclusive range
//	100-     everything from 100 upward
//
// Multiple specifications may be merged into one Set before first use; the
// result is the union of the merged specifications. Ranges are sorted and
// coalesced on merge so membership tests are a binary search.
package callset
