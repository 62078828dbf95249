// Package cmd provides the `apitrace` command-line commands.
//
// Usage
//
//	# Keep calls 0-99 plus frame 2, only from thread 1
//	apitrace trim session.trace --calls 0-99 --frames 2 --thread 1
//
//	# Derive the output name (session-trim.trace) and filter by payload
//	apitrace trim session.trace --calls 1000- --filter 'text.contains("Draw")'
//
//	# Count calls and frames
//	apitrace scan session.trace
//
//	# Find out-of-sequence call numbers left by thread interleaving
//	apitrace disorder session.trace --verbose
//
//	# Remember scan results for later
//	apitrace index add session.trace
//	apitrace index show session.trace
//	apitrace index list
//
// Selection sets accept the keywords "none" and "all" (or "*") and
// comma-separated terms: a single number, an inclusive range A-B, or an
// open-ended range A-. Repeating --calls or --frames merges the
// specifications into one set.
package cmd
