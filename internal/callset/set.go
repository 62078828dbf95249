package callset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Frequency distinguishes the three base shapes of a Set. Modeling it as a
// tagged variant keeps "unbounded" explicit instead of inferring it from an
// empty range list.
type Frequency int

const (
	// FrequencyNone selects no numbers.
	FrequencyNone Frequency = iota
	// FrequencyAll selects every number.
	FrequencyAll
	// FrequencyExplicit selects the union of the configured ranges.
	FrequencyExplicit
)

// openEnd marks the high bound of an open-ended range.
const openEnd = math.MaxUint64

// Range is an inclusive span of numbers. Hi == openEnd marks a range with
// no upper bound.
type Range struct {
	Lo, Hi uint64
}

// ParseError reports a malformed selection specification. Token names the
// offending piece of the spec.
type ParseError struct {
	Spec  string
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("callset: invalid token %q in %q", e.Token, e.Spec)
}

// Set is a predicate over non-negative integers. It is immutable once all
// Merge calls from configuration have been applied.
type Set struct {
	freq   Frequency
	ranges []Range
}

// New returns a Set with the given base frequency and no explicit ranges.
func New(freq Frequency) *Set {
	return &Set{freq: freq}
}

// Parse builds a Set from a single specification string.
func Parse(spec string) (*Set, error) {
	s := New(FrequencyNone)
	if err := s.Merge(spec); err != nil {
		return nil, err
	}
	return s, nil
}

// Merge unions another specification into the set. Merging is associative
// and commutative: the resulting predicate is the union of all merged
// specifications.
func (s *Set) Merge(spec string) error {
	trimmed := strings.TrimSpace(spec)
	switch trimmed {
	case "":
		return &ParseError{Spec: spec, Token: spec}
	case "none":
		return nil
	case "all", "*":
		s.freq = FrequencyAll
		s.ranges = nil
		return nil
	}
	if s.freq == FrequencyAll {
		// Union with everything is still everything; parse only to validate.
		_, err := parseRanges(spec, trimmed)
		return err
	}
	ranges, err := parseRanges(spec, trimmed)
	if err != nil {
		return err
	}
	s.freq = FrequencyExplicit
	s.ranges = coalesce(append(s.ranges, ranges...))
	return nil
}

func parseRanges(spec, trimmed string) ([]Range, error) {
	var out []Range
	for _, tok := range strings.Split(trimmed, ",") {
		tok = strings.TrimSpace(tok)
		r, err := parseTerm(spec, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseTerm(spec, tok string) (Range, error) {
	bad := func() (Range, error) { return Range{}, &ParseError{Spec: spec, Token: tok} }
	if tok == "" {
		return bad()
	}
	i := strings.IndexByte(tok, '-')
	if i < 0 {
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return bad()
		}
		return Range{Lo: n, Hi: n}, nil
	}
	lo, err := strconv.ParseUint(tok[:i], 10, 64)
	if err != nil {
		return bad()
	}
	rest := tok[i+1:]
	if rest == "" {
		return Range{Lo: lo, Hi: openEnd}, nil
	}
	hi, err := strconv.ParseUint(rest, 10, 64)
	if err != nil || hi < lo {
		return bad()
	}
	return Range{Lo: lo, Hi: hi}, nil
}

// coalesce sorts ranges and merges overlapping or adjacent ones.
func coalesce(ranges []Range) []Range {
	if len(ranges) < 2 {
		return ranges
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Lo != ranges[j].Lo {
			return ranges[i].Lo < ranges[j].Lo
		}
		return ranges[i].Hi < ranges[j].Hi
	})
	out := ranges[:1]
	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi || (last.Hi != openEnd && r.Lo == last.Hi+1) {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// Contains reports whether n falls within the set.
func (s *Set) Contains(n uint64) bool {
	switch s.freq {
	case FrequencyNone:
		return false
	case FrequencyAll:
		return true
	}
	// First range whose Hi is >= n; n is a member iff that range starts at
	// or below n.
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].Hi >= n })
	return i < len(s.ranges) && s.ranges[i].Lo <= n
}

// Empty reports whether the set selects nothing.
func (s *Set) Empty() bool {
	return s.freq == FrequencyNone
}

// Bound returns the highest selected number and whether the set is bounded
// above. A FrequencyAll set and any set holding an open-ended range are
// unbounded; callers must not use an unbounded set's value to conclude
// that no further number can be selected. For an empty set Bound returns
// (0, true); callers are expected to check Empty first.
func (s *Set) Bound() (uint64, bool) {
	switch s.freq {
	case FrequencyNone:
		return 0, true
	case FrequencyAll:
		return 0, false
	}
	last := s.ranges[len(s.ranges)-1]
	if last.Hi == openEnd {
		return 0, false
	}
	return last.Hi, true
}
