package callset

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, spec string) *Set {
	t.Helper()
	s, err := Parse(spec)
	if err != nil {
		t.Fatalf("parse %q: %v", spec, err)
	}
	return s
}

func TestContainsSingleton(t *testing.T) {
	s := mustParse(t, "7")
	if !s.Contains(7) {
		t.Fatalf("7 should be selected")
	}
	for _, n := range []uint64{0, 6, 8, 1000} {
		if s.Contains(n) {
			t.Fatalf("%d should not be selected", n)
		}
	}
}

func TestContainsClosedRange(t *testing.T) {
	s := mustParse(t, "2-5")
	for n := uint64(2); n <= 5; n++ {
		if !s.Contains(n) {
			t.Fatalf("%d should be selected", n)
		}
	}
	if s.Contains(1) || s.Contains(6) {
		t.Fatalf("boundary neighbors must not be selected")
	}
}

func TestContainsOpenEnded(t *testing.T) {
	s := mustParse(t, "100-")
	if s.Contains(99) {
		t.Fatalf("99 should not be selected")
	}
	for _, n := range []uint64{100, 101, 1 << 40} {
		if !s.Contains(n) {
			t.Fatalf("%d should be selected", n)
		}
	}
	if _, bounded := s.Bound(); bounded {
		t.Fatalf("open-ended set must be unbounded")
	}
}

func TestKeywords(t *testing.T) {
	all := mustParse(t, "all")
	if !all.Contains(0) || !all.Contains(1<<50) {
		t.Fatalf("all must contain everything")
	}
	if all.Empty() {
		t.Fatalf("all is not empty")
	}
	if _, bounded := all.Bound(); bounded {
		t.Fatalf("all must be unbounded")
	}

	star := mustParse(t, "*")
	if !star.Contains(42) {
		t.Fatalf("* must contain everything")
	}

	none := mustParse(t, "none")
	if !none.Empty() {
		t.Fatalf("none must be empty")
	}
	if none.Contains(0) {
		t.Fatalf("none must contain nothing")
	}
}

func TestMergeUnionEquivalence(t *testing.T) {
	merged := New(FrequencyNone)
	if err := merged.Merge("2-5"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := merged.Merge("4-9,20"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	single := mustParse(t, "2-9,20")
	for n := uint64(0); n <= 30; n++ {
		if merged.Contains(n) != single.Contains(n) {
			t.Fatalf("membership mismatch at %d", n)
		}
	}
	max, bounded := merged.Bound()
	if !bounded || max != 20 {
		t.Fatalf("want bound 20, got %d (bounded=%v)", max, bounded)
	}
}

func TestMergeAllAbsorbs(t *testing.T) {
	s := mustParse(t, "1-3")
	if err := s.Merge("all"); err != nil {
		t.Fatalf("merge all: %v", err)
	}
	if !s.Contains(1 << 30) {
		t.Fatalf("set merged with all must contain everything")
	}
	if err := s.Merge("5-7"); err != nil {
		t.Fatalf("merge after all: %v", err)
	}
	if _, bounded := s.Bound(); bounded {
		t.Fatalf("set must stay unbounded after absorbing all")
	}
}

func TestMergeNoneIsNoop(t *testing.T) {
	s := mustParse(t, "3")
	if err := s.Merge("none"); err != nil {
		t.Fatalf("merge none: %v", err)
	}
	if !s.Contains(3) || s.Contains(4) {
		t.Fatalf("merging none must not change membership")
	}
}

func TestAdjacentRangesCoalesce(t *testing.T) {
	s := New(FrequencyNone)
	for _, spec := range []string{"0-4", "5-9"} {
		if err := s.Merge(spec); err != nil {
			t.Fatalf("merge %q: %v", spec, err)
		}
	}
	if len(s.ranges) != 1 {
		t.Fatalf("adjacent ranges should coalesce, got %v", s.ranges)
	}
	if !s.Contains(4) || !s.Contains(5) {
		t.Fatalf("coalesced range lost members")
	}
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"", "x", "1-2-3", "-5", "5-3", "1,,2", "1 2"} {
		_, err := Parse(spec)
		if err == nil {
			t.Fatalf("parse %q: expected error", spec)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("parse %q: expected ParseError, got %T", spec, err)
		}
	}
}

func TestParseErrorNamesToken(t *testing.T) {
	_, err := Parse("1-3,bogus,9")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Token != "bogus" {
		t.Fatalf("want offending token %q, got %q", "bogus", pe.Token)
	}
}

func TestBoundOfEmpty(t *testing.T) {
	s := New(FrequencyNone)
	max, bounded := s.Bound()
	if !bounded || max != 0 {
		t.Fatalf("empty set bound: got %d (bounded=%v)", max, bounded)
	}
}
