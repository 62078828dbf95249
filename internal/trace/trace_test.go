package trace

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTrace(t *testing.T, path string, props map[string]string, events []Event) {
	t.Helper()
	w, err := Create(path, FormatVersion, props)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := range events {
		if err := w.WriteEvent(&events[i]); err != nil {
			t.Fatalf("write event %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.trace")
	props := map[string]string{"api": "gl", "host": "test"}
	events := []Event{
		{No: 0, Thread: 1, Payload: []byte("glClear")},
		{No: 2, Thread: 2, Flags: FlagEndFrame, Payload: []byte("swap")},
		{No: 1, Thread: 1, Payload: nil},
	}
	writeTrace(t, path, props, events)

	r, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	if r.Version() != FormatVersion {
		t.Fatalf("version: got %d", r.Version())
	}
	if got := r.Properties()["api"]; got != "gl" {
		t.Fatalf("properties: got api=%q", got)
	}
	for i := range events {
		ev, err := r.Next()
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		want := events[i]
		if ev.No != want.No || ev.Thread != want.Thread || ev.Flags != want.Flags {
			t.Fatalf("event %d: got %+v want %+v", i, ev, want)
		}
		if string(ev.Payload) != string(want.Payload) {
			t.Fatalf("event %d payload mismatch", i)
		}
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestEmptyContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.trace")
	writeTrace(t, path, nil, nil)

	r, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF on empty container, got %v", err)
	}
}

func TestChecksumDamage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.trace")
	writeTrace(t, path, nil, []Event{{No: 0, Payload: []byte("payload-bytes")}})

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	b[len(b)-6] ^= 0xff // flip a bit inside the event record
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	if _, err := r.Next(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestTruncatedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.trace")
	writeTrace(t, path, nil, []Event{{No: 0, Payload: []byte("payload-bytes")}})

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.WriteFile(path, b[:len(b)-4], 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	if _, err := r.Next(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on truncation, got %v", err)
	}
}

func TestBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notatrace")
	if err := os.WriteFile(path, []byte("not a trace at all"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Fatalf("expected error opening non-trace file")
	}
}
