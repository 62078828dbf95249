package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papillo-vmw/apitrace/internal/config"
	"github.com/papillo-vmw/apitrace/internal/trace"
	logpkg "github.com/papillo-vmw/apitrace/pkg/log"
)

func testLogger() logpkg.Logger {
	return logpkg.NewLogger(
		logpkg.WithLevel(logpkg.ErrorLevel),
		logpkg.WithFormatter(&logpkg.TextFormatter{DisableTimestamp: true}),
		logpkg.WithOutput(logpkg.NewWriterOutput(io.Discard)),
	)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.IndexDir = filepath.Join(t.TempDir(), "index")
	return cfg
}

func buildTrace(t *testing.T, path string, count int, frameEvery int) {
	t.Helper()
	w, err := trace.Create(path, trace.FormatVersion, map[string]string{"api": "gl"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < count; i++ {
		ev := trace.Event{No: uint64(i), Thread: 1, Payload: []byte("call")}
		if frameEvery > 0 && (i+1)%frameEvery == 0 {
			ev.Flags = trace.FlagEndFrame
		}
		if err := w.WriteEvent(&ev); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func countEvents(t *testing.T, path string) int {
	t.Helper()
	r, err := trace.OpenFile(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer r.Close()
	n := 0
	for {
		if _, err := r.Next(); err != nil {
			return n
		}
		n++
	}
}

func TestTrimCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "session.trace")
	buildTrace(t, input, 10, 0)
	output := filepath.Join(dir, "out.trace")

	cmd := NewTrimCommand(testLogger(), testConfig(t))
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{input, "--calls", "0-3", "-o", output})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), output) {
		t.Fatalf("expected output path in output, got: %s", buf.String())
	}
	if n := countEvents(t, output); n != 4 {
		t.Fatalf("trimmed trace has %d events, want 4", n)
	}
}

func TestTrimCommandBadCallset(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "session.trace")
	buildTrace(t, input, 2, 0)

	cmd := NewTrimCommand(testLogger(), testConfig(t))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{input, "--calls", "wat"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for malformed callset")
	}
}

func TestTrimCommandDerivesOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "session.trace")
	buildTrace(t, input, 3, 0)

	cmd := NewTrimCommand(testLogger(), testConfig(t))
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{input})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	derived := filepath.Join(dir, "session-trim.trace")
	if n := countEvents(t, derived); n != 3 {
		t.Fatalf("derived output has %d events, want 3", n)
	}
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "scan.trace")
	buildTrace(t, input, 6, 3) // frames end at calls 2 and 5

	cmd := NewScanCommand(testLogger())
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{input, "--verbose"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "6 calls, 2 frames") {
		t.Fatalf("unexpected scan output: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "frame 0 ends at call 2") {
		t.Fatalf("verbose output missing frame ends: %s", buf.String())
	}
}

func TestDisorderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "d.trace")
	w, err := trace.Create(input, trace.FormatVersion, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, no := range []uint64{0, 2, 1, 3} {
		if err := w.WriteEvent(&trace.Event{No: no, Thread: 1}); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	cmd := NewDisorderCommand(testLogger())
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{input})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "4 calls, 3 out-of-sequence, max distance 2") {
		t.Fatalf("unexpected disorder output: %s", buf.String())
	}
}

func TestIndexAddShowList(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "i.trace")
	buildTrace(t, input, 4, 2)
	cfg := testConfig(t)
	logger := testLogger()

	add := NewIndexCommand(logger, cfg)
	buf := &bytes.Buffer{}
	add.SetOut(buf)
	add.SetErr(buf)
	add.SetArgs([]string{"add", input})
	if err := add.Execute(); err != nil {
		t.Fatalf("index add: %v", err)
	}
	if !strings.Contains(buf.String(), "4 calls, 2 frames") {
		t.Fatalf("unexpected add output: %s", buf.String())
	}

	show := NewIndexCommand(logger, cfg)
	buf.Reset()
	show.SetOut(buf)
	show.SetErr(buf)
	show.SetArgs([]string{"show", input})
	if err := show.Execute(); err != nil {
		t.Fatalf("index show: %v", err)
	}
	if !strings.Contains(buf.String(), `"calls": 4`) {
		t.Fatalf("unexpected show output: %s", buf.String())
	}

	list := NewIndexCommand(logger, cfg)
	buf.Reset()
	list.SetOut(buf)
	list.SetErr(buf)
	list.SetArgs([]string{"list"})
	if err := list.Execute(); err != nil {
		t.Fatalf("index list: %v", err)
	}
	if !strings.Contains(buf.String(), "4 calls") {
		t.Fatalf("unexpected list output: %s", buf.String())
	}
}

func TestIndexShowUnindexed(t *testing.T) {
	cfg := testConfig(t)
	show := NewIndexCommand(testLogger(), cfg)
	show.SetOut(io.Discard)
	show.SetErr(io.Discard)
	show.SetArgs([]string{"show", "/nowhere/missing.trace"})
	if err := show.Execute(); err == nil {
		t.Fatalf("expected error for unindexed trace")
	}
}
