package traceindex

import (
	"testing"
	"time"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(t.TempDir(), true)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutGet(t *testing.T) {
	c := newTestCatalog(t)
	in := Summary{
		Path:        "/traces/a.trace",
		Size:        123,
		Fingerprint: "abc",
		Calls:       10,
		Frames:      2,
		FrameEnds:   []uint64{4, 9},
		IndexedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := c.Put(in); err != nil {
		t.Fatalf("put: %v", err)
	}
	out, ok, err := c.Get("/traces/a.trace")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Calls != 10 || out.Frames != 2 || out.Fingerprint != "abc" {
		t.Fatalf("round-trip mismatch: %+v", out)
	}
	if len(out.FrameEnds) != 2 || out.FrameEnds[1] != 9 {
		t.Fatalf("frame ends %v", out.FrameEnds)
	}
}

func TestGetMissing(t *testing.T) {
	c := newTestCatalog(t)
	_, ok, err := c.Get("/traces/never-indexed.trace")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("missing entry reported as present")
	}
}

func TestPutRequiresPath(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.Put(Summary{}); err == nil {
		t.Fatalf("expected error for pathless summary")
	}
}

func TestListAndDelete(t *testing.T) {
	c := newTestCatalog(t)
	for _, p := range []string{"/t/b.trace", "/t/a.trace", "/t/c.trace"} {
		if err := c.Put(Summary{Path: p, Calls: 1}); err != nil {
			t.Fatalf("put %s: %v", p, err)
		}
	}
	out, err := c.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("list returned %d entries", len(out))
	}
	if out[0].Path != "/t/a.trace" {
		t.Fatalf("list not in path order: %v", out[0].Path)
	}
	if err := c.Delete("/t/b.trace"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, err = c.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("delete did not remove entry, %d left", len(out))
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir, true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := c.Put(Summary{Path: "/t/x.trace", Calls: 7}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	c2, err := Open(dir, true)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c2.Close()
	out, ok, err := c2.Get("/t/x.trace")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if out.Calls != 7 {
		t.Fatalf("calls=%d", out.Calls)
	}
}
