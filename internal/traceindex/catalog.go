package traceindex

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/papillo-vmw/apitrace/internal/storage/pebble"
)

// Catalog persists trace summaries in a Pebble database.
type Catalog struct {
	db *pebblestore.DB
}

// Open creates or opens the catalog under dir.
func Open(dir string, sync bool) (*Catalog, error) {
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Sync: sync})
	if err != nil {
		return nil, err
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database.
func (c *Catalog) Close() error { return c.db.Close() }

// Put stores (or replaces) the summary under the trace's absolute path.
func (c *Catalog) Put(s Summary) error {
	if s.Path == "" {
		return errors.New("traceindex: summary has no path")
	}
	val, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("traceindex: encoding summary: %w", err)
	}
	return c.db.Set(KeyTrace(s.Path), val)
}

// Get loads the summary for a trace path; ok is false when the trace was
// never indexed.
func (c *Catalog) Get(path string) (Summary, bool, error) {
	abs, err := absPath(path)
	if err != nil {
		return Summary{}, false, err
	}
	val, err := c.db.Get(KeyTrace(abs))
	if errors.Is(err, pebblestore.ErrNotFound) {
		return Summary{}, false, nil
	}
	if err != nil {
		return Summary{}, false, err
	}
	var s Summary
	if err := json.Unmarshal(val, &s); err != nil {
		return Summary{}, false, fmt.Errorf("traceindex: decoding summary: %w", err)
	}
	return s, true, nil
}

// Delete removes a trace's summary. Deleting an absent entry is a no-op.
func (c *Catalog) Delete(path string) error {
	abs, err := absPath(path)
	if err != nil {
		return err
	}
	return c.db.Delete(KeyTrace(abs))
}

// List returns every stored summary in path order.
func (c *Catalog) List() ([]Summary, error) {
	lower, upper := KeyTracePrefix()
	iter, err := c.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []Summary
	for ok := iter.First(); ok; ok = iter.Next() {
		var s Summary
		if err := json.Unmarshal(iter.Value(), &s); err != nil {
			return nil, fmt.Errorf("traceindex: decoding summary for %q: %w", iter.Key(), err)
		}
		out = append(out, s)
	}
	return out, nil
}
