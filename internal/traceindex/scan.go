package traceindex

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"time"

	"github.com/papillo-vmw/apitrace/internal/trace"
)

// Summary is one catalog entry: everything a single pass over a trace can
// tell without interpreting payloads.
type Summary struct {
	Path        string    `json:"path"`
	Size        int64     `json:"size"`
	Fingerprint string    `json:"fingerprint"`
	Calls       uint64    `json:"calls"`
	Frames      uint64    `json:"frames"`
	FrameEnds   []uint64  `json:"frameEnds"` // call numbers that end each frame
	Disordered  uint64    `json:"disordered"`
	MaxDistance uint64    `json:"maxDistance"` // largest out-of-sequence gap
	IndexedAt   time.Time `json:"indexedAt"`
}

// EventSource is the reading side of a trace, satisfied by *trace.Reader.
type EventSource interface {
	Next() (*trace.Event, error)
}

// Scan walks every event once, counting calls and frames and measuring how
// far call numbers stray from file order. Path, Size, Fingerprint and
// IndexedAt are left for the caller to fill.
func Scan(src EventSource) (Summary, error) {
	var s Summary
	haveLast := false
	var lastNo uint64
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return s, err
		}
		if haveLast && ev.No != lastNo+1 {
			s.Disordered++
			d := distance(ev.No, lastNo+1)
			if d > s.MaxDistance {
				s.MaxDistance = d
			}
		} else if !haveLast && ev.No != 0 {
			s.Disordered++
			if ev.No > s.MaxDistance {
				s.MaxDistance = ev.No
			}
		}
		lastNo = ev.No
		haveLast = true
		if ev.EndsFrame() {
			s.Frames++
			s.FrameEnds = append(s.FrameEnds, ev.No)
		}
		s.Calls++
	}
	return s, nil
}

func distance(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// Fingerprint hashes a file's contents for change detection.
func Fingerprint(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// ScanFile opens a trace, scans it, and fills in the file identity fields.
func ScanFile(path string) (Summary, error) {
	abs, err := absPath(path)
	if err != nil {
		return Summary{}, err
	}
	r, err := trace.OpenFile(abs)
	if err != nil {
		return Summary{}, err
	}
	defer r.Close()
	s, err := Scan(r)
	if err != nil {
		return Summary{}, err
	}
	fp, size, err := Fingerprint(abs)
	if err != nil {
		return Summary{}, err
	}
	s.Path = abs
	s.Size = size
	s.Fingerprint = fp
	s.IndexedAt = time.Now().UTC()
	return s, nil
}
