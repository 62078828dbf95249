package trace

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
)

// FormatVersion is the container version written by this tool.
const FormatVersion uint64 = 1

// Writer emits a trace container event by event.
type Writer struct {
	f  *os.File
	bw *bufio.Writer
}

// Create creates a container at path and writes its header. The properties
// map is recorded as-is; callers trimming an existing trace pass the input
// reader's version and properties through unchanged.
func Create(path string, version uint64, props map[string]string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := &Writer{f: f, bw: bufio.NewWriterSize(f, 1<<16)}
	if err := w.writeHeader(version, props); err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader(version uint64, props map[string]string) error {
	if _, err := w.bw.Write(magic[:]); err != nil {
		return err
	}
	if err := w.writeUvarint(version); err != nil {
		return err
	}
	if props == nil {
		props = map[string]string{}
	}
	payload, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("trace: encoding properties: %w", err)
	}
	return w.writeRecord(nil, payload)
}

// WriteEvent appends one event. The payload is written verbatim.
func (w *Writer) WriteEvent(ev *Event) error {
	return w.writeRecord(encodeEventHeader(ev), ev.Payload)
}

// Close flushes buffered records and closes the file.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		_ = w.f.Close()
		return err
	}
	return w.f.Close()
}

func (w *Writer) writeUvarint(v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.bw.Write(buf[:n])
	return err
}

func (w *Writer) writeRecord(header, payload []byte) error {
	rec := encodeRecord(header, payload)
	if err := w.writeUvarint(uint64(len(rec))); err != nil {
		return err
	}
	_, err := w.bw.Write(rec)
	return err
}
