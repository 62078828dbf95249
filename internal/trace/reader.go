package trace

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var magic = [4]byte{'T', 'R', 'C', 'E'}

// ErrCorrupt reports framing or checksum damage in a container.
var ErrCorrupt = errors.New("trace: corrupt record")

// maxRecordLen bounds a single record so a damaged length prefix cannot
// trigger a huge allocation.
const maxRecordLen = 1 << 30

// Reader streams events out of a trace container in file order.
type Reader struct {
	f       *os.File
	br      *bufio.Reader
	version uint64
	props   map[string]string
	offset  int64
}

// OpenFile opens a trace container and reads its header.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{f: f, br: bufio.NewReaderSize(f, 1<<16)}
	if err := r.readHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) readHeader() error {
	var m [4]byte
	if _, err := io.ReadFull(r.br, m[:]); err != nil {
		return fmt.Errorf("trace: reading magic: %w", err)
	}
	r.offset += 4
	if m != magic {
		return fmt.Errorf("trace: bad magic %q", m[:])
	}
	v, err := r.readUvarint()
	if err != nil {
		return fmt.Errorf("trace: reading version: %w", err)
	}
	r.version = v

	header, payload, err := r.readRecord()
	if err != nil {
		return fmt.Errorf("trace: reading properties: %w", err)
	}
	if len(header) != 0 {
		return fmt.Errorf("%w at offset %d: properties record has event header", ErrCorrupt, r.offset)
	}
	props := map[string]string{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &props); err != nil {
			return fmt.Errorf("trace: decoding properties: %w", err)
		}
	}
	r.props = props
	return nil
}

// Version returns the container format version.
func (r *Reader) Version() uint64 { return r.version }

// Properties returns the capture metadata recorded in the header.
func (r *Reader) Properties() map[string]string { return r.props }

// Next returns the next event in file order, or io.EOF after the last one.
func (r *Reader) Next() (*Event, error) {
	header, payload, err := r.readRecord()
	if err != nil {
		return nil, err
	}
	no, thread, flags, ok := decodeEventHeader(header)
	if !ok {
		return nil, fmt.Errorf("%w at offset %d: bad event header", ErrCorrupt, r.offset)
	}
	return &Event{No: no, Thread: thread, Flags: flags, Payload: payload}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error { return r.f.Close() }

func (r *Reader) readUvarint() (uint64, error) {
	v, err := binary.ReadUvarint(countingByteReader{r})
	return v, err
}

// readRecord reads one length-prefixed record. io.EOF is returned only at a
// clean record boundary; a truncated record surfaces as ErrCorrupt.
func (r *Reader) readRecord() (header, payload []byte, err error) {
	n, err := r.readUvarint()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, io.EOF
		}
		return nil, nil, fmt.Errorf("%w at offset %d: %v", ErrCorrupt, r.offset, err)
	}
	if n > maxRecordLen {
		return nil, nil, fmt.Errorf("%w at offset %d: record length %d", ErrCorrupt, r.offset, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return nil, nil, fmt.Errorf("%w at offset %d: truncated record: %v", ErrCorrupt, r.offset, err)
	}
	r.offset += int64(n)
	h, p, ok := decodeRecord(buf)
	if !ok {
		return nil, nil, fmt.Errorf("%w at offset %d: checksum mismatch", ErrCorrupt, r.offset)
	}
	return h, p, nil
}

// countingByteReader tracks consumed bytes while reading varints.
type countingByteReader struct {
	r *Reader
}

func (c countingByteReader) ReadByte() (byte, error) {
	b, err := c.r.br.ReadByte()
	if err == nil {
		c.r.offset++
	}
	return b, err
}
