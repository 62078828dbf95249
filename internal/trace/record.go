package trace

import (
	"encoding/binary"
	"hash/crc32"
)

// Record encoding: uvarint headerLen | header | payload | crc32c(header|payload)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func encodeRecord(header, payload []byte) []byte {
	out := make([]byte, 0, binary.MaxVarintLen64+len(header)+len(payload)+4)
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(len(header)))
	out = append(out, tmp[:n]...)
	out = append(out, header...)
	out = append(out, payload...)

	crc := crc32.Update(0, castagnoli, header)
	crc = crc32.Update(crc, castagnoli, payload)
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	out = append(out, crcb[:]...)
	return out
}

func decodeRecord(b []byte) (header, payload []byte, ok bool) {
	if len(b) < 1+4 {
		return nil, nil, false
	}
	hlen, n := binary.Uvarint(b)
	if n <= 0 || int(hlen) > len(b)-n-4 {
		return nil, nil, false
	}
	header = b[n : n+int(hlen)]
	payload = b[n+int(hlen) : len(b)-4]
	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	crc := crc32.Update(0, castagnoli, header)
	crc = crc32.Update(crc, castagnoli, payload)
	if crc != expect {
		return nil, nil, false
	}
	return header, payload, true
}

// Event header: uvarint no | varint thread | uvarint flags

func encodeEventHeader(ev *Event) []byte {
	var buf [3 * binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], ev.No)
	n += binary.PutVarint(buf[n:], ev.Thread)
	n += binary.PutUvarint(buf[n:], uint64(ev.Flags))
	return buf[:n]
}

func decodeEventHeader(b []byte) (no uint64, thread int64, flags uint32, ok bool) {
	no, n := binary.Uvarint(b)
	if n <= 0 {
		return 0, 0, 0, false
	}
	b = b[n:]
	thread, n = binary.Varint(b)
	if n <= 0 {
		return 0, 0, 0, false
	}
	b = b[n:]
	f, n := binary.Uvarint(b)
	if n <= 0 || f > uint64(^uint32(0)) {
		return 0, 0, 0, false
	}
	return no, thread, uint32(f), true
}
