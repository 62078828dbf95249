// Package trace reads and writes apitrace's event log container.
//
// A container starts with the magic "TRCE", a uvarint format version, and a
// properties record holding a JSON object of capture metadata. Events
// follow until end of file. Every record (properties and events alike) is
// length-prefixed with a uvarint and encoded as
//
//	uvarint(headerLen) | header | payload | crc32c(header|payload)
//
// For events the header carries the sequence number, originating thread,
// and flags as varints; the payload is opaque and forwarded verbatim by
// all tools in this repository.
//
// Events recorded from multithreaded captures are not guaranteed to appear
// in increasing sequence order; readers hand them out in file order and
// consumers are expected to cope (see internal/trim.Tracker).
package trace
