// Package trim produces a reduced trace containing only the events that
// satisfy a configured selection.
//
// The pipeline streams one event at a time: every event is marked finished
// in a contiguity Tracker, the selection decision (thread filter, call and
// frame selection sets, optional CEL expression) picks the events to copy,
// and a frame counter advances on frame-end markers. Because multithreaded
// captures record a global sequence that may appear out of order in the
// file, early termination keys off the tracker's contiguous frontier, never
// off raw arrival order: the loop stops only once every call number below
// the requested maximum is known to have passed through.
package trim
