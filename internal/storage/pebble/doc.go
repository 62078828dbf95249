// Package pebblestore wraps cockroachdb/pebble with the few operations the
// trace catalog needs: open/close, point reads and writes, and prefix
// iteration. Every write applies the sync policy chosen at open time.
package pebblestore
