// Package log provides apitrace's structured logging facade.
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Internally it is backed by Go's
// standard library slog via a custom handler that routes records through
// the formatter/outputs pipeline, so output stays consistent whether a
// message enters through this facade or through slog directly.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("trim"))
//	l.Info("trace written", log.Str("output", path), log.Uint64("events", n))
//
// Use ApplyConfig to build a logger from a declarative Config with a level
// and a text or JSON format. To capture logs emitted by libraries that use
// the standard library logger (Pebble does), call RedirectStdLog.
package log
