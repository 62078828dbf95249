package log

import (
	stdlog "log"
	"strings"
)

// stdWriter adapts a Logger into an io.Writer for the standard library
// logger. Each Write becomes one info-level entry.
type stdWriter struct {
	logger Logger
}

func (w stdWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if msg != "" {
		w.logger.Info(msg, Component("stdlog"))
	}
	return len(p), nil
}

// ToStdLogger returns a *log.Logger that forwards into the given Logger.
func ToStdLogger(logger Logger) *stdlog.Logger {
	return stdlog.New(stdWriter{logger: logger}, "", 0)
}

// RedirectStdLog routes the process-wide standard library logger (used by
// dependencies such as Pebble) into the given Logger.
func RedirectStdLog(logger Logger) {
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	stdlog.SetOutput(stdWriter{logger: logger})
}
