package config

import (
	"os"
	"strconv"
)

// FromEnv overlays APITRACE_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("APITRACE_OUTPUT_SUFFIX"); v != "" {
		cfg.OutputSuffix = v
	}
	if v := os.Getenv("APITRACE_INDEX_DIR"); v != "" {
		cfg.IndexDir = v
	}
	if v := os.Getenv("APITRACE_INDEX_SYNC"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IndexSync = b
		}
	}
	if v := os.Getenv("APITRACE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("APITRACE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
