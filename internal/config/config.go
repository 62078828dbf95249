package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// OutputSuffix is appended to an input's basename when trim derives the
	// output path.
	OutputSuffix string `json:"outputSuffix" yaml:"outputSuffix"`
	// IndexDir holds the trace catalog database.
	IndexDir string `json:"indexDir" yaml:"indexDir"`
	// IndexSync requests an fsync per catalog write.
	IndexSync bool `json:"indexSync" yaml:"indexSync"`
	// LogLevel and LogFormat configure the process logger.
	LogLevel  string `json:"logLevel" yaml:"logLevel"`
	LogFormat string `json:"logFormat" yaml:"logFormat"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		OutputSuffix: "-trim.trace",
		IndexDir:     filepath.Join(DefaultDataDir(), "index"),
		IndexSync:    false,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	return cfg, nil
}
