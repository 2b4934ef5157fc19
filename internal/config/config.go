// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Built-in defaults when neither config file, env, nor flag says otherwise.
const (
	DefaultPath      = "USER_FEEDBACK.md"
	DefaultThreshold = 1.0
)

// Config holds defaults for the feedmark commands.
type Config struct {
	Path      string  `yaml:"path"`
	Threshold float64 `yaml:"threshold"`
	Note      string  `yaml:"note"` // empty means the built-in note
}

// Load reads config from a YAML file with env overrides. An empty path
// skips the file and yields built-in defaults plus env overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Path:      DefaultPath,
		Threshold: DefaultThreshold,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		if cfg.Path == "" {
			cfg.Path = DefaultPath
		}
		if cfg.Threshold == 0 {
			cfg.Threshold = DefaultThreshold
		}
	}

	// Env overrides
	if p := os.Getenv("FEEDMARK_PATH"); p != "" {
		cfg.Path = p
	}
	if n := os.Getenv("FEEDMARK_NOTE"); n != "" {
		cfg.Note = n
	}
	if v := os.Getenv("FEEDMARK_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid FEEDMARK_THRESHOLD %q: %w", v, err)
		}
		cfg.Threshold = f
	}

	return cfg, nil
}
