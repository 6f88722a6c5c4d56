// Package config loads scanner configuration from layered sources: built-in
// defaults, an optional .debtscope.json in the project root, and DEBTSCOPE_*
// environment variables, each layer overriding the previous one.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileName is the per-project configuration file.
const FileName = ".debtscope.json"

// EnvPrefix namespaces the environment variable layer. DEBTSCOPE_HOURLY_RATE
// maps to the hourly_rate key.
const EnvPrefix = "DEBTSCOPE_"

// Config is the full scanner configuration.
type Config struct {
	// Ignore is extra glob patterns merged with the built-in defaults and
	// the project's .debtscopeignore.
	Ignore []string `koanf:"ignore"`

	// MaxFileSize skips files above this many bytes. Zero means the
	// collector default.
	MaxFileSize int64 `koanf:"max_file_size"`

	// Concurrency bounds parallel file analysis. Zero means the runner
	// default.
	Concurrency int `koanf:"concurrency"`

	// Smells, Security, and Authorship toggle analyzer families.
	Smells     bool `koanf:"smells"`
	Security   bool `koanf:"security"`
	Authorship bool `koanf:"authorship"`

	// AIThreshold is the likelihood above which a file is reported as
	// machine-generated.
	AIThreshold float64 `koanf:"ai_threshold"`

	// MinutesPerLine and HourlyRate parameterize the scoring engine.
	MinutesPerLine int     `koanf:"minutes_per_line"`
	HourlyRate     float64 `koanf:"hourly_rate"`

	// SeverityWeights overrides the risk-score weights per severity.
	SeverityWeights map[string]float64 `koanf:"severity_weights"`

	// Benchmarks appends industry comparisons to scan results.
	Benchmarks bool `koanf:"benchmarks"`

	// StorePath overrides the findings database location. Empty means
	// <root>/.debtscope/debtscope.db.
	StorePath string `koanf:"store_path"`
}

// defaults is the confmap base layer.
var defaults = map[string]interface{}{
	"ignore":           []string{},
	"max_file_size":    int64(0),
	"concurrency":      0,
	"smells":           true,
	"security":         true,
	"authorship":       true,
	"ai_threshold":     70.0,
	"minutes_per_line": 0,
	"hourly_rate":      0.0,
	"benchmarks":       true,
	"store_path":       "",
}

// Load reads the configuration for a project root. A missing config file is
// not an error; a malformed one is.
func Load(root string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with no file or environment overrides.
func Default() *Config {
	return &Config{
		Smells:      true,
		Security:    true,
		Authorship:  true,
		AIThreshold: 70,
		Benchmarks:  true,
	}
}
