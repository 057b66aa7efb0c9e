package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the engine settings that affect key binding behavior.
type Settings struct {
	// ChainTimeoutMS is the inter-key timeout for chained shortcuts, in
	// milliseconds. Negative values are clamped to zero.
	ChainTimeoutMS int `toml:"chain-timeout-ms"`

	// BindingsFile is the bindings file loaded at startup.
	BindingsFile string `toml:"bindings-file"`

	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `toml:"log-level"`

	// LogFormat is "console" or "json".
	LogFormat string `toml:"log-format"`

	// KeyDebug enables resolution tracing at startup.
	KeyDebug bool `toml:"key-debug"`
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		ChainTimeoutMS: 750,
		BindingsFile:   "uikeys.txt",
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// ChainTimeout returns the chain timeout as a duration.
func (s Settings) ChainTimeout() time.Duration {
	return time.Duration(s.ChainTimeoutMS) * time.Millisecond
}

// normalize clamps out-of-range values and fills empty fields from the
// defaults.
func (s *Settings) normalize() {
	def := Default()
	if s.ChainTimeoutMS < 0 {
		s.ChainTimeoutMS = 0
	}
	if s.BindingsFile == "" {
		s.BindingsFile = def.BindingsFile
	}
	if s.LogLevel == "" {
		s.LogLevel = def.LogLevel
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		s.LogFormat = def.LogFormat
	}
}

// Load reads settings from a TOML file. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing settings file %s: %w", path, err)
	}

	s.normalize()
	return s, nil
}

// Parse reads settings from raw TOML.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing settings: %w", err)
	}
	s.normalize()
	return s, nil
}
