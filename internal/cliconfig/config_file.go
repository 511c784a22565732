package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	BatchSize       int    `toml:"batch_size"`
	DialTimeout     string `toml:"dial_timeout"`
	NoDelay         *bool  `toml:"no_delay"`
	MaxLineBytes    int    `toml:"max_line_bytes"`
	MaxDatagramSize int    `toml:"max_datagram_size"`
	Progress        *bool  `toml:"progress"`
	LogLevel        string `toml:"log_level"`
	WatchDebounce   string `toml:"watch_debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.lineship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".lineship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
// The file's batch_size replaces the built-in default only; the flag and
// BATCH_SIZE precedence is applied afterwards by ResolveBatchSize.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if fc.BatchSize > 0 {
		cfg.BatchSize = fc.BatchSize
	}

	if err := s.setDuration("dial-timeout", fc.DialTimeout, &cfg.DialTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setInt("max-line-bytes", fc.MaxLineBytes, &cfg.MaxLineBytes)
	s.setInt("max-datagram-size", fc.MaxDatagramSize, &cfg.MaxDatagramSize)

	s.setBool("no-delay", fc.NoDelay, &cfg.NoDelay)
	s.setBool("progress", fc.Progress, &cfg.Progress)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
