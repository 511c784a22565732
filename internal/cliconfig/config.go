package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/pkg/log"
)

// DefaultBatchSize is the number of records per frame when nothing else is configured.
const DefaultBatchSize = 1000

// Config holds CLI configuration for lineship.
type Config struct {
	FilePath string
	Host     string
	Port     string
	Protocol string

	BatchSize int

	DialTimeout     time.Duration
	NoDelay         bool
	MaxLineBytes    int
	MaxDatagramSize int

	Progress      bool
	LogLevel      string
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BatchSize:       DefaultBatchSize,
		DialTimeout:     5 * time.Second,
		NoDelay:         true,
		MaxLineBytes:    1 << 20, // 1MB
		MaxDatagramSize: 65507,
		LogLevel:        "info",
		WatchDebounce:   250 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("%w: file path is required", domain.ErrConfig)
	}
	if c.Host == "" {
		return fmt.Errorf("%w: hostname is required", domain.ErrConfig)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", domain.ErrConfig)
	}
	if _, err := domain.ParseTransportKind(c.Protocol); err != nil {
		return err
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive", domain.ErrConfig)
	}
	if c.MaxLineBytes <= 0 {
		return fmt.Errorf("%w: max line bytes must be positive", domain.ErrConfig)
	}
	if c.MaxDatagramSize <= 0 || c.MaxDatagramSize > 65507 {
		return fmt.Errorf("%w: max datagram size must be in 1..65507", domain.ErrConfig)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("%w: watch debounce must not be negative", domain.ErrConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q: %w", domain.ErrConfig, c.LogLevel, err)
	}
	return nil
}

// Kind returns the parsed transport kind. Call after Validate.
func (c *Config) Kind() domain.TransportKind {
	k, _ := domain.ParseTransportKind(c.Protocol)
	return k
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
