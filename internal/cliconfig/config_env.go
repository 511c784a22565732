package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (LINESHIP_*).
// It respects flags that have been explicitly set (changed map).
// BATCH_SIZE is not read here; it is an input to ResolveBatchSize.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv("LINESHIP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("dial-timeout", os.Getenv("LINESHIP_DIAL_TIMEOUT"), &cfg.DialTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("LINESHIP_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	if err := s.setIntFromString("max-line-bytes", os.Getenv("LINESHIP_MAX_LINE_BYTES"), &cfg.MaxLineBytes); err != nil {
		return err
	}
	if err := s.setIntFromString("max-datagram-size", os.Getenv("LINESHIP_MAX_DATAGRAM_SIZE"), &cfg.MaxDatagramSize); err != nil {
		return err
	}

	s.setBoolFromString("no-delay", os.Getenv("LINESHIP_NO_DELAY"), &cfg.NoDelay)
	s.setBoolFromString("progress", os.Getenv("LINESHIP_PROGRESS"), &cfg.Progress)

	return nil
}
