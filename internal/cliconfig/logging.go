package cliconfig

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/bft-labs/lineship/pkg/log"
)

var logger = log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel)

// Logger returns the CLI logger.
func Logger() zerolog.Logger {
	return logger
}

// SetLogLevel changes the CLI logger level. Unknown names leave it unchanged.
func SetLogLevel(name string) error {
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	logger = logger.Level(level)
	return nil
}
