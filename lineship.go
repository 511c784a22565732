// Package lineship replays a line-oriented text file to a TCP or UDP endpoint
// in fixed-size, newline-delimited batches.
//
// Example usage:
//
//	stats, err := lineship.Run(context.Background(), lineship.Config{
//	    FilePath:  "events.log",
//	    Host:      "localhost",
//	    Port:      "9000",
//	    Transport: lineship.TCP,
//	    BatchSize: 100,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stats.RecordsSent)
package lineship

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bft-labs/lineship/internal/cliconfig"
	"github.com/bft-labs/lineship/pkg/lineship"
)

// Config holds the configuration for one replay.
type Config = lineship.Config

// Stats holds the totals of one replay.
type Stats = lineship.Stats

// Option configures optional behavior of a replay.
type Option = lineship.Option

// Transport kinds.
const (
	TCP = lineship.TCP
	UDP = lineship.UDP
)

// Run replays cfg.FilePath to the configured endpoint and blocks until done.
func Run(ctx context.Context, cfg Config, opts ...Option) (Stats, error) {
	l, err := lineship.New(cfg, opts...)
	if err != nil {
		return Stats{}, err
	}
	return l.Run(ctx)
}

// DefaultConfig returns a Config with default tuning values.
func DefaultConfig() Config {
	return lineship.DefaultConfig()
}

// ResolveBatchSize picks the batch size from an explicit flag value, an
// environment value and a default, in that order. Non-positive or
// unparsable values are skipped.
func ResolveBatchSize(flag *int, env string, def int) int {
	return cliconfig.ResolveBatchSize(flag, env, def)
}

// Logger returns the package-level zerolog logger used by the CLI.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}
