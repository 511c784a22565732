package lineship

import (
	"context"

	"github.com/bft-labs/lineship/internal/adapters/fs"
	"github.com/bft-labs/lineship/internal/app"
	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/ports"
	"github.com/bft-labs/lineship/internal/transport"
)

// Stats holds the totals of one replay.
type Stats = domain.RunStats

// Sentinel errors, for use with errors.Is.
var (
	ErrConfig     = domain.ErrConfig
	ErrResolution = domain.ErrResolution
	ErrSource     = domain.ErrSource
	ErrTransport  = domain.ErrTransport
)

// Lineship replays one file to one endpoint. A Lineship may be run any
// number of times; each run re-reads the file from the start.
type Lineship struct {
	config Config
	opts   options
}

// New creates a Lineship with the given configuration.
// Zero-valued tuning fields take their defaults. Returns an error if the
// configuration is invalid.
func New(cfg Config, opts ...Option) (*Lineship, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Lineship{config: cfg, opts: o}, nil
}

// Config returns the effective configuration.
func (l *Lineship) Config() Config {
	return l.config
}

// Run resolves the endpoint, then streams the file to it. It blocks until
// the file is exhausted, an error occurs or ctx is cancelled. The returned
// Stats are valid even when err is non-nil.
func (l *Lineship) Run(ctx context.Context) (Stats, error) {
	cfg := l.config
	logger := l.opts.logger

	ep, err := transport.NewResolver(l.opts.lookup, cfg.Transport.String()).Resolve(ctx, cfg.Host, cfg.Port)
	if err != nil {
		logger.Error("resolve failed",
			ports.String("host", cfg.Host),
			ports.String("port", cfg.Port),
			ports.Err(err),
		)
		return Stats{}, err
	}

	src, err := fs.OpenLineFile(cfg.FilePath, cfg.MaxLineBytes)
	if err != nil {
		logger.Error("open source failed", ports.String("path", cfg.FilePath), ports.Err(err))
		return Stats{}, err
	}
	defer src.Close()

	var emitter app.SendEventEmitter
	if l.opts.eventHandler != nil {
		emitter = eventEmitterWrapper{handler: l.opts.eventHandler}
	}

	d := app.NewDispatcher(cfg.transportOptions(logger), logger, emitter)

	return d.Run(ctx, src, cfg.Transport, domain.Config{BatchSize: cfg.BatchSize}, ep)
}

// CountLines returns the number of lines in the configured file, for
// progress reporting.
func (l *Lineship) CountLines() (int, error) {
	return fs.CountLines(l.config.FilePath, l.config.MaxLineBytes)
}
