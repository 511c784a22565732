package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bft-labs/lineship/internal/batch"
	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/ports"
	"github.com/bft-labs/lineship/internal/transport"
	"github.com/bft-labs/lineship/pkg/log"
)

// SendEventEmitter is called synchronously after every send attempt.
// Implementations must return quickly; they run on the dispatch goroutine.
type SendEventEmitter interface {
	OnBatchSent(records, bytesSent int, duration time.Duration)
	OnSendError(err error, records int)
}

// SinkOpener creates the sink for a run.
type SinkOpener func(ctx context.Context, kind domain.TransportKind, ep domain.Endpoint, opts transport.Options) (ports.Sink, error)

// Dispatcher drives one replay: source -> batches -> frames -> sink.
// Runs are strictly sequential; batch N+1 is assembled only after batch N
// was sent.
type Dispatcher struct {
	transport transport.Options
	logger    ports.Logger
	emitter   SendEventEmitter
	open      SinkOpener
}

// NewDispatcher creates a dispatcher. A nil logger discards output and a nil
// emitter disables events.
func NewDispatcher(opts transport.Options, logger ports.Logger, emitter SendEventEmitter) *Dispatcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	return &Dispatcher{
		transport: opts,
		logger:    logger,
		emitter:   emitter,
		open:      transport.Open,
	}
}

// WithSinkOpener replaces the sink factory, mainly for tests.
func (d *Dispatcher) WithSinkOpener(open SinkOpener) *Dispatcher {
	d.open = open
	return d
}

// Run replays src to ep and returns the delivery totals.
// The first error from the source or the sink aborts the run; the returned
// stats still hold what was delivered before it. The sink is closed on every
// path, and a close failure is reported without touching the counts.
// ctx is checked between batches.
func (d *Dispatcher) Run(ctx context.Context, src ports.LineSource, kind domain.TransportKind, cfg domain.Config, ep domain.Endpoint) (stats domain.RunStats, err error) {
	asm, err := batch.NewAssembler(src, cfg.BatchSize)
	if err != nil {
		return stats, err
	}

	sink, err := d.open(ctx, kind, ep, d.transport)
	if err != nil {
		d.logger.Error("open transport failed",
			ports.String("transport", kind.String()),
			ports.String("endpoint", ep.String()),
			ports.Err(err),
		)
		return stats, err
	}

	d.logger.Info("replay started",
		ports.String("transport", kind.String()),
		ports.String("endpoint", ep.String()),
		ports.Int("batch_size", cfg.BatchSize),
	)

	start := time.Now()
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			d.logger.Error("close transport failed", ports.Err(cerr))
			err = errors.Join(err, cerr)
		}
		stats.Elapsed = time.Since(start)

		d.logger.Info("replay finished",
			ports.Int("records", stats.RecordsSent),
			ports.Int("batches", stats.BatchesSent),
			ports.Int64("bytes", stats.BytesSent),
			ports.Duration("elapsed", stats.Elapsed),
			ports.Float64("records_per_sec", stats.Rate()),
		)
	}()

	var buf []byte
	for {
		if cerr := ctx.Err(); cerr != nil {
			return stats, cerr
		}

		b, nerr := asm.Next(ctx)
		if errors.Is(nerr, io.EOF) {
			return stats, nil
		}
		if nerr != nil {
			d.logger.Error("read source failed", ports.Err(nerr))
			return stats, nerr
		}

		buf = batch.AppendFrame(buf[:0], b)

		sendStart := time.Now()
		if serr := sink.Send(ctx, buf); serr != nil {
			d.logger.Error("send failed",
				ports.Err(serr),
				ports.Int("records", b.Size()),
				ports.Int("bytes", len(buf)),
				ports.Int("sent_so_far", stats.RecordsSent),
			)
			if d.emitter != nil {
				d.emitter.OnSendError(serr, b.Size())
			}
			return stats, fmt.Errorf("batch %d: %w", stats.BatchesSent+1, serr)
		}
		duration := time.Since(sendStart)

		stats.RecordsSent += b.Size()
		stats.BatchesSent++
		stats.BytesSent += int64(len(buf))

		d.logger.Debug("sent batch",
			ports.Int("records", b.Size()),
			ports.Int("bytes", len(buf)),
			ports.Duration("duration", duration),
		)

		if d.emitter != nil {
			d.emitter.OnBatchSent(b.Size(), len(buf), duration)
		}
	}
}
