package lineship

import (
	"github.com/bft-labs/lineship/internal/transport"
	"github.com/bft-labs/lineship/pkg/log"
)

// Logger is the interface for structured logging.
type Logger = log.Logger

// Lookup performs host and service name resolution.
// *net.Resolver satisfies this interface.
type Lookup = transport.Lookup

// Option configures optional behavior of Lineship.
type Option func(*options)

type options struct {
	logger       Logger
	eventHandler EventHandler
	lookup       Lookup
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler sets a handler for send events.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithResolver replaces the system resolver used for the host and port.
func WithResolver(lookup Lookup) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}
