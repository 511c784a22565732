package transport

import (
	"time"

	"github.com/bft-labs/lineship/internal/ports"
	"github.com/bft-labs/lineship/pkg/log"
)

// MaxDatagramSize is the largest UDP payload an IPv4 datagram can carry.
const MaxDatagramSize = 65507

// Options configures sink creation.
type Options struct {
	// DialTimeout bounds the TCP connect. Zero means no timeout beyond ctx;
	// callers that want a default start from DefaultOptions.
	DialTimeout time.Duration

	// NoDelay disables Nagle's algorithm on TCP so frames are pushed promptly.
	NoDelay bool

	// MaxDatagramSize caps UDP frames. Zero selects MaxDatagramSize.
	MaxDatagramSize int

	Logger ports.Logger
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		DialTimeout:     5 * time.Second,
		NoDelay:         true,
		MaxDatagramSize: MaxDatagramSize,
		Logger:          log.NewNoopLogger(),
	}
}

func (o Options) withDefaults() Options {
	if o.MaxDatagramSize <= 0 || o.MaxDatagramSize > MaxDatagramSize {
		o.MaxDatagramSize = MaxDatagramSize
	}
	if o.Logger == nil {
		o.Logger = log.NewNoopLogger()
	}
	return o
}
