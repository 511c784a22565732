package lineship

import (
	"fmt"
	"time"

	"github.com/bft-labs/lineship/internal/adapters/fs"
	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/transport"
)

// TransportKind selects stream (TCP) or datagram (UDP) delivery.
type TransportKind = domain.TransportKind

// Transport kinds.
const (
	TCP = domain.TransportStream
	UDP = domain.TransportDatagram
)

// ParseTransportKind parses "tcp" or "udp", ignoring case and surrounding space.
func ParseTransportKind(s string) (TransportKind, error) {
	return domain.ParseTransportKind(s)
}

// DefaultBatchSize is the number of lines per frame used when BatchSize is unset.
const DefaultBatchSize = 1000

// Config holds the configuration for one replay.
type Config struct {
	// FilePath is the line-oriented input file. Required.
	FilePath string
	// Host is a hostname or IP literal. Required.
	Host string
	// Port is a numeric port or a service name. Required.
	Port string
	// Transport selects TCP or UDP. Required.
	Transport TransportKind

	// BatchSize is the number of lines per frame. Default: 1000.
	BatchSize int
	// DialTimeout bounds the TCP connect. Zero selects the 5s default;
	// a negative value disables the timeout and leaves only ctx.
	DialTimeout time.Duration
	// DisableNoDelay re-enables Nagle's algorithm on TCP. By default
	// (false) every frame is pushed to the network immediately.
	DisableNoDelay bool
	// MaxLineBytes is the longest accepted line. Default: 1MB.
	MaxLineBytes int
	// MaxDatagramSize is the largest UDP payload. Default: 65507.
	MaxDatagramSize int
}

// DefaultConfig returns a Config with default tuning values and no target.
func DefaultConfig() Config {
	opts := transport.DefaultOptions()
	return Config{
		BatchSize:       DefaultBatchSize,
		DialTimeout:     opts.DialTimeout,
		MaxLineBytes:    fs.DefaultMaxLineBytes,
		MaxDatagramSize: opts.MaxDatagramSize,
	}
}

// SetDefaults fills zero-valued tuning fields with their defaults.
func (c *Config) SetDefaults() {
	def := DefaultConfig()
	if c.BatchSize == 0 {
		c.BatchSize = def.BatchSize
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = def.DialTimeout
	}
	if c.MaxLineBytes == 0 {
		c.MaxLineBytes = def.MaxLineBytes
	}
	if c.MaxDatagramSize == 0 {
		c.MaxDatagramSize = def.MaxDatagramSize
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("%w: file path is required", domain.ErrConfig)
	}
	if c.Host == "" {
		return fmt.Errorf("%w: host is required", domain.ErrConfig)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", domain.ErrConfig)
	}
	if c.Transport != TCP && c.Transport != UDP {
		return fmt.Errorf("%w: transport must be tcp or udp", domain.ErrConfig)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch size must be at least 1, got %d", domain.ErrConfig, c.BatchSize)
	}
	if c.MaxLineBytes < 1 {
		return fmt.Errorf("%w: max line bytes must be positive", domain.ErrConfig)
	}
	if c.MaxDatagramSize < 1 || c.MaxDatagramSize > transport.MaxDatagramSize {
		return fmt.Errorf("%w: max datagram size must be in 1..%d", domain.ErrConfig, transport.MaxDatagramSize)
	}
	return nil
}

// transportOptions maps the public tuning fields onto sink options.
func (c Config) transportOptions(logger Logger) transport.Options {
	timeout := c.DialTimeout
	if timeout < 0 {
		timeout = 0
	}
	return transport.Options{
		DialTimeout:     timeout,
		NoDelay:         !c.DisableNoDelay,
		MaxDatagramSize: c.MaxDatagramSize,
		Logger:          logger,
	}
}
