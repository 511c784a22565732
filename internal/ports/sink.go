package ports

import (
	"context"

	"github.com/bft-labs/lineship/internal/domain"
)

// Sink transmits frames to a single endpoint.
// Sinks are used by one goroutine at a time and are not safe for concurrent use.
type Sink interface {
	// Send transmits one frame. It returns only after the whole frame was
	// handed to the transport or an error occurred. Success does not imply
	// that the receiver got the data.
	Send(ctx context.Context, frame domain.Frame) error

	// Close flushes pending bytes where the protocol permits and releases
	// the underlying socket.
	Close() error

	// Kind reports the transport variant.
	Kind() domain.TransportKind
}
