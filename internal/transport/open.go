package transport

import (
	"context"
	"fmt"

	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/ports"
)

// Open creates the sink for kind, connected to ep.
func Open(ctx context.Context, kind domain.TransportKind, ep domain.Endpoint, opts Options) (ports.Sink, error) {
	switch kind {
	case domain.TransportStream:
		return DialStream(ctx, ep, opts)
	case domain.TransportDatagram:
		return DialDatagram(ctx, ep, opts)
	default:
		return nil, fmt.Errorf("%w: unknown transport kind %d", domain.ErrConfig, int(kind))
	}
}
