package ports

import (
	"context"

	"github.com/bft-labs/lineship/internal/domain"
)

// LineSource yields the records of a line-oriented input in order.
// A source is finite and can be consumed only once.
type LineSource interface {
	// Next returns the next record with its line terminator stripped.
	// Returns io.EOF when the input is exhausted.
	// Other errors are fatal for the run.
	Next(ctx context.Context) (domain.Record, error)

	// Close releases the underlying input.
	Close() error
}
