// Package batch groups records into bounded batches and encodes them into
// newline-delimited frames.
package batch

import (
	"fmt"

	"github.com/bft-labs/lineship/internal/domain"
)

// maxPrealloc bounds the records reserved up front; larger batches grow on demand.
const maxPrealloc = 4096

// Batcher accumulates records until the configured count is reached.
// Batching is purely positional: record content and size are never inspected.
type Batcher struct {
	batch *domain.Batch
	size  int
}

// NewBatcher creates a batcher that holds at most size records.
func NewBatcher(size int) (*Batcher, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", domain.ErrConfig, size)
	}
	return &Batcher{
		batch: domain.NewBatch(min(size, maxPrealloc)),
		size:  size,
	}, nil
}

// Add appends a record and returns true once the batch is full.
func (b *Batcher) Add(r domain.Record) bool {
	b.batch.Add(r)
	return b.batch.Size() >= b.size
}

// Batch returns the current batch.
func (b *Batcher) Batch() *domain.Batch {
	return b.batch
}

// Reset clears the batch for the next round.
func (b *Batcher) Reset() {
	b.batch.Reset()
}

// HasPending returns true if there are records waiting to be sent.
func (b *Batcher) HasPending() bool {
	return !b.batch.Empty()
}
