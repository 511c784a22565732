package batch

import (
	"context"
	"errors"
	"io"

	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/ports"
)

// Assembler turns a LineSource into a lazy sequence of batches.
type Assembler struct {
	src     ports.LineSource
	batcher *Batcher
	done    bool
}

// NewAssembler creates an assembler that emits batches of up to size records.
func NewAssembler(src ports.LineSource, size int) (*Assembler, error) {
	b, err := NewBatcher(size)
	if err != nil {
		return nil, err
	}
	return &Assembler{src: src, batcher: b}, nil
}

// Next returns the next batch. Every batch holds exactly the configured
// number of records except the last, which holds at least one.
// Returns io.EOF once the source is exhausted; an empty source yields no batches.
// The returned batch is only valid until the following call to Next.
func (a *Assembler) Next(ctx context.Context) (*domain.Batch, error) {
	a.batcher.Reset()
	if a.done {
		return nil, io.EOF
	}

	for {
		rec, err := a.src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.done = true
				if a.batcher.HasPending() {
					return a.batcher.Batch(), nil
				}
				return nil, io.EOF
			}
			return nil, err
		}

		if a.batcher.Add(rec) {
			return a.batcher.Batch(), nil
		}
	}
}
