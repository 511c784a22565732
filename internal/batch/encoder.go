package batch

import "github.com/bft-labs/lineship/internal/domain"

// Encode serializes a batch into a new frame sized exactly to its content.
func Encode(b *domain.Batch) domain.Frame {
	return AppendFrame(nil, b)
}

// AppendFrame appends the encoding of b to dst and returns the extended frame.
// dst is grown at most once, to the exact frame length, so a buffer reused
// across batches stops reallocating after the largest batch.
func AppendFrame(dst []byte, b *domain.Batch) domain.Frame {
	need := b.FrameLen()
	if cap(dst)-len(dst) < need {
		grown := make([]byte, len(dst), len(dst)+need)
		copy(grown, dst)
		dst = grown
	}
	for _, r := range b.Records {
		dst = append(dst, r...)
		dst = append(dst, domain.Delimiter)
	}
	return dst
}
