package batch

import (
	"bytes"

	ibatch "github.com/bft-labs/lineship/internal/batch"
	"github.com/bft-labs/lineship/internal/domain"
)

// Delimiter terminates every line inside a frame.
const Delimiter = domain.Delimiter

// Encode builds one frame from lines. Lines must not contain Delimiter.
func Encode(lines ...[]byte) []byte {
	b := domain.NewBatch(len(lines))
	for _, l := range lines {
		b.Add(domain.Record(l))
	}
	return ibatch.Encode(b)
}

// Split returns the lines of a frame. A trailing partial line, as seen at
// a TCP read boundary, is returned last without its terminator.
func Split(frame []byte) [][]byte {
	if len(frame) == 0 {
		return nil
	}
	lines := bytes.Split(frame, []byte{Delimiter})
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Count returns the number of complete lines in a frame.
func Count(frame []byte) int {
	return domain.Frame(frame).Records()
}
