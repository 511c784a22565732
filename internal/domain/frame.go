package domain

// Delimiter terminates every record inside a Frame.
const Delimiter byte = '\n'

// Record is one line of input with its line terminator stripped.
// It never contains Delimiter.
type Record []byte

// Frame is the wire form of a Batch: each record followed by Delimiter,
// in source order. Frames never split or merge records.
type Frame []byte

// Records returns the number of delimited records in the frame.
func (f Frame) Records() int {
	n := 0
	for _, c := range f {
		if c == Delimiter {
			n++
		}
	}
	return n
}
