// Package batch exposes the lineship frame format for programs on either
// end of the wire.
//
// A frame is a batch of lines, each followed by a single "\n". There is no
// header, length prefix or trailing blank line, so a frame is valid input
// for any newline-delimited reader.
//
// # Usage
//
// Build a frame from lines:
//
//	frame := batch.Encode([]byte("a"), []byte("b")) // "a\nb\n"
//
// Split a received TCP stream chunk or UDP datagram back into lines:
//
//	for _, line := range batch.Split(frame) {
//	    handle(line)
//	}
package batch
