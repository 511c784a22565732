// Package transport resolves endpoints and delivers frames over TCP or UDP.
//
// Open is the only place where a transport kind selects a sink variant:
//
//   - StreamSink keeps one TCP connection for the whole run, writes every
//     frame completely, and half-closes the connection on Close so queued
//     bytes are pushed to the receiver.
//   - DatagramSink sends each frame as one UDP datagram on a connected
//     socket. Frames larger than the datagram limit are rejected, never
//     fragmented.
//
// Neither sink reads from the peer. Delivery is fire-and-forget.
package transport
