package transport

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/ports"
)

// DatagramSink sends each frame as one UDP datagram from an unconnected
// socket, so ICMP errors from the peer never fail a send.
type DatagramSink struct {
	conn     *net.UDPConn
	endpoint domain.Endpoint
	addr     *net.UDPAddr
	maxSize  int
	logger   ports.Logger
	closed   bool
}

// DialDatagram binds an ephemeral local UDP socket of ep's address family.
// No packets are exchanged.
func DialDatagram(ctx context.Context, ep domain.Endpoint, opts Options) (*DatagramSink, error) {
	opts = opts.withDefaults()

	network := "udp6"
	if ep.IP.To4() != nil {
		network = "udp4"
	}

	var lc net.ListenConfig
	pc, err := lc.ListenPacket(ctx, network, ":0")
	if err != nil {
		return nil, fmt.Errorf("%w: open udp socket for %s: %w", domain.ErrTransport, ep, err)
	}
	conn := pc.(*net.UDPConn)

	opts.Logger.Debug("datagram socket ready",
		ports.String("endpoint", ep.String()),
		ports.String("local", conn.LocalAddr().String()),
		ports.Int("max_datagram", opts.MaxDatagramSize),
	)

	return &DatagramSink{
		conn:     conn,
		endpoint: ep,
		addr:     ep.UDPAddr(),
		maxSize:  opts.MaxDatagramSize,
		logger:   opts.Logger,
	}, nil
}

// Send transmits frame as a single datagram. Oversized frames are rejected.
func (s *DatagramSink) Send(ctx context.Context, frame domain.Frame) error {
	if s.closed {
		return domain.ErrSessionClosed
	}
	if len(frame) > s.maxSize {
		return fmt.Errorf("%w: frame of %d bytes exceeds datagram limit %d; lower the batch size",
			domain.ErrTransport, len(frame), s.maxSize)
	}

	deadline, _ := ctx.Deadline()
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("%w: set deadline: %w", domain.ErrTransport, err)
	}

	n, err := s.conn.WriteToUDP(frame, s.addr)
	if err != nil {
		return fmt.Errorf("%w: send to %s: %w", domain.ErrTransport, s.endpoint, err)
	}
	if n != len(frame) {
		return fmt.Errorf("%w: send to %s: %w", domain.ErrTransport, s.endpoint, io.ErrShortWrite)
	}
	return nil
}

// Close releases the socket. Closing a closed sink is a no-op.
func (s *DatagramSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("%w: close udp socket: %w", domain.ErrTransport, err)
	}
	return nil
}

// Kind returns domain.TransportDatagram.
func (s *DatagramSink) Kind() domain.TransportKind {
	return domain.TransportDatagram
}

var _ ports.Sink = (*DatagramSink)(nil)
