package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/ports"
)

// StreamSink writes frames to a single TCP connection held for the whole run.
type StreamSink struct {
	conn     *net.TCPConn
	endpoint domain.Endpoint
	session  session
	logger   ports.Logger
}

// DialStream connects to ep and returns a sink in the Connected state.
func DialStream(ctx context.Context, ep domain.Endpoint, opts Options) (*StreamSink, error) {
	opts = opts.withDefaults()
	s := &StreamSink{endpoint: ep, logger: opts.Logger}

	d := net.Dialer{Timeout: opts.DialTimeout}
	c, err := d.DialContext(ctx, "tcp", ep.String())
	if err != nil {
		_ = s.session.transitionTo(StateClosed)
		return nil, fmt.Errorf("%w: connect %s: %w", domain.ErrTransport, ep, err)
	}
	conn := c.(*net.TCPConn)

	if err := conn.SetNoDelay(opts.NoDelay); err != nil {
		conn.Close()
		_ = s.session.transitionTo(StateClosed)
		return nil, fmt.Errorf("%w: set nodelay: %w", domain.ErrTransport, err)
	}

	s.conn = conn
	if err := s.session.transitionTo(StateConnected); err != nil {
		conn.Close()
		return nil, err
	}

	s.logger.Debug("stream connected",
		ports.String("endpoint", ep.String()),
		ports.String("local", conn.LocalAddr().String()),
		ports.Bool("nodelay", opts.NoDelay),
	)
	return s, nil
}

// Send writes the whole frame, continuing after partial writes.
// A deadline on ctx bounds the write.
func (s *StreamSink) Send(ctx context.Context, frame domain.Frame) error {
	if err := s.session.ready(); err != nil {
		return err
	}

	deadline, _ := ctx.Deadline()
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("%w: set deadline: %w", domain.ErrTransport, err)
	}

	if err := writeFull(s.conn, frame); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrTransport, s.endpoint, err)
	}
	return nil
}

// Close half-closes the write side, which pushes any queued bytes and
// signals end of stream to the receiver, then closes the connection.
// Closing a closed sink is a no-op.
func (s *StreamSink) Close() error {
	if s.session.state == StateClosed {
		return nil
	}
	if err := s.session.transitionTo(StateClosed); err != nil {
		return err
	}

	var flushErr error
	if err := s.conn.CloseWrite(); err != nil {
		flushErr = fmt.Errorf("%w: flush %s: %w", domain.ErrTransport, s.endpoint, err)
	}
	var closeErr error
	if err := s.conn.Close(); err != nil {
		closeErr = fmt.Errorf("%w: close %s: %w", domain.ErrTransport, s.endpoint, err)
	}

	s.logger.Debug("stream closed", ports.String("endpoint", s.endpoint.String()))
	return errors.Join(flushErr, closeErr)
}

// Kind returns domain.TransportStream.
func (s *StreamSink) Kind() domain.TransportKind {
	return domain.TransportStream
}

// State returns the session state.
func (s *StreamSink) State() SessionState {
	return s.session.state
}

// writeFull writes p to w until it is fully written or an error occurs.
func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		p = p[n:]
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

var _ ports.Sink = (*StreamSink)(nil)
