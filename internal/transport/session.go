package transport

import "github.com/bft-labs/lineship/internal/domain"

// SessionState is the connection state of a stream sink.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateConnected
	StateClosed
)

// String returns a human-readable representation of the state.
func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnected:
		return "Connected"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// session tracks the Disconnected -> Connected -> Closed state machine.
// It is owned by a single goroutine.
type session struct {
	state SessionState
}

// transitionTo moves to next or returns an error if the transition is not valid.
// Disconnected may move to Closed directly when a dial fails.
func (s *session) transitionTo(next SessionState) error {
	switch s.state {
	case StateDisconnected:
		if next != StateConnected && next != StateClosed {
			return domain.ErrNotConnected
		}
	case StateConnected:
		if next == StateConnected {
			return domain.ErrAlreadyConnected
		}
		if next != StateClosed {
			return domain.ErrSessionClosed
		}
	case StateClosed:
		return domain.ErrSessionClosed
	}
	s.state = next
	return nil
}

// ready reports whether frames can be written.
func (s *session) ready() error {
	switch s.state {
	case StateConnected:
		return nil
	case StateClosed:
		return domain.ErrSessionClosed
	default:
		return domain.ErrNotConnected
	}
}
