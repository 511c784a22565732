package domain

import "errors"

// Domain errors represent the failure classes of a replay run.
// Returned errors wrap one of these and can be checked with errors.Is.
var (
	// ErrConfig is returned when a configuration value is invalid.
	// Batch size values that fail to parse fall through to the next source
	// instead of surfacing this error.
	ErrConfig = errors.New("lineship: invalid configuration")

	// ErrResolution is returned when a host/port pair does not resolve to an address.
	ErrResolution = errors.New("lineship: address resolution failed")

	// ErrSource is returned when the input file cannot be opened or read.
	ErrSource = errors.New("lineship: source error")

	// ErrTransport is returned for connect, write, flush, close or datagram failures.
	ErrTransport = errors.New("lineship: transport error")

	// ErrNotConnected is returned when a stream session is used before it is connected.
	ErrNotConnected = errors.New("lineship: session not connected")

	// ErrAlreadyConnected is returned when a stream session is connected twice.
	ErrAlreadyConnected = errors.New("lineship: session already connected")

	// ErrSessionClosed is returned when a stream session is used after Close.
	ErrSessionClosed = errors.New("lineship: session closed")
)
