package domain

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Endpoint is a resolved network address.
type Endpoint struct {
	IP   net.IP
	Port int
}

// String returns the endpoint in host:port form, bracketing IPv6 addresses.
func (e Endpoint) String() string {
	return net.JoinHostPort(e.IP.String(), strconv.Itoa(e.Port))
}

// UDPAddr returns the endpoint as a *net.UDPAddr.
func (e Endpoint) UDPAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: e.IP, Port: e.Port}
}

// TransportKind selects the transport variant for a run.
type TransportKind int

const (
	// TransportStream sends frames over one TCP connection.
	TransportStream TransportKind = iota
	// TransportDatagram sends each frame as one UDP datagram.
	TransportDatagram
)

// String returns the protocol token for the kind.
func (k TransportKind) String() string {
	switch k {
	case TransportStream:
		return "tcp"
	case TransportDatagram:
		return "udp"
	default:
		return "unknown"
	}
}

// ParseTransportKind maps a case-insensitive protocol token to a TransportKind.
func ParseTransportKind(token string) (TransportKind, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "tcp":
		return TransportStream, nil
	case "udp":
		return TransportDatagram, nil
	default:
		return 0, fmt.Errorf("%w: invalid protocol %q (want tcp or udp)", ErrConfig, token)
	}
}
