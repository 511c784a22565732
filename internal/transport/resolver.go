package transport

import (
	"context"
	"fmt"
	"net"

	"github.com/bft-labs/lineship/internal/domain"
)

// Lookup performs name and service resolution.
// *net.Resolver satisfies this interface.
type Lookup interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupPort(ctx context.Context, network, service string) (int, error)
}

// Resolver turns a host/port pair into a single Endpoint.
type Resolver struct {
	lookup  Lookup
	network string
}

// NewResolver creates a resolver. A nil lookup uses net.DefaultResolver.
// network ("tcp" or "udp") selects the service table for named ports;
// empty means "tcp".
func NewResolver(lookup Lookup, network string) *Resolver {
	if lookup == nil {
		lookup = net.DefaultResolver
	}
	if network == "" {
		network = "tcp"
	}
	return &Resolver{lookup: lookup, network: network}
}

// Resolve returns the first address the resolver yields for host, paired
// with the parsed port. IP literals are used as-is.
func (r *Resolver) Resolve(ctx context.Context, host, port string) (domain.Endpoint, error) {
	p, err := r.lookup.LookupPort(ctx, r.network, port)
	if err != nil {
		return domain.Endpoint{}, fmt.Errorf("%w: port %q: %w", domain.ErrResolution, port, err)
	}
	if p <= 0 || p > 65535 {
		return domain.Endpoint{}, fmt.Errorf("%w: port %q out of range", domain.ErrResolution, port)
	}

	if ip := net.ParseIP(host); ip != nil {
		return domain.Endpoint{IP: ip, Port: p}, nil
	}

	addrs, err := r.lookup.LookupIPAddr(ctx, host)
	if err != nil {
		return domain.Endpoint{}, fmt.Errorf("%w: host %q: %w", domain.ErrResolution, host, err)
	}
	if len(addrs) == 0 {
		return domain.Endpoint{}, fmt.Errorf("%w: host %q has no addresses", domain.ErrResolution, host)
	}
	return domain.Endpoint{IP: addrs[0].IP, Port: p}, nil
}
