package transport

import (
	"net"

	"github.com/jmalloc/aliasd/src/aliasd/mdns"
)

// Endpoint is the origin or destination of a packet.
type Endpoint struct {
	InterfaceIndex int
	Address        *net.UDPAddr
}

// IsLegacy returns true if this endpoint is a "legacy" endpoint.
//
// A legacy endpoint is a DNS querier that does not implement the full mDNS
// specification. Such queriers send from a port other than 5353.
//
// See https://tools.ietf.org/html/rfc6762#section-6.7.
func (ep Endpoint) IsLegacy() bool {
	return ep.Address != nil && ep.Address.Port != mdns.Port
}
