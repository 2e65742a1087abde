package transport

import (
	"errors"
	"net"

	"github.com/miekg/dns"
)

// ErrTimeout is returned by Transport.Read() when no packet arrives before
// the read timeout elapses. It is not a failure of the transport.
var ErrTimeout = errors.New("no mDNS packet received before the read timeout")

// Transport is an interface for communicating via UDP.
type Transport interface {
	// Listen binds the transport and joins the multicast group.
	Listen() error

	// Read reads the next packet from the transport.
	Read() (*InboundPacket, error)

	// Write sends a packet via the transport.
	Write(*OutboundPacket) error

	// Group returns the multicast group address for this transport.
	Group() *net.UDPAddr

	// Close closes the transport, preventing further reads and writes.
	Close() error
}

// SendMulticast sends a DNS message to the multicast group of t.
//
// Messages without any records are not sent, in which case it returns false.
func SendMulticast(t Transport, m *dns.Msg) (bool, error) {
	if len(m.Answer) == 0 &&
		len(m.Ns) == 0 &&
		len(m.Extra) == 0 {
		return false, nil
	}

	out, err := NewOutboundPacket(
		Endpoint{Address: t.Group()},
		m,
	)
	if err != nil {
		return false, err
	}
	defer out.Close()

	return true, t.Write(out)
}
