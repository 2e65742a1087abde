package transport

import (
	"fmt"

	"github.com/miekg/dns"
)

// InboundPacket is a datagram read from the multicast group.
//
// Data is borrowed from the buffer pool until Close() is called.
type InboundPacket struct {
	Source Endpoint
	Data   []byte
}

// Message decodes the DNS message carried by the packet. The returned
// message does not reference Data, so it remains valid after Close().
func (p *InboundPacket) Message() (*dns.Msg, error) {
	m := &dns.Msg{}
	if err := m.Unpack(p.Data); err != nil {
		return nil, fmt.Errorf("malformed DNS message (%d bytes): %w", len(p.Data), err)
	}

	return m, nil
}

// Close releases the packet's buffer.
func (p *InboundPacket) Close() {
	putBuffer(p.Data)
	p.Data = nil
}

// OutboundPacket is an encoded DNS message addressed to a destination.
type OutboundPacket struct {
	Destination Endpoint
	Data        []byte
}

// Close releases the packet's buffer.
func (p *OutboundPacket) Close() {
	putBuffer(p.Data)
	p.Data = nil
}

// NewOutboundPacket encodes m into a pooled buffer addressed to dest.
func NewOutboundPacket(dest Endpoint, m *dns.Msg) (*OutboundPacket, error) {
	buf := getBuffer()

	data, err := m.PackBuffer(buf)
	if err != nil {
		putBuffer(buf)
		return nil, fmt.Errorf("unable to encode reply: %w", err)
	}

	return &OutboundPacket{
		Destination: dest,
		Data:        data,
	}, nil
}
