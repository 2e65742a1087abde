package mdns

import (
	"net"

	"github.com/miekg/dns"
)

// NewResponse returns a new (empty) multicast response to a mDNS query.
//
// See https://tools.ietf.org/html/rfc6762#section-6 and
// https://tools.ietf.org/html/rfc6762#section-18.
func NewResponse(query *dns.Msg) *dns.Msg {
	m := &dns.Msg{}
	m.SetReply(query)

	// https://tools.ietf.org/html/rfc6762#section-6
	//
	// Multicast DNS responses MUST NOT contain any questions in the
	// Question Section.
	m.Question = nil

	// https://tools.ietf.org/html/rfc6762#section-18.1
	//
	// In multicast responses, including unsolicited multicast responses,
	// the Query Identifier MUST be set to zero on transmission, and MUST be
	// ignored on reception.
	m.Id = 0

	// https://tools.ietf.org/html/rfc6762#section-18.3
	m.Opcode = dns.OpcodeQuery

	// https://tools.ietf.org/html/rfc6762#section-18.4
	//
	// In response messages for Multicast domains, the Authoritative Answer
	// bit MUST be set to one.
	m.Authoritative = true

	// https://tools.ietf.org/html/rfc6762#section-18.5 onwards
	m.Truncated = false          // - 18.5: TC (TRUNCATED) Bit
	m.RecursionDesired = false   // - 18.6: RD (Recursion Desired) Bit
	m.RecursionAvailable = false // - 18.7: RA (Recursion Available) Bit
	m.Zero = false               // - 18.8: Z (Zero) Bit
	m.AuthenticatedData = false  // - 18.9: AD (Authentic Data) Bit
	m.CheckingDisabled = false   // - 18.10: CD (Checking Disabled) Bit
	m.Rcode = dns.RcodeSuccess   // - 18.11: RCODE (Response Code)

	// https://tools.ietf.org/html/rfc6762#section-18.14
	m.Compress = true

	return m
}

// NewAnnouncement returns a query for the A record of name.
//
// Announcements are answered by the responder exactly as though they had been
// received from the network, which results in the name being advertised to
// the multicast group.
func NewAnnouncement(name string) *dns.Msg {
	m := &dns.Msg{}
	m.SetQuestion(name, dns.TypeA)
	m.RecursionDesired = false

	return m
}

// NewA returns an A record that maps name to ip.
func NewA(name string, ip net.IP) *dns.A {
	return &dns.A{
		Hdr: dns.RR_Header{
			Name:   name,
			Rrtype: dns.TypeA,
			Class:  dns.ClassINET,
			Ttl:    RecordTTL,
		},
		A: ip,
	}
}

// NewCNAME returns a CNAME record that maps name to target.
func NewCNAME(name, target string) *dns.CNAME {
	return &dns.CNAME{
		Hdr: dns.RR_Header{
			Name:   name,
			Rrtype: dns.TypeCNAME,
			Class:  dns.ClassINET,
			Ttl:    RecordTTL,
		},
		Target: target,
	}
}
