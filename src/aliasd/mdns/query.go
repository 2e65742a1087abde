package mdns

import (
	"errors"

	"github.com/miekg/dns"
)

// ValidateQuery returns an error if m is not a valid mDNS query.
func ValidateQuery(m *dns.Msg) error {
	if m.Response {
		return errors.New("DNS message is a response")
	}

	// https://tools.ietf.org/html/rfc6762#section-18.3
	//
	// "In both multicast query and multicast response messages, the OPCODE MUST
	// be zero on transmission (only standard queries are currently supported
	// over multicast).  Multicast DNS messages received with an OPCODE other
	// than zero MUST be silently ignored."  Note: OpcodeQuery == 0
	if m.Opcode != dns.OpcodeQuery {
		return errors.New("OPCODE must be zero (query) in mDNS queries")
	}

	// https://tools.ietf.org/html/rfc6762#section-18.11
	//
	// "In both multicast query and multicast response messages, the Response
	// Code MUST be zero on transmission.  Multicast DNS messages received with
	// non-zero Response Codes MUST be silently ignored."
	if m.Rcode != 0 {
		return errors.New("RCODE must be zero in mDNS queries")
	}

	return nil
}

// IsAnswerable returns true if a question of type qtype may be answered with
// an A or CNAME record.
func IsAnswerable(qtype uint16) bool {
	switch qtype {
	case dns.TypeA, dns.TypeCNAME, dns.TypeANY:
		return true
	default:
		return false
	}
}

// WantsUnicastResponse returns true if the given question requested a unicast
// response.
//
// It returns a copy of the question with the "unicast response bit" cleared, to
// reflect the actual question class.
//
// See https://tools.ietf.org/html/rfc6762#section-18.12.
func WantsUnicastResponse(q dns.Question) (bool, dns.Question) {
	const unicastResponseBit = 1 << 15

	u := q.Qclass & unicastResponseBit // read top-bit
	q.Qclass &^= unicastResponseBit    // clear top-bit

	return u != 0, q
}
