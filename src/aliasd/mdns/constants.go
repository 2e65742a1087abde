package mdns

import "net"

// Port is the mDNS port number.
const Port = 5353

// LocalDomain is the domain in which mDNS names are published.
const LocalDomain = "local."

// RecordTTL is the time-to-live, in seconds, of every record in a reply.
const RecordTTL = 60

var (
	// IPv4Group is the multicast group used for mDNS over IPv4.
	//
	// See https://tools.ietf.org/html/rfc6762#section-3.
	IPv4Group = net.ParseIP("224.0.0.251")

	// IPv4Address is the address to which mDNS messages are sent when using
	// IPv4.
	//
	// See https://tools.ietf.org/html/rfc6762#section-3.
	IPv4Address = &net.UDPAddr{IP: IPv4Group, Port: Port}
)
