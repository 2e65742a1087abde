package server

import (
	"net"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/jmalloc/aliasd/src/aliasd/mdns/transport"
)

// Option is a function that applies an option to a server created by New().
type Option func(*Server) error

// UseLogger returns a server option that sets the logger used by the server.
func UseLogger(l logging.Logger) Option {
	return func(s *Server) error {
		s.logger = l
		return nil
	}
}

// UseTransport returns a server option that sets the transport used to
// communicate with the multicast group.
//
// If this option is not provided, the server uses an IPv4Transport.
func UseTransport(t transport.Transport) Option {
	return func(s *Server) error {
		s.transport = t
		return nil
	}
}

// UseInterface sets the network interface on which the server joins the
// multicast group.
//
// If this option is not provided, the group is joined on the wildcard
// interface.
func UseInterface(iface net.Interface) Option {
	return func(s *Server) error {
		s.iface = &iface
		return nil
	}
}

// UseReadTimeout sets the maximum time that the server waits for a packet or
// a query before checking whether it should stop.
func UseReadTimeout(d time.Duration) Option {
	return func(s *Server) error {
		s.timeout = d
		return nil
	}
}

// Announce returns a server option that announces the given names once, when
// the server starts.
func Announce(names ...string) Option {
	return func(s *Server) error {
		s.announce = append(s.announce, names...)
		return nil
	}
}
