package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/jmalloc/aliasd/src/aliasd/mdns/responder"
	"github.com/jmalloc/aliasd/src/aliasd/mdns/transport"
	"golang.org/x/sync/errgroup"
)

// Server is a multicast DNS (mDNS) responder that owns a single multicast
// transport.
//
// See https://tools.ietf.org/html/rfc6762.
type Server struct {
	answerer  responder.Answerer
	transport transport.Transport
	iface     *net.Interface
	timeout   time.Duration
	announce  []string
	logger    logging.Logger
}

// New returns a new mDNS server.
func New(
	answerer responder.Answerer,
	options ...Option,
) (*Server, error) {
	s := &Server{
		answerer: answerer,
	}

	for _, opt := range options {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.logger == nil {
		s.logger = logging.DefaultLogger
	}

	if s.timeout <= 0 {
		s.timeout = transport.DefaultReadTimeout
	}

	if s.transport == nil {
		s.transport = &transport.IPv4Transport{
			Interface:   s.iface,
			ReadTimeout: s.timeout,
			Logger:      s.logger,
		}
	}

	return s, nil
}

// Run responds to mDNS queries until ctx is canceled or an error occurs.
//
// It returns an error if the transport can not be opened. It returns nil once
// ctx is done, whether canceled or past its deadline, and both the listener and
// the responder have stopped.
func (s *Server) Run(ctx context.Context) error {
	parent := ctx

	if err := s.transport.Listen(); err != nil {
		return err
	}
	defer s.transport.Close()

	g, ctx := errgroup.WithContext(ctx)

	go func() {
		<-ctx.Done()
		_ = s.transport.Close() // break out of t.Read() when the context is canceled
	}()

	queue := responder.NewQueue()
	responder.Announce(queue, s.announce)

	g.Go(func() error {
		l := &responder.Listener{
			Transport: s.transport,
			Queue:     queue,
			Logger:    s.logger,
		}
		return l.Run(ctx)
	})

	g.Go(func() error {
		r := &responder.Responder{
			Answerer:  s.answerer,
			Transport: s.transport,
			Queue:     queue,
			Logger:    s.logger,
			Timeout:   s.timeout,
		}
		return r.Run(ctx)
	})

	err := g.Wait()

	if err != nil && parent.Err() != nil && errors.Is(err, parent.Err()) {
		logging.DebugString(s.logger, "mDNS server stopped")
		return nil
	}

	return err
}
