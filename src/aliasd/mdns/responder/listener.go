package responder

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/jmalloc/aliasd/src/aliasd/mdns"
	"github.com/jmalloc/aliasd/src/aliasd/mdns/transport"
)

// DefaultErrorBackoff is the default delay after a failed read.
const DefaultErrorBackoff = 250 * time.Millisecond

// Listener reads DNS queries from a transport and pushes them onto a queue.
type Listener struct {
	Transport transport.Transport
	Queue     *Queue
	Logger    logging.Logger

	// ErrorBackoff is the time to wait after a read fails before reading
	// again. If it is zero, DefaultErrorBackoff is used.
	ErrorBackoff time.Duration
}

// Run receives packets until ctx is canceled or the transport is closed.
func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.receive(ctx); err != nil {
			return err
		}
	}
}

// receive handles a single packet. It only returns an error if no further
// packets can be received.
func (l *Listener) receive(ctx context.Context) error {
	defer func() {
		if v := recover(); v != nil {
			logging.Log(l.Logger, "unexpected failure in mDNS listener: %v", v)
		}
	}()

	in, err := l.Transport.Read()
	if err != nil {
		switch {
		case errors.Is(err, transport.ErrTimeout):
			logging.DebugString(l.Logger, "no mDNS packet received, still listening")
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, net.ErrClosed):
			return err
		default:
			// The transport has already logged the failure. A socket that fails
			// every read must not spin the loop.
			if err := sleep(ctx, l.errorBackoff()); err != nil {
				return err
			}
			return nil
		}
	}
	defer in.Close()

	m, err := in.Message()
	if err != nil {
		logging.Log(l.Logger, "unable to decode mDNS packet from %s: %s", in.Source.Address, err)
		return nil
	}

	// Responses from other hosts, and our own replies looped back to us, are
	// never answered.
	if m.Response {
		return nil
	}

	if err := mdns.ValidateQuery(m); err != nil {
		logging.Debug(l.Logger, "ignoring mDNS query from %s: %s", in.Source.Address, err)
		return nil
	}

	// https://tools.ietf.org/html/rfc6762#section-6.7
	//
	// Legacy queriers expect a unicast reply, which is not supported. They
	// still receive the multicast reply if they are members of the group.
	if in.Source.IsLegacy() {
		logging.Debug(l.Logger, "legacy mDNS query from %s will be answered via multicast", in.Source.Address)
	}

	// https://tools.ietf.org/html/rfc6762#section-18.5
	//
	// A query with the TC bit set is followed by more known-answer records.
	// Known-answer suppression is not supported, so it is answered immediately.
	if m.Truncated {
		logging.DebugString(l.Logger, "received mDNS query with non-zero TC flag")
	}

	l.Queue.Push(m)

	return nil
}

func (l *Listener) errorBackoff() time.Duration {
	if l.ErrorBackoff > 0 {
		return l.ErrorBackoff
	}

	return DefaultErrorBackoff
}
