package responder

import (
	"context"
	"fmt"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/jmalloc/aliasd/src/aliasd/mdns"
	"github.com/jmalloc/aliasd/src/aliasd/mdns/transport"
	"github.com/miekg/dns"
)

// DefaultTimeout is the default time the responder waits for a query before
// checking whether it should stop.
const DefaultTimeout = 5 * time.Second

// Responder answers the queries on a queue and multicasts the replies.
type Responder struct {
	Answerer  Answerer
	Transport transport.Transport
	Queue     *Queue
	Logger    logging.Logger

	// Timeout is the maximum time to wait for a query. If it is zero,
	// DefaultTimeout is used.
	Timeout time.Duration
}

// Run answers queries until ctx is canceled.
func (r *Responder) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		query, ok := r.Queue.Pop(ctx, r.timeout())
		if !ok {
			continue
		}

		if err := r.respond(ctx, query); err != nil {
			logging.Log(r.Logger, "error handling mDNS query: %s", err)
		}
	}
}

// respond answers a single query.
func (r *Responder) respond(ctx context.Context, query *dns.Msg) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("unexpected failure: %v", v)
		}
	}()

	res, err := r.Reply(ctx, query)
	if err != nil {
		return err
	}

	sent, err := transport.SendMulticast(r.Transport, res)
	if err != nil {
		return err
	}

	if sent {
		// this is a no-op unless compiled with the 'debug' build tag
		dumpQueryResponse(query, res)
	}

	return nil
}

// Reply builds the reply to query.
//
// The answers are in the same order as the questions. Questions that are not
// answered do not contribute to the reply.
func (r *Responder) Reply(ctx context.Context, query *dns.Msg) (*dns.Msg, error) {
	res := mdns.NewResponse(query)

	for _, rawQ := range query.Question {
		unicast, dnsQ := mdns.WantsUnicastResponse(rawQ)
		if unicast {
			// unicast replies are not supported, answer via multicast instead
			logging.Debug(r.Logger, "unicast response requested for '%s'", dnsQ.Name)
		}

		logging.Debug(r.Logger, "query for: %s", dnsQ.Name)

		var (
			q = Question{
				Question: dnsQ,
				Query:    query,
			}
			a = Answer{}
		)

		if err := r.Answerer.Answer(ctx, &q, &a); err != nil {
			return nil, err
		}

		a.appendToMessage(res)
	}

	return res, nil
}

func (r *Responder) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}

	return DefaultTimeout
}
