package responder_test

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	. "github.com/jmalloc/aliasd/src/aliasd/mdns/responder"
	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Listener", func() {
	var (
		ctx      context.Context
		cancel   context.CancelFunc
		tr       *memoryTransport
		queue    *Queue
		listener *Listener
		done     chan error
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())

		tr = newMemoryTransport()
		queue = NewQueue()
		listener = &Listener{
			Transport:    tr,
			Queue:        queue,
			Logger:       logging.SilentLogger,
			ErrorBackoff: 50 * time.Millisecond,
		}
	})

	JustBeforeEach(func() {
		// each spec's goroutine only touches its own values
		d, l, c := make(chan error, 1), listener, ctx
		done = d

		go func() {
			d <- l.Run(c)
		}()
	})

	AfterEach(func() {
		cancel()
		tr.Close()
		Eventually(done, time.Second).Should(Receive())
	})

	pop := func() *dns.Msg {
		m, ok := queue.Pop(ctx, time.Second)
		Expect(ok).To(BeTrue())
		return m
	}

	It("queues received queries", func() {
		tr.Deliver(query(dns.TypeA, "foo.local.", "bar.local."))

		m := pop()
		Expect(m.Response).To(BeFalse())
		Expect(m.Question).To(HaveLen(2))
		Expect(m.Question[0].Name).To(Equal("foo.local."))
		Expect(m.Question[1].Name).To(Equal("bar.local."))
	})

	It("queues queries in the order they are received", func() {
		tr.Deliver(query(dns.TypeA, "a.local."))
		tr.Deliver(query(dns.TypeA, "b.local."))

		Expect(pop().Question[0].Name).To(Equal("a.local."))
		Expect(pop().Question[0].Name).To(Equal("b.local."))
	})

	It("does not queue responses", func() {
		res := query(dns.TypeA, "foo.local.")
		res.Response = true
		tr.Deliver(res)
		tr.Deliver(query(dns.TypeA, "after.local."))

		Expect(pop().Question[0].Name).To(Equal("after.local."))
		Expect(queue.Len()).To(BeZero())
	})

	It("does not queue queries with a non-zero OPCODE", func() {
		q := query(dns.TypeA, "foo.local.")
		q.Opcode = dns.OpcodeStatus
		tr.Deliver(q)
		tr.Deliver(query(dns.TypeA, "after.local."))

		Expect(pop().Question[0].Name).To(Equal("after.local."))
	})

	It("queues truncated queries", func() {
		q := query(dns.TypeA, "foo.local.")
		q.Truncated = true
		tr.Deliver(q)

		Expect(pop().Question[0].Name).To(Equal("foo.local."))
	})

	It("discards malformed packets and keeps listening", func() {
		tr.inbound <- []byte{0xde, 0xad, 0xbe, 0xef}
		tr.Deliver(query(dns.TypeA, "after.local."))

		Expect(pop().Question[0].Name).To(Equal("after.local."))
		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
	})

	It("keeps listening after read timeouts", func() {
		time.Sleep(3 * tr.readTimeout)
		tr.Deliver(query(dns.TypeA, "late.local."))

		Expect(pop().Question[0].Name).To(Equal("late.local."))
	})

	It("returns the context error when canceled", func() {
		cancel()
		tr.Close()

		var err error
		Eventually(done, time.Second).Should(Receive(&err))
		Expect(err).To(Equal(context.Canceled))

		// AfterEach expects a value
		done <- err
	})

	It("returns when the transport is closed", func() {
		tr.Close()

		var err error
		Eventually(done, time.Second).Should(Receive(&err))
		Expect(err).To(Equal(net.ErrClosed))

		done <- err
	})

	Context("when the query comes from a legacy querier", func() {
		BeforeEach(func() {
			tr.source = &net.UDPAddr{IP: net.IPv4(192, 168, 1, 2), Port: 49152}
		})

		It("queues the query to be answered via multicast", func() {
			tr.Deliver(query(dns.TypeA, "foo.local."))

			Expect(pop().Question[0].Name).To(Equal("foo.local."))
		})
	})

	Context("when every read fails", func() {
		BeforeEach(func() {
			tr.readErr = errors.New("<error>")
		})

		It("waits between reads", func() {
			time.Sleep(200 * time.Millisecond)

			// at most one read per back-off interval, plus the first
			Expect(tr.Reads()).To(BeNumerically("<=", 6))
			Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
		})

		Context("and the back-off is long", func() {
			BeforeEach(func() {
				listener.ErrorBackoff = time.Minute
			})

			It("stops waiting when the context is canceled", func() {
				time.Sleep(20 * time.Millisecond)

				cancel()

				var err error
				Eventually(done, time.Second).Should(Receive(&err))
				Expect(err).To(Equal(context.Canceled))

				done <- err
			})
		})
	})
})
