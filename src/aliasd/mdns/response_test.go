package mdns_test

import (
	"net"

	. "github.com/jmalloc/aliasd/src/aliasd/mdns"
	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewResponse", func() {
	var query *dns.Msg

	BeforeEach(func() {
		query = &dns.Msg{}
		query.SetQuestion("foo.local.", dns.TypeA)
		query.Id = 1234
		query.RecursionDesired = true
	})

	It("returns an authoritative multicast reply", func() {
		m := NewResponse(query)

		Expect(m.Response).To(BeTrue())
		Expect(m.Authoritative).To(BeTrue())
		Expect(m.Id).To(BeZero())
		Expect(m.Opcode).To(Equal(dns.OpcodeQuery))
		Expect(m.Rcode).To(Equal(dns.RcodeSuccess))
		Expect(m.RecursionDesired).To(BeFalse())
	})

	It("does not include the question section", func() {
		m := NewResponse(query)
		Expect(m.Question).To(BeEmpty())
	})

	It("survives an encode/decode round-trip", func() {
		m := NewResponse(query)
		m.Answer = append(
			m.Answer,
			NewCNAME("foo.local.", "host.local."),
			NewA("bar.local.", net.ParseIP("192.168.1.10").To4()),
		)

		data, err := m.Pack()
		Expect(err).ShouldNot(HaveOccurred())

		var out dns.Msg
		err = out.Unpack(data)
		Expect(err).ShouldNot(HaveOccurred())

		Expect(out.MsgHdr).To(Equal(m.MsgHdr))
		Expect(out.Answer).To(HaveLen(2))

		c := out.Answer[0].(*dns.CNAME)
		Expect(c.Hdr.Name).To(Equal("foo.local."))
		Expect(c.Hdr.Rrtype).To(Equal(dns.TypeCNAME))
		Expect(c.Hdr.Ttl).To(BeEquivalentTo(RecordTTL))
		Expect(c.Target).To(Equal("host.local."))

		a := out.Answer[1].(*dns.A)
		Expect(a.Hdr.Name).To(Equal("bar.local."))
		Expect(a.Hdr.Rrtype).To(Equal(dns.TypeA))
		Expect(a.A.Equal(net.ParseIP("192.168.1.10"))).To(BeTrue())
	})
})

var _ = Describe("NewAnnouncement", func() {
	It("returns a query with a single A question for the name", func() {
		m := NewAnnouncement("foo.local.")

		Expect(m.Response).To(BeFalse())
		Expect(m.Question).To(Equal([]dns.Question{
			{Name: "foo.local.", Qtype: dns.TypeA, Qclass: dns.ClassINET},
		}))
	})

	It("passes query validation", func() {
		Expect(ValidateQuery(NewAnnouncement("foo.local."))).To(Succeed())
	})
})
