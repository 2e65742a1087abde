package responder

import (
	"context"

	"github.com/jmalloc/aliasd/src/aliasd/aliases"
	"github.com/jmalloc/aliasd/src/aliasd/host"
	"github.com/jmalloc/aliasd/src/aliasd/mdns"
	"github.com/miekg/dns"
)

// Answerer is an interface that provides answers to DNS questions.
type Answerer interface {
	// Answer populates an answer to a single DNS question.
	// Questions that the answerer does not own are left unanswered.
	Answer(context.Context, *Question, *Answer) error
}

// Question encapsulates a DNS question.
type Question struct {
	dns.Question

	Query *dns.Msg
}

// Answer is an answer to a DNS question.
type Answer struct {
	AnswerSection []dns.RR
}

// IsEmpty returns true if the answer does not contain any records.
func (a *Answer) IsEmpty() bool {
	return len(a.AnswerSection) == 0
}

// Answer appends records to the "answer" section of the answer.
func (a *Answer) Answer(records ...dns.RR) {
	a.AnswerSection = append(a.AnswerSection, records...)
}

// appendToMessage appends the answer's records to m.
func (a *Answer) appendToMessage(m *dns.Msg) {
	m.Answer = append(m.Answer, a.AnswerSection...)
}

// AliasAnswerer is an Answerer that answers questions about a set of aliases
// with the identity of the local host.
//
// An alias is answered with a CNAME record that points to the local host name
// if it is known, otherwise with an A record that contains the local IP
// address. The record type does not depend on the question type, so an A
// question may receive a CNAME answer.
type AliasAnswerer struct {
	Aliases *aliases.Store
	Host    host.Identity

	// PreferAddress, if true, answers with an A record whenever the local IP
	// address is known.
	PreferAddress bool
}

// Answer populates an answer to a single DNS question.
func (an *AliasAnswerer) Answer(_ context.Context, q *Question, a *Answer) error {
	if !mdns.IsAnswerable(q.Qtype) {
		return nil
	}

	if !an.Aliases.Contains(q.Name) {
		return nil
	}

	if rr := an.record(q.Name); rr != nil {
		a.Answer(rr)
	}

	return nil
}

// record returns the record that maps name to the local host.
func (an *AliasAnswerer) record(name string) dns.RR {
	useAddress := an.PreferAddress && an.Host.HasIP()

	if an.Host.HasHostname() && !useAddress {
		return mdns.NewCNAME(name, an.Host.Hostname)
	}

	if an.Host.HasIP() {
		return mdns.NewA(name, an.Host.IP.To4())
	}

	return nil
}
