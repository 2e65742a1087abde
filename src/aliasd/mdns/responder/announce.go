package responder

import (
	"github.com/jmalloc/aliasd/src/aliasd/mdns"
)

// Announce pushes a query for each of the given names onto q.
//
// The responder answers these queries like any other, which advertises the
// names to the network without waiting for a peer to ask.
func Announce(q *Queue, names []string) {
	for _, n := range names {
		q.Push(mdns.NewAnnouncement(n))
	}
}
