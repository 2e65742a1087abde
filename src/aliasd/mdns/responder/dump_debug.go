//go:build debug
// +build debug

package responder

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/miekg/dns"
)

var dumpMutex sync.Mutex

func indent(s string) string {
	return "\t" + strings.Replace(s, "\n", "\n\t", -1)
}

func dumpQueryResponse(query, res *dns.Msg) {
	dumpMutex.Lock()
	defer dumpMutex.Unlock()

	fmt.Fprintln(os.Stderr, strings.Repeat("-", 80))
	fmt.Fprintln(os.Stderr, "")

	fmt.Fprintln(os.Stderr, "QUERY")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, indent(query.String()))

	fmt.Fprintln(os.Stderr, "MULTICAST RESPONSE")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, indent(res.String()))

	fmt.Fprintln(os.Stderr, "ANSWER RECORDS")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, indent(spew.Sdump(res.Answer)))
}
