package aliases

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/miekg/dns"
)

// Store is an ordered, read-only set of host names owned by this host.
type Store struct {
	names []string
	index map[string]struct{}
}

// New returns a store containing the given names.
//
// Duplicate names are ignored, the first occurrence determines the order.
func New(names ...string) *Store {
	s := &Store{
		index: make(map[string]struct{}, len(names)),
	}

	for _, n := range names {
		if _, ok := s.index[n]; ok {
			continue
		}

		s.index[n] = struct{}{}
		s.names = append(s.names, n)
	}

	return s
}

// Load reads the alias file at path.
//
// A missing file is not an error, it results in an empty store.
func Load(path string, logger logging.Logger) (*Store, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Log(logger, "alias file '%s' not found, no aliases will be published", path)
		return New(), nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, logger)
}

// Read parses aliases from r, one per line.
//
// Surrounding whitespace is removed. Blank lines and lines beginning with '#'
// are skipped.
func Read(r io.Reader, logger logging.Logger) (*Store, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		n := strings.TrimSpace(scanner.Text())

		if n == "" || strings.HasPrefix(n, "#") {
			continue
		}

		if !dns.IsFqdn(n) {
			logging.Log(
				logger,
				"alias '%s' is not fully-qualified and will never match a query, did you mean '%s'?",
				n,
				dns.Fqdn(n),
			)
		}

		names = append(names, n)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return New(names...), nil
}

// Contains returns true if name is one of the aliases.
//
// Names are compared exactly, without case folding.
func (s *Store) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the aliases in the order they were loaded.
func (s *Store) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of aliases.
func (s *Store) Len() int {
	return len(s.names)
}
