package aliases_test

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dogmatiq/dodeca/logging"
	. "github.com/jmalloc/aliasd/src/aliasd/aliases"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	Describe("New", func() {
		It("preserves order and removes duplicates", func() {
			s := New("foo.local.", "bar.local.", "foo.local.")

			Expect(s.Names()).To(Equal([]string{"foo.local.", "bar.local."}))
			Expect(s.Len()).To(Equal(2))
		})
	})

	Describe("Contains", func() {
		s := New("foo.local.")

		It("returns true for an exact match", func() {
			Expect(s.Contains("foo.local.")).To(BeTrue())
		})

		It("returns false for other names", func() {
			Expect(s.Contains("bar.local.")).To(BeFalse())
			Expect(s.Contains("foo.local")).To(BeFalse())
			Expect(s.Contains("FOO.local.")).To(BeFalse())
		})
	})

	Describe("Names", func() {
		It("returns a copy", func() {
			s := New("foo.local.")
			s.Names()[0] = "<changed>"

			Expect(s.Names()).To(Equal([]string{"foo.local."}))
		})
	})
})

var _ = Describe("Read", func() {
	It("reads one alias per line", func() {
		s, err := Read(
			strings.NewReader("foo.local.\n  bar.local.  \r\n\n# comment\nbaz.local."),
			logging.SilentLogger,
		)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(s.Names()).To(Equal([]string{"foo.local.", "bar.local.", "baz.local."}))
	})

	It("keeps names that are not fully-qualified", func() {
		s, err := Read(strings.NewReader("foo.local\n"), logging.SilentLogger)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(s.Names()).To(Equal([]string{"foo.local"}))
	})
})

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "aliasd-")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("loads the aliases from the file", func() {
		path := filepath.Join(dir, "mdns-aliases")
		err := os.WriteFile(path, []byte("foo.local.\nbar.local.\n"), 0600)
		Expect(err).ShouldNot(HaveOccurred())

		s, err := Load(path, logging.SilentLogger)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(s.Names()).To(Equal([]string{"foo.local.", "bar.local."}))
	})

	It("returns an empty store if the file does not exist", func() {
		s, err := Load(filepath.Join(dir, "missing"), logging.SilentLogger)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(s.Len()).To(BeZero())
	})

	It("returns an error if the path can not be read", func() {
		_, err := Load(dir, logging.SilentLogger)
		Expect(err).To(HaveOccurred())
	})
})
