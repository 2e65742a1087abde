//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd
// +build !darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd

package transport

import (
	"syscall"

	"github.com/dogmatiq/dodeca/logging"
)

// reuseControl returns nil on platforms without SO_REUSEPORT, leaving the
// socket options at their defaults.
func reuseControl(logger logging.Logger) func(network, address string, c syscall.RawConn) error {
	logging.DebugString(logger, "address reuse is not supported on this platform")
	return nil
}
