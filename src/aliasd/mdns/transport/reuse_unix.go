//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd
// +build darwin dragonfly freebsd linux netbsd openbsd

package transport

import (
	"syscall"

	"github.com/dogmatiq/dodeca/logging"
	"golang.org/x/sys/unix"
)

// reuseControl returns a net.ListenConfig control function that allows
// several sockets, possibly in different processes, to bind the mDNS port.
//
// SO_REUSEADDR is required. SO_REUSEPORT is set when the kernel accepts it.
func reuseControl(logger logging.Logger) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) error {
		var err error

		if cerr := c.Control(func(fd uintptr) {
			err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			if err != nil {
				return
			}

			if e := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); e != nil {
				logging.Debug(logger, "unable to set SO_REUSEPORT on %s: %s", address, e)
			}
		}); cerr != nil {
			return cerr
		}

		return err
	}
}
