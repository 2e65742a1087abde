package transport

import (
	"net"

	"github.com/dogmatiq/dodeca/logging"
)

// logJoined records a successful bind and group membership.
func logJoined(logger logging.Logger, addr, group *net.UDPAddr, iface *net.Interface) {
	on := "the wildcard interface"
	if iface != nil {
		on = "interface " + iface.Name
	}

	logging.Debug(logger, "bound %s, joined %s on %s", addr, group.IP, on)
}

// logSocketError records a socket failure. op is "bind", "read" or "send".
func logSocketError(logger logging.Logger, op string, addr *net.UDPAddr, err error) {
	logging.Log(logger, "mDNS socket %s failed (%s): %s", op, addr, err)
}
