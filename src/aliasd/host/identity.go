package host

import (
	"net"
	"os"
	"strings"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/jmalloc/aliasd/src/aliasd/mdns"
)

// probeAddress is the address "dialed" to discover the local IP address.
// Dialing UDP does not send any packets, it only selects a route.
const probeAddress = "8.8.8.8:80"

// Identity is the local host's address and name, as advertised in answers.
type Identity struct {
	// IP is the local IPv4 address.
	IP net.IP

	// Hostname is the fully-qualified mDNS host name, or empty if unknown.
	Hostname string
}

// HasIP returns true if the identity has an IPv4 address.
func (id Identity) HasIP() bool {
	return id.IP.To4() != nil
}

// HasHostname returns true if the identity has a host name.
func (id Identity) HasHostname() bool {
	return id.Hostname != ""
}

// Resolve discovers the identity of the local host.
func Resolve(logger logging.Logger) Identity {
	return Identity{
		IP:       LocalIP(logger),
		Hostname: Hostname(logger),
	}
}

// LocalIP returns the IP address of the interface that is used to reach the
// internet. It falls back to the loopback address if there is no route.
func LocalIP(logger logging.Logger) net.IP {
	ip, err := localIP(probeAddress)
	if err != nil {
		logging.Log(logger, "unable to determine the local IP address, using the loopback address: %s", err)
		return net.IPv4(127, 0, 0, 1).To4()
	}

	return ip
}

func localIP(addr string) (net.IP, error) {
	con, err := net.Dial("udp4", addr)
	if err != nil {
		return nil, err
	}
	defer con.Close()

	return con.LocalAddr().(*net.UDPAddr).IP.To4(), nil
}

// Hostname returns the local host name within the mDNS domain, for example
// "myhost.local.". It returns an empty string if the host name is unknown.
func Hostname(logger logging.Logger) string {
	h, err := os.Hostname()
	if err != nil {
		logging.Log(logger, "unable to determine the local host name: %s", err)
		return ""
	}

	return Qualify(h)
}

// Qualify returns the fully-qualified mDNS name for the host name h.
func Qualify(h string) string {
	h = strings.TrimSuffix(h, ".")
	if h == "" {
		return ""
	}

	h = strings.TrimSuffix(h, "."+strings.TrimSuffix(mdns.LocalDomain, "."))

	return h + "." + mdns.LocalDomain
}
