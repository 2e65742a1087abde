package config

import (
	"net"
	"time"

	"github.com/dogmatiq/dodeca/config"
	"github.com/dogmatiq/dodeca/logging"
	"github.com/jmalloc/aliasd/src/aliasd/mdns/transport"
)

// DefaultAliasFile is the alias file used when ALIASD_ALIAS_FILE is not set.
const DefaultAliasFile = "mdns-aliases"

// Config is the configuration of the aliasd process.
type Config struct {
	// AliasFile is the path to the file that lists the aliases to publish.
	AliasFile string

	// ReadTimeout bounds each blocking wait in the listener and responder.
	ReadTimeout time.Duration

	// PreferAddress answers with A records even when the host name is known.
	PreferAddress bool

	// Interface is the name of the network interface on which to join the
	// multicast group. If it is empty the wildcard interface is used.
	Interface string

	// Debug enables debug logging.
	Debug bool
}

// FromEnvironment loads the configuration from environment variables.
func FromEnvironment() Config {
	return Load(config.Environment())
}

// Load loads the configuration from b.
func Load(b config.Bucket) Config {
	return Config{
		AliasFile:     config.AsStringDefault(b, "ALIASD_ALIAS_FILE", DefaultAliasFile),
		ReadTimeout:   config.AsDurationDefault(b, "ALIASD_READ_TIMEOUT", transport.DefaultReadTimeout),
		PreferAddress: config.AsBoolDefault(b, "ALIASD_PREFER_ADDRESS", false),
		Interface:     config.AsStringDefault(b, "ALIASD_INTERFACE", ""),
		Debug:         config.AsBoolDefault(b, "ALIASD_DEBUG", false),
	}
}

// Logger returns the logger to use.
func (c Config) Logger() logging.Logger {
	if c.Debug {
		return logging.DebugLogger
	}

	return logging.DefaultLogger
}

// NetInterface returns the network interface named by c.Interface, or nil if
// no interface is configured.
func (c Config) NetInterface() (*net.Interface, error) {
	if c.Interface == "" {
		return nil, nil
	}

	return net.InterfaceByName(c.Interface)
}
