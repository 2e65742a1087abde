package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/jmalloc/aliasd/src/aliasd/mdns"
	ipvx "golang.org/x/net/ipv4"
)

// DefaultReadTimeout is the default upper bound on a single call to Read().
const DefaultReadTimeout = 5 * time.Second

// IPv4ListenAddress is the address to which the mDNS transport binds. The
// wildcard address is used so that multicast traffic arriving on any local
// interface is received.
var IPv4ListenAddress = &net.UDPAddr{IP: net.IPv4zero, Port: mdns.Port}

// IPv4Transport is an IPv4-based UDP multicast transport.
type IPv4Transport struct {
	// Interface is the interface on which to join the multicast group. If it
	// is nil the group is joined on the wildcard interface.
	Interface *net.Interface

	// ListenAddress overrides IPv4ListenAddress.
	ListenAddress *net.UDPAddr

	// GroupAddress overrides mdns.IPv4Address.
	GroupAddress *net.UDPAddr

	// ReadTimeout is the maximum time that Read() blocks. If it is zero,
	// DefaultReadTimeout is used.
	ReadTimeout time.Duration

	Logger logging.Logger

	pc        *ipvx.PacketConn
	closeOnce sync.Once
	closeErr  error
}

// Listen binds the socket and joins the multicast group.
func (t *IPv4Transport) Listen() error {
	addr := t.listenAddress()

	lc := net.ListenConfig{
		Control: reuseControl(t.Logger),
	}

	conn, err := lc.ListenPacket(context.Background(), "udp4", addr.String())
	if err != nil {
		logSocketError(t.Logger, "bind", addr, err)
		return err
	}

	t.pc = ipvx.NewPacketConn(conn)

	if err := t.configure(); err != nil {
		t.pc.Close()
		logSocketError(t.Logger, "bind", addr, err)
		return err
	}

	logJoined(t.Logger, addr, t.Group(), t.Interface)

	return nil
}

// configure applies the multicast socket options and joins the group.
func (t *IPv4Transport) configure() error {
	// Multicast DNS is link-local.
	if err := t.pc.SetMulticastTTL(1); err != nil {
		return fmt.Errorf("unable to set multicast TTL: %w", err)
	}

	if err := t.pc.SetMulticastLoopback(true); err != nil {
		return fmt.Errorf("unable to enable multicast loopback: %w", err)
	}

	if err := t.pc.SetControlMessage(ipvx.FlagInterface, true); err != nil {
		logging.Debug(t.Logger, "interface control messages are unavailable: %s", err)
	}

	if t.Interface != nil {
		if err := t.pc.SetMulticastInterface(t.Interface); err != nil {
			return fmt.Errorf("unable to use the '%s' interface: %w", t.Interface.Name, err)
		}
	}

	group := &net.UDPAddr{IP: t.Group().IP}
	if err := t.pc.JoinGroup(t.Interface, group); err != nil {
		return fmt.Errorf("unable to join the '%s' multicast group: %w", group.IP, err)
	}

	return nil
}

// Read reads the next packet from the transport.
//
// It returns ErrTimeout if no packet arrives within the read timeout.
func (t *IPv4Transport) Read() (*InboundPacket, error) {
	if t.pc == nil {
		return nil, errors.New("transport is not listening")
	}

	if err := t.pc.SetReadDeadline(time.Now().Add(t.readTimeout())); err != nil {
		if !errors.Is(err, net.ErrClosed) {
			logSocketError(t.Logger, "read", t.Group(), err)
		}
		return nil, err
	}

	buf := getBuffer()

	n, cm, src, err := t.pc.ReadFrom(buf)
	if err != nil {
		putBuffer(buf)

		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, ErrTimeout
		}

		if !errors.Is(err, net.ErrClosed) {
			logSocketError(t.Logger, "read", t.Group(), err)
		}

		return nil, err
	}

	ep := Endpoint{}
	ep.Address, _ = src.(*net.UDPAddr)
	if cm != nil {
		ep.InterfaceIndex = cm.IfIndex
	}

	return &InboundPacket{
		Source: ep,
		Data:   buf[:n],
	}, nil
}

// Write sends a packet via the transport.
func (t *IPv4Transport) Write(p *OutboundPacket) error {
	if t.pc == nil {
		return errors.New("transport is not listening")
	}

	var cm *ipvx.ControlMessage
	if p.Destination.InterfaceIndex != 0 {
		cm = &ipvx.ControlMessage{
			IfIndex: p.Destination.InterfaceIndex,
		}
	}

	if _, err := t.pc.WriteTo(
		p.Data,
		cm,
		p.Destination.Address,
	); err != nil {
		logSocketError(t.Logger, "send", p.Destination.Address, err)
		return err
	}

	return nil
}

// Group returns the multicast group address for this transport.
func (t *IPv4Transport) Group() *net.UDPAddr {
	if t.GroupAddress != nil {
		return t.GroupAddress
	}

	return mdns.IPv4Address
}

// Close closes the transport, preventing further reads and writes.
//
// Only the first call closes the socket, later calls return the same result.
func (t *IPv4Transport) Close() error {
	t.closeOnce.Do(func() {
		if t.pc != nil {
			t.closeErr = t.pc.Close()
		}
	})

	return t.closeErr
}

func (t *IPv4Transport) listenAddress() *net.UDPAddr {
	if t.ListenAddress != nil {
		return t.ListenAddress
	}

	return IPv4ListenAddress
}

func (t *IPv4Transport) readTimeout() time.Duration {
	if t.ReadTimeout > 0 {
		return t.ReadTimeout
	}

	return DefaultReadTimeout
}
