// Package udp carries control frames over IPv4 UDP. Broadcasts go to a
// multicast group so every vehicle in range listening on the group hears
// them; unicasts go straight to the peer's control port.
package udp

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"sync"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/port"
	"github.com/anthanhphan/gosdk/logger"
	"golang.org/x/net/ipv4"
)

const maxFrameSize = 1500

var (
	ErrNoGroup     = errors.New("no multicast group configured")
	ErrAlreadyOpen = errors.New("transport is already open")
)

type Config struct {
	// ListenAddr is the local IPv4 address to bind, 0.0.0.0 when empty.
	ListenAddr string
	Port       int
	// PeerPort is the control port of other vehicles, Port when zero.
	PeerPort int
	// Group is the IPv4 multicast group for broadcasts. Empty disables them.
	Group     string
	Interface string
	TTL       int
	Loopback  bool
	// AdvertiseAddr overrides the address reported by LocalAddr.
	AdvertiseAddr string
}

// Transport implements port.Transport on a single UDP socket.
type Transport struct {
	cfg       Config
	group     *net.UDPAddr
	ifi       *net.Interface
	advertise netip.Addr

	mu    sync.Mutex
	conn  net.PacketConn
	pconn *ipv4.PacketConn
	local netip.Addr
	wg    sync.WaitGroup
}

var _ port.Transport = (*Transport)(nil)

// New validates cfg. No socket is created until Open.
func New(cfg Config) (*Transport, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 1
	}
	if cfg.PeerPort == 0 {
		cfg.PeerPort = cfg.Port
	}
	t := &Transport{cfg: cfg}

	if cfg.Group != "" {
		ip := net.ParseIP(cfg.Group)
		if ip == nil || ip.To4() == nil || !ip.IsMulticast() {
			return nil, fmt.Errorf("group %q is not an IPv4 multicast address", cfg.Group)
		}
		t.group = &net.UDPAddr{IP: ip.To4(), Port: cfg.PeerPort}
	}
	if cfg.Interface != "" {
		ifi, err := net.InterfaceByName(cfg.Interface)
		if err != nil {
			return nil, fmt.Errorf("lookup interface %s: %w", cfg.Interface, err)
		}
		t.ifi = ifi
	}
	if cfg.AdvertiseAddr != "" {
		addr, err := netip.ParseAddr(cfg.AdvertiseAddr)
		if err != nil || !addr.Is4() {
			return nil, fmt.Errorf("advertise address %q is not IPv4", cfg.AdvertiseAddr)
		}
		t.advertise = addr
	}
	return t, nil
}

// Open binds the socket, joins the multicast group and starts the reader.
func (t *Transport) Open(h port.InboundHandler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return ErrAlreadyOpen
	}

	host := t.cfg.ListenAddr
	if host == "" {
		host = "0.0.0.0"
	}
	conn, err := net.ListenPacket("udp4", net.JoinHostPort(host, strconv.Itoa(t.cfg.Port)))
	if err != nil {
		return fmt.Errorf("listen udp %s:%d: %w", host, t.cfg.Port, err)
	}
	pconn := ipv4.NewPacketConn(conn)

	if t.group != nil {
		if err := t.joinGroup(pconn); err != nil {
			_ = conn.Close()
			return err
		}
	}

	t.conn = conn
	t.pconn = pconn
	t.local = t.resolveLocal(conn)

	t.wg.Add(1)
	go t.readLoop(pconn, h)

	logger.Infow("UDP transport open",
		"listen", conn.LocalAddr().String(),
		"group", t.cfg.Group,
		"local", t.local.String())
	return nil
}

func (t *Transport) joinGroup(p *ipv4.PacketConn) error {
	if err := p.JoinGroup(t.ifi, &net.UDPAddr{IP: t.group.IP}); err != nil {
		return fmt.Errorf("join group %s: %w", t.group.IP, err)
	}
	if t.ifi != nil {
		if err := p.SetMulticastInterface(t.ifi); err != nil {
			return fmt.Errorf("set multicast interface: %w", err)
		}
	}
	if err := p.SetMulticastTTL(t.cfg.TTL); err != nil {
		return fmt.Errorf("set multicast ttl: %w", err)
	}
	if err := p.SetMulticastLoopback(t.cfg.Loopback); err != nil {
		return fmt.Errorf("set multicast loopback: %w", err)
	}
	return nil
}

func (t *Transport) readLoop(p *ipv4.PacketConn, h port.InboundHandler) {
	defer t.wg.Done()

	buf := make([]byte, maxFrameSize)
	for {
		n, _, src, err := p.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Debugw("UDP read failed", "error", err.Error())
			continue
		}
		ua, ok := src.(*net.UDPAddr)
		if !ok {
			continue
		}
		from, ok := netip.AddrFromSlice(ua.IP)
		if !ok {
			continue
		}
		payload := make([]byte, n)
		copy(payload, buf[:n])
		h(payload, from.Unmap())
	}
}

func (t *Transport) SendUnicast(to netip.Addr, payload []byte) error {
	p, err := t.open()
	if err != nil {
		return err
	}
	dst := &net.UDPAddr{IP: to.AsSlice(), Port: t.cfg.PeerPort}
	if _, err := p.WriteTo(payload, nil, dst); err != nil {
		return fmt.Errorf("send to %s: %w", dst, err)
	}
	return nil
}

func (t *Transport) SendBroadcast(payload []byte) error {
	if t.group == nil {
		return ErrNoGroup
	}
	p, err := t.open()
	if err != nil {
		return err
	}
	if _, err := p.WriteTo(payload, nil, t.group); err != nil {
		return fmt.Errorf("send to group %s: %w", t.group, err)
	}
	return nil
}

func (t *Transport) open() (*ipv4.PacketConn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pconn == nil {
		return nil, port.ErrTransportClosed
	}
	return t.pconn, nil
}

func (t *Transport) LocalAddr() netip.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.advertise.IsValid() {
		return t.advertise
	}
	return t.local
}

// BoundPort is the UDP port the open socket listens on, 0 when closed.
func (t *Transport) BoundPort() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return 0
	}
	if ua, ok := t.conn.LocalAddr().(*net.UDPAddr); ok {
		return ua.Port
	}
	return 0
}

// Close releases the socket and waits for the reader to exit.
func (t *Transport) Close() error {
	t.mu.Lock()
	conn := t.conn
	pconn := t.pconn
	t.conn = nil
	t.pconn = nil
	t.mu.Unlock()

	if conn == nil {
		return nil
	}
	if t.group != nil {
		_ = pconn.LeaveGroup(t.ifi, &net.UDPAddr{IP: t.group.IP})
	}
	err := conn.Close()
	t.wg.Wait()
	return err
}

// resolveLocal picks the address peers should reply to: the bound address
// when specific, else the first IPv4 address of the multicast interface or
// of any non-loopback interface.
func (t *Transport) resolveLocal(conn net.PacketConn) netip.Addr {
	if ua, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		if addr, ok := netip.AddrFromSlice(ua.IP); ok {
			addr = addr.Unmap()
			if addr.Is4() && !addr.IsUnspecified() {
				return addr
			}
		}
	}

	var addrs []net.Addr
	if t.ifi != nil {
		addrs, _ = t.ifi.Addrs()
	} else {
		addrs, _ = net.InterfaceAddrs()
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if addr, ok := netip.AddrFromSlice(ipnet.IP.To4()); ok {
			return addr
		}
	}
	return netip.IPv4Unspecified()
}
