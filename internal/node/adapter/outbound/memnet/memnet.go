// Package memnet is an in-process radio network whose deliveries are driven
// by a sched.Scheduler, so protocol runs are deterministic under sched.Manual.
package memnet

import (
	"net/netip"
	"sync"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/port"
	"github.com/anthanhphan/go-vanet-cluster/pkg/sched"
)

// LossFunc reports whether a frame from one address to another is lost.
type LossFunc func(from, to netip.Addr) bool

// Network connects endpoints with a fixed one-way latency.
type Network struct {
	sched   sched.Scheduler
	latency time.Duration

	mu        sync.Mutex
	endpoints map[netip.Addr]*Endpoint
	order     []netip.Addr
	blocked   map[[2]netip.Addr]struct{}
	loss      LossFunc
	nextHost  uint32
	delivered uint64
	lost      uint64
}

func NewNetwork(s sched.Scheduler, latency time.Duration) *Network {
	return &Network{
		sched:     s,
		latency:   latency,
		endpoints: make(map[netip.Addr]*Endpoint),
		blocked:   make(map[[2]netip.Addr]struct{}),
	}
}

// SetLoss installs fn as the loss model. Nil disables loss.
func (n *Network) SetLoss(fn LossFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loss = fn
}

// Partition blocks frames between a and b in both directions.
func (n *Network) Partition(a, b netip.Addr) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.blocked[pairKey(a, b)] = struct{}{}
}

// Heal removes every partition.
func (n *Network) Heal() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.blocked = make(map[[2]netip.Addr]struct{})
}

// Stats returns the number of frames delivered and lost so far.
func (n *Network) Stats() (delivered, lost uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.delivered, n.lost
}

// Endpoint returns the endpoint bound to addr, creating it on first use.
func (n *Network) Endpoint(addr netip.Addr) *Endpoint {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ep, ok := n.endpoints[addr]; ok {
		return ep
	}
	ep := &Endpoint{net: n, addr: addr}
	n.endpoints[addr] = ep
	n.order = append(n.order, addr)
	return ep
}

// NewEndpoint binds a fresh address in 10.0.0.0/8.
func (n *Network) NewEndpoint() *Endpoint {
	n.mu.Lock()
	n.nextHost++
	host := n.nextHost
	n.mu.Unlock()

	return n.Endpoint(netip.AddrFrom4([4]byte{10, byte(host >> 16), byte(host >> 8), byte(host)}))
}

func pairKey(a, b netip.Addr) [2]netip.Addr {
	if b.Less(a) {
		a, b = b, a
	}
	return [2]netip.Addr{a, b}
}

func (n *Network) send(from, to netip.Addr, payload []byte) {
	n.mu.Lock()
	_, blocked := n.blocked[pairKey(from, to)]
	if blocked || (n.loss != nil && n.loss(from, to)) {
		n.lost++
		n.mu.Unlock()
		return
	}
	n.mu.Unlock()

	frame := append([]byte(nil), payload...)
	n.sched.AfterFunc(n.latency, func() {
		n.mu.Lock()
		ep, ok := n.endpoints[to]
		n.mu.Unlock()
		if !ok {
			return
		}
		if ep.deliver(frame, from) {
			n.mu.Lock()
			n.delivered++
			n.mu.Unlock()
		}
	})
}

func (n *Network) peers(self netip.Addr) []netip.Addr {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]netip.Addr, 0, len(n.order))
	for _, addr := range n.order {
		if addr != self {
			out = append(out, addr)
		}
	}
	return out
}

// Endpoint is one vehicle's radio on a Network.
type Endpoint struct {
	net  *Network
	addr netip.Addr

	mu      sync.Mutex
	handler port.InboundHandler
}

var _ port.Transport = (*Endpoint)(nil)

func (e *Endpoint) Open(h port.InboundHandler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = h
	return nil
}

func (e *Endpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = nil
	return nil
}

func (e *Endpoint) LocalAddr() netip.Addr {
	return e.addr
}

func (e *Endpoint) SendUnicast(to netip.Addr, payload []byte) error {
	if !e.isOpen() {
		return port.ErrTransportClosed
	}
	e.net.send(e.addr, to, payload)
	return nil
}

func (e *Endpoint) SendBroadcast(payload []byte) error {
	if !e.isOpen() {
		return port.ErrTransportClosed
	}
	for _, to := range e.net.peers(e.addr) {
		e.net.send(e.addr, to, payload)
	}
	return nil
}

// Inject delivers payload as if it came from from, after the network
// latency. It ignores partitions and loss.
func (e *Endpoint) Inject(payload []byte, from netip.Addr) {
	frame := append([]byte(nil), payload...)
	e.net.sched.AfterFunc(e.net.latency, func() { e.deliver(frame, from) })
}

func (e *Endpoint) isOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.handler != nil
}

func (e *Endpoint) deliver(frame []byte, from netip.Addr) bool {
	e.mu.Lock()
	h := e.handler
	e.mu.Unlock()
	if h == nil {
		return false
	}
	h(frame, from)
	return true
}
