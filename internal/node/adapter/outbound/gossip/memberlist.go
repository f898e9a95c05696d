package gossip

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"sync"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/port"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/hashicorp/memberlist"
)

var (
	ErrUnknownPeer   = errors.New("no gossip member with that address")
	ErrAmbiguousPeer = errors.New("several gossip members share that address")
)

// GossipAdapter carries control frames over a memberlist cluster and keeps
// the advertisements peers publish in their node metadata.
type GossipAdapter struct {
	list *memberlist.Memberlist
	conf *memberlist.Config

	mu      sync.RWMutex
	handler port.InboundHandler
	self    domain.Advertisement
	peers   map[string]domain.Advertisement
}

var (
	_ memberlist.Delegate      = (*GossipAdapter)(nil)
	_ memberlist.EventDelegate = (*GossipAdapter)(nil)
	_ port.Transport           = (*GossipAdapter)(nil)
	_ port.CandidateDirectory  = (*GossipAdapter)(nil)
	_ port.Advertiser          = (*GossipAdapter)(nil)
)

// NewGossipAdapter creates the memberlist node. It does not join anyone
// until Join is called.
func NewGossipAdapter(name string, bindAddr string, bindPort int, self domain.Advertisement) (*GossipAdapter, error) {
	config := memberlist.DefaultLANConfig()
	config.Name = name
	config.BindAddr = bindAddr
	config.BindPort = bindPort
	config.AdvertisePort = bindPort
	config.LogOutput = io.Discard

	adapter := &GossipAdapter{
		conf:  config,
		self:  self,
		peers: make(map[string]domain.Advertisement),
	}

	config.Events = adapter
	config.Delegate = adapter

	list, err := memberlist.Create(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create memberlist: %w", err)
	}
	adapter.list = list
	return adapter, nil
}

// Join joins the cluster using seed nodes.
func (g *GossipAdapter) Join(seeds []string) error {
	if len(seeds) > 0 {
		if _, err := g.list.Join(seeds); err != nil {
			return fmt.Errorf("failed to join cluster: %w", err)
		}
	}
	return nil
}

// Leave leaves the cluster and shuts the memberlist down.
func (g *GossipAdapter) Leave() error {
	if err := g.list.Leave(5 * time.Second); err != nil {
		return err
	}
	return g.list.Shutdown()
}

// Open starts handing gossip user messages to h.
func (g *GossipAdapter) Open(h port.InboundHandler) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handler = h
	return nil
}

// Close stops delivery. Membership itself keeps running until Leave.
func (g *GossipAdapter) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handler = nil
	return nil
}

func (g *GossipAdapter) isOpen() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.handler != nil
}

// SendBroadcast sends payload to every live member except this node.
func (g *GossipAdapter) SendBroadcast(payload []byte) error {
	if !g.isOpen() {
		return port.ErrTransportClosed
	}
	var errs []error
	for _, m := range g.list.Members() {
		if m.Name == g.conf.Name {
			continue
		}
		if err := g.list.SendBestEffort(m, payload); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", m.Name, err))
		}
	}
	return errors.Join(errs...)
}

// SendUnicast sends payload to the member advertising address to. Frames
// are addressed by IP only, so members sharing an IP cannot be told apart
// and the send fails with ErrAmbiguousPeer.
func (g *GossipAdapter) SendUnicast(to netip.Addr, payload []byte) error {
	if !g.isOpen() {
		return port.ErrTransportClosed
	}
	var target *memberlist.Node
	for _, m := range g.list.Members() {
		if m.Name == g.conf.Name {
			continue
		}
		addr, ok := netip.AddrFromSlice(m.Addr)
		if !ok || addr.Unmap() != to {
			continue
		}
		if target != nil {
			return fmt.Errorf("%w: %s (%s, %s)", ErrAmbiguousPeer, to, target.Name, m.Name)
		}
		target = m
	}
	if target == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPeer, to)
	}
	return g.list.SendBestEffort(target, payload)
}

func (g *GossipAdapter) LocalAddr() netip.Addr {
	node := g.list.LocalNode()
	if node == nil {
		return netip.Addr{}
	}
	addr, _ := netip.AddrFromSlice(node.Addr)
	return addr.Unmap()
}

// NodeMeta returns the local advertisement.
func (g *GossipAdapter) NodeMeta(limit int) []byte {
	g.mu.RLock()
	self := g.self
	g.mu.RUnlock()

	data, err := json.Marshal(self)
	if err != nil {
		logger.Warnw("failed to marshal gossip node meta", "error", err.Error())
		return nil
	}
	if len(data) > limit {
		logger.Warnw("gossip node meta exceeds limit", "size", len(data), "limit", limit)
		return nil
	}
	return data
}

// NotifyMsg delivers a control frame. Memberlist does not report the
// sender, so frames arrive with an invalid address and receivers rely on the
// address carried in the frame.
func (g *GossipAdapter) NotifyMsg(buf []byte) {
	g.mu.RLock()
	h := g.handler
	g.mu.RUnlock()
	if h == nil || len(buf) == 0 {
		return
	}
	payload := make([]byte, len(buf))
	copy(payload, buf)
	h(payload, netip.Addr{})
}

func (g *GossipAdapter) GetBroadcasts(overhead, limit int) [][]byte { return nil }
func (g *GossipAdapter) LocalState(join bool) []byte                { return nil }
func (g *GossipAdapter) MergeRemoteState(buf []byte, join bool)     {}

// Advertise replaces the local advertisement and pushes it to peers.
func (g *GossipAdapter) Advertise(ad domain.Advertisement) error {
	g.mu.Lock()
	g.self = ad
	g.mu.Unlock()

	if err := g.list.UpdateNode(time.Second); err != nil {
		return fmt.Errorf("update node meta: %w", err)
	}
	return nil
}

// Lookup returns the last advertisement received from vehicle id.
func (g *GossipAdapter) Lookup(id wire.NodeID) (domain.Advertisement, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, ad := range g.peers {
		if ad.ID == id {
			return ad, true
		}
	}
	return domain.Advertisement{}, false
}

// Members returns the advertisements of every known peer.
func (g *GossipAdapter) Members() []domain.Advertisement {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Advertisement, 0, len(g.peers))
	for _, ad := range g.peers {
		out = append(out, ad)
	}
	return out
}

// NotifyJoin is invoked when a node joins.
func (g *GossipAdapter) NotifyJoin(node *memberlist.Node) {
	if node.Name == g.conf.Name {
		return
	}
	ad, ok := decodeMeta(node.Meta)
	if !ok {
		return
	}
	g.mu.Lock()
	_, known := g.peers[node.Name]
	g.peers[node.Name] = ad
	g.mu.Unlock()

	if !known {
		logger.Infow("Node joined", "name", node.Name, "id", ad.ID, "addr", node.Addr.String())
	}
}

// NotifyLeave is invoked when a node leaves.
func (g *GossipAdapter) NotifyLeave(node *memberlist.Node) {
	g.mu.Lock()
	delete(g.peers, node.Name)
	g.mu.Unlock()
	logger.Infow("Node left", "name", node.Name)
}

// NotifyUpdate is invoked when a node's metadata changes.
func (g *GossipAdapter) NotifyUpdate(node *memberlist.Node) {
	g.NotifyJoin(node)
}

func decodeMeta(meta []byte) (domain.Advertisement, bool) {
	if len(meta) == 0 {
		return domain.Advertisement{}, false
	}
	var ad domain.Advertisement
	if err := json.Unmarshal(meta, &ad); err != nil {
		logger.Warnw("failed to decode node metadata", "error", err.Error())
		return domain.Advertisement{}, false
	}
	return ad, true
}
