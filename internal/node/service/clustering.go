package service

import (
	"fmt"
	"math/rand/v2"
	"net/netip"
	"sort"
	"sync"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/port"
	"github.com/anthanhphan/go-vanet-cluster/pkg/sched"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
	"github.com/anthanhphan/gosdk/logger"
)

// Identity is how a node names itself on the wire. A zero Addr is filled
// from the transport on Start.
type Identity struct {
	ID   wire.NodeID
	Addr netip.Addr
}

type ClusteringConfig struct {
	DiscoveryInterval time.Duration
	RTTThreshold      time.Duration
	Expiration        time.Duration
	// HeadGracePeriod keeps a freshly elected head from renouncing on a
	// conflict. Zero disables it.
	HeadGracePeriod time.Duration
	// Jitter returns a value in [0,1) scaling the delay of the first send.
	// Nil uses math/rand.
	Jitter func() float64
}

func DefaultClusteringConfig() ClusteringConfig {
	return ClusteringConfig{
		DiscoveryInterval: time.Second,
		RTTThreshold:      10 * time.Millisecond,
		Expiration:        3 * time.Second,
	}
}

// ClusteringServiceImpl runs the RTT clustering state machine for one node.
// Timer callbacks and inbound frames are serialized by mu.
type ClusteringServiceImpl struct {
	mu sync.Mutex

	id        wire.NodeID
	addr      netip.Addr
	fixedAddr bool
	transport port.Transport
	sched     sched.Scheduler
	cfg       ClusteringConfig

	running      bool
	epoch        uint64
	sendTimer    sched.Handle
	cleanupTimer sched.Handle

	state       wire.NodeState
	head        wire.NodeID
	headAddr    netip.Addr
	headSince   time.Time
	lastContact time.Time
	members     map[wire.NodeID]time.Time
	neighbors   map[wire.NodeID]netip.Addr
	rtts        map[wire.NodeID]time.Duration

	sent          domain.MessageCounters
	received      domain.MessageCounters
	dropped       uint64
	elections     uint64
	renouncements uint64

	observers []func(domain.Transition)
	pending   []domain.Transition
}

var _ port.ClusteringService = (*ClusteringServiceImpl)(nil)

func NewClusteringService(self Identity, transport port.Transport, scheduler sched.Scheduler, cfg ClusteringConfig) *ClusteringServiceImpl {
	def := DefaultClusteringConfig()
	if cfg.DiscoveryInterval <= 0 {
		cfg.DiscoveryInterval = def.DiscoveryInterval
	}
	if cfg.RTTThreshold <= 0 {
		cfg.RTTThreshold = def.RTTThreshold
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = def.Expiration
	}
	if cfg.Jitter == nil {
		cfg.Jitter = rand.Float64
	}

	s := &ClusteringServiceImpl{
		id:        self.ID,
		addr:      self.Addr,
		fixedAddr: self.Addr.IsValid(),
		transport: transport,
		sched:     scheduler,
		cfg:       cfg,
	}
	s.resetLocked()
	return s
}

// OnTransition registers fn to be called after every role change. fn runs
// outside the service lock and may call back into the service.
func (s *ClusteringServiceImpl) OnTransition(fn func(domain.Transition)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *ClusteringServiceImpl) resetLocked() {
	s.state = wire.StateIsolated
	s.head = s.id
	s.headAddr = netip.Addr{}
	s.headSince = time.Time{}
	s.lastContact = time.Time{}
	s.members = make(map[wire.NodeID]time.Time)
	s.neighbors = make(map[wire.NodeID]netip.Addr)
	s.rtts = make(map[wire.NodeID]time.Duration)
}

// Start opens the transport and arms the periodic send and cleanup timers.
// Starting a running service is a no-op.
func (s *ClusteringServiceImpl) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if err := s.transport.Open(s.receive); err != nil {
		return fmt.Errorf("open transport: %w", err)
	}
	if !s.fixedAddr {
		s.addr = s.transport.LocalAddr()
	}

	s.resetLocked()
	s.running = true
	s.epoch++
	epoch := s.epoch

	first := time.Duration(float64(s.cfg.DiscoveryInterval) * s.cfg.Jitter())
	s.sendTimer = s.sched.AfterFunc(first, func() { s.onSendTick(epoch) })
	s.cleanupTimer = s.sched.Every(s.cfg.Expiration, func() { s.onCleanupTick(epoch) })

	logger.Infow("Clustering started", "event", "NODE_ACTIVE", "node", s.id, "addr", s.addr.String(), "first_send", first.String())
	return nil
}

// Stop cancels both timers, then closes the transport. Stopping a stopped
// service is a no-op.
func (s *ClusteringServiceImpl) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.sched.Cancel(s.sendTimer)
	s.sched.Cancel(s.cleanupTimer)
	s.running = false
	s.epoch++
	s.mu.Unlock()

	// The transport may wait for an in-flight receive, which needs mu.
	if err := s.transport.Close(); err != nil {
		return fmt.Errorf("close transport: %w", err)
	}
	logger.Infow("Clustering stopped", "node", s.id)
	return nil
}

func (s *ClusteringServiceImpl) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ClusteringServiceImpl) IsClusterHead() bool {
	return s.currentState() == wire.StateClusterHead
}

func (s *ClusteringServiceImpl) IsClusterMember() bool {
	return s.currentState() == wire.StateClusterMember
}

func (s *ClusteringServiceImpl) IsIsolated() bool {
	return s.currentState() == wire.StateIsolated
}

func (s *ClusteringServiceImpl) currentState() wire.NodeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ClusteringServiceImpl) ClusterHeadID() wire.NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.head
}

func (s *ClusteringServiceImpl) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.Snapshot{
		ID:            s.id,
		Addr:          s.addr,
		Running:       s.running,
		State:         s.state,
		HeadID:        s.head,
		Members:       make([]domain.Member, 0, len(s.members)),
		Neighbors:     make([]domain.Neighbor, 0, len(s.neighbors)),
		Sent:          s.sent,
		Received:      s.received,
		Dropped:       s.dropped,
		Elections:     s.elections,
		Renouncements: s.renouncements,
		TakenAt:       s.sched.Now(),
	}
	for id, seen := range s.members {
		snap.Members = append(snap.Members, domain.Member{ID: id, LastSeen: seen})
	}
	for id, addr := range s.neighbors {
		snap.Neighbors = append(snap.Neighbors, domain.Neighbor{ID: id, Addr: addr, RTT: s.rtts[id]})
	}
	sort.Slice(snap.Members, func(i, j int) bool { return snap.Members[i].ID < snap.Members[j].ID })
	sort.Slice(snap.Neighbors, func(i, j int) bool { return snap.Neighbors[i].ID < snap.Neighbors[j].ID })
	return snap
}

func (s *ClusteringServiceImpl) onSendTick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || epoch != s.epoch {
		return
	}

	now := s.sched.Now()
	switch s.state {
	case wire.StateIsolated, wire.StateClusterHead:
		s.broadcastLocked(wire.TypeDiscovery, now.UnixNano(), 0)
	case wire.StateClusterMember:
		if s.headAddr.IsValid() {
			s.unicastLocked(s.headAddr, wire.TypeHeartbeat, now.UnixNano(), 0)
		}
	}
	s.sendTimer = s.sched.AfterFunc(s.cfg.DiscoveryInterval, func() { s.onSendTick(epoch) })
}

func (s *ClusteringServiceImpl) onCleanupTick(epoch uint64) {
	s.mu.Lock()
	if !s.running || epoch != s.epoch {
		s.mu.Unlock()
		return
	}

	now := s.sched.Now()
	switch s.state {
	case wire.StateClusterHead:
		for id, seen := range s.members {
			if now.Sub(seen) > s.cfg.Expiration {
				delete(s.members, id)
				logger.Infow("Cluster member expired", "event", "MEMBER_LEAVE", "head", s.id, "member", id, "reason", "TIMEOUT")
			}
		}
		logger.Infow("Cluster size", "event", "CLUSTER_SIZE", "head", s.id, "size", len(s.members))
	case wire.StateClusterMember:
		if now.Sub(s.lastContact) > s.cfg.Expiration {
			logger.Infow("Lost cluster head", "event", "MEMBER_LEAVE", "head", s.head, "member", s.id, "reason", "CH_TIMEOUT")
			s.headAddr = netip.Addr{}
			s.transitionLocked(wire.StateIsolated, s.id, "head timeout", now)
		}
	}

	pending := s.takePendingLocked()
	s.mu.Unlock()
	s.notify(pending)
}

func (s *ClusteringServiceImpl) receive(payload []byte, from netip.Addr) {
	msg, decodeErr := wire.Decode(payload)

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	if decodeErr != nil {
		s.dropped++
		s.mu.Unlock()
		logger.Debugw("Dropped malformed control frame", "node", s.id, "from", from.String(), "size", len(payload), "error", decodeErr.Error())
		return
	}
	if msg.SenderID == s.id {
		s.mu.Unlock()
		return
	}

	s.received.Inc(msg.Type)
	now := s.sched.Now()
	addr := msg.SenderAddr
	if !addr.IsValid() || addr.IsUnspecified() {
		addr = from
	}
	s.neighbors[msg.SenderID] = addr

	switch msg.Type {
	case wire.TypeDiscovery:
		s.handleDiscoveryLocked(msg, addr, now)
	case wire.TypeReply:
		s.handleReplyLocked(msg, addr, now)
	case wire.TypeInvite:
		s.handleInviteLocked(msg, addr, now)
	case wire.TypeHeartbeat:
		s.handleHeartbeatLocked(msg, now)
	}

	pending := s.takePendingLocked()
	s.mu.Unlock()
	s.notify(pending)
}

func (s *ClusteringServiceImpl) handleDiscoveryLocked(msg wire.Message, addr netip.Addr, now time.Time) {
	if s.state == wire.StateClusterMember && msg.SenderID == s.head {
		s.lastContact = now
	}

	if s.state == wire.StateClusterHead && msg.SenderState == wire.StateClusterHead && msg.SenderID < s.id {
		if s.cfg.HeadGracePeriod > 0 && now.Sub(s.headSince) < s.cfg.HeadGracePeriod {
			logger.Debugw("Head conflict ignored during grace period", "node", s.id, "rival", msg.SenderID)
		} else {
			s.members = make(map[wire.NodeID]time.Time)
			s.renouncements++
			s.transitionLocked(wire.StateIsolated, s.id, "conflict", now)
			logger.Infow("Cluster head renounced", "event", "CH_RENOUNCED", "node", s.id, "rival", msg.SenderID, "reason", "CONFLICT")
		}
	}

	if s.state == wire.StateIsolated {
		s.unicastLocked(addr, wire.TypeReply, now.UnixNano(), msg.Timestamp)
	}
}

func (s *ClusteringServiceImpl) handleReplyLocked(msg wire.Message, addr netip.Addr, now time.Time) {
	rtt := now.Sub(time.Unix(0, msg.OriginalTimestamp))
	s.rtts[msg.SenderID] = rtt
	logger.Debugw("RTT measured", "event", "RTT_MEASUREMENT", "from", msg.SenderID, "to", s.id, "rtt", rtt.String())

	if rtt > s.cfg.RTTThreshold {
		return
	}

	if s.state == wire.StateIsolated {
		s.headSince = now
		s.elections++
		s.members = make(map[wire.NodeID]time.Time)
		s.transitionLocked(wire.StateClusterHead, s.id, "low rtt", now)
		logger.Infow("Cluster head elected", "event", "CH_ELECTED", "node", s.id, "via", msg.SenderID, "rtt", rtt.String())
	}

	if s.state == wire.StateClusterHead && msg.SenderState == wire.StateIsolated {
		s.unicastLocked(addr, wire.TypeInvite, now.UnixNano(), 0)
	}
}

func (s *ClusteringServiceImpl) handleInviteLocked(msg wire.Message, addr netip.Addr, now time.Time) {
	if s.state != wire.StateIsolated || msg.SenderState != wire.StateClusterHead {
		return
	}
	s.headAddr = addr
	s.lastContact = now
	s.transitionLocked(wire.StateClusterMember, msg.SenderID, "invite", now)
	logger.Infow("Joined cluster", "event", "MEMBER_JOIN", "head", msg.SenderID, "member", s.id)
}

func (s *ClusteringServiceImpl) handleHeartbeatLocked(msg wire.Message, now time.Time) {
	if s.state != wire.StateClusterHead {
		return
	}
	if _, known := s.members[msg.SenderID]; !known {
		logger.Infow("Cluster member joined", "event", "MEMBER_JOIN", "head", s.id, "member", msg.SenderID, "reason", "HEARTBEAT")
	}
	// Receipt time, not the sender's clock.
	s.members[msg.SenderID] = now
}

func (s *ClusteringServiceImpl) transitionLocked(to wire.NodeState, head wire.NodeID, reason string, now time.Time) {
	from := s.state
	s.state = to
	s.head = head
	if len(s.observers) > 0 {
		s.pending = append(s.pending, domain.Transition{From: from, To: to, HeadID: head, Reason: reason, At: now})
	}
}

func (s *ClusteringServiceImpl) takePendingLocked() []domain.Transition {
	if len(s.pending) == 0 {
		return nil
	}
	pending := s.pending
	s.pending = nil
	return pending
}

func (s *ClusteringServiceImpl) notify(pending []domain.Transition) {
	if len(pending) == 0 {
		return
	}
	s.mu.Lock()
	observers := append(([]func(domain.Transition))(nil), s.observers...)
	s.mu.Unlock()

	for _, t := range pending {
		for _, fn := range observers {
			fn(t)
		}
	}
}

func (s *ClusteringServiceImpl) message(t wire.MessageType, ts, orig int64) []byte {
	return wire.Encode(wire.Message{
		Type:              t,
		Timestamp:         ts,
		OriginalTimestamp: orig,
		SenderID:          s.id,
		SenderState:       s.state,
		SenderAddr:        s.addr,
	})
}

func (s *ClusteringServiceImpl) broadcastLocked(t wire.MessageType, ts, orig int64) {
	if err := s.transport.SendBroadcast(s.message(t, ts, orig)); err != nil {
		logger.Warnw("Broadcast failed", "node", s.id, "type", t.String(), "error", err.Error())
		return
	}
	s.sent.Inc(t)
	logger.Debugw("Control message sent", "event", "PACKET_SENT", "node", s.id, "type", t.String())
}

func (s *ClusteringServiceImpl) unicastLocked(to netip.Addr, t wire.MessageType, ts, orig int64) {
	if err := s.transport.SendUnicast(to, s.message(t, ts, orig)); err != nil {
		logger.Warnw("Unicast failed", "node", s.id, "type", t.String(), "to", to.String(), "error", err.Error())
		return
	}
	s.sent.Inc(t)
	logger.Debugw("Control message sent", "event", "PACKET_SENT", "node", s.id, "type", t.String(), "to", to.String())
}
