package domain

import (
	"net/netip"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
)

// Member is a vehicle that heartbeats to this node while it heads a cluster.
type Member struct {
	ID       wire.NodeID `json:"id"`
	LastSeen time.Time   `json:"last_seen"`
}

// Neighbor is a vehicle this node has heard from, with the last RTT it
// measured to it (zero when never measured).
type Neighbor struct {
	ID   wire.NodeID   `json:"id"`
	Addr netip.Addr    `json:"addr"`
	RTT  time.Duration `json:"rtt"`
}

// MessageCounters counts control messages per type.
type MessageCounters struct {
	Discovery uint64 `json:"discovery"`
	Reply     uint64 `json:"reply"`
	Invite    uint64 `json:"invite"`
	Heartbeat uint64 `json:"heartbeat"`
}

// Inc bumps the counter for t. Unknown types are ignored.
func (c *MessageCounters) Inc(t wire.MessageType) {
	switch t {
	case wire.TypeDiscovery:
		c.Discovery++
	case wire.TypeReply:
		c.Reply++
	case wire.TypeInvite:
		c.Invite++
	case wire.TypeHeartbeat:
		c.Heartbeat++
	}
}

func (c MessageCounters) Total() uint64 {
	return c.Discovery + c.Reply + c.Invite + c.Heartbeat
}

// Snapshot is a point-in-time copy of a node's clustering state.
type Snapshot struct {
	ID            wire.NodeID     `json:"id"`
	Addr          netip.Addr      `json:"addr"`
	Running       bool            `json:"running"`
	State         wire.NodeState  `json:"state"`
	HeadID        wire.NodeID     `json:"head_id"`
	Members       []Member        `json:"members"`
	Neighbors     []Neighbor      `json:"neighbors"`
	Sent          MessageCounters `json:"sent"`
	Received      MessageCounters `json:"received"`
	Dropped       uint64          `json:"dropped"`
	Elections     uint64          `json:"elections"`
	Renouncements uint64          `json:"renouncements"`
	TakenAt       time.Time       `json:"taken_at"`
}

// Transition records a role change.
type Transition struct {
	From   wire.NodeState `json:"from"`
	To     wire.NodeState `json:"to"`
	HeadID wire.NodeID    `json:"head_id"`
	Reason string         `json:"reason"`
	At     time.Time      `json:"at"`
}

// Advertisement is what a vehicle publishes about itself for head ranking.
type Advertisement struct {
	ID        wire.NodeID             `json:"id"`
	Profile   election.VehicleProfile `json:"profile"`
	Neighbors int                     `json:"neighbors"`
	State     wire.NodeState          `json:"state"`
}
