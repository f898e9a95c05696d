package wire

import (
	"fmt"
	"net/netip"
)

// NodeID is the stable identifier of a network participant.
type NodeID uint32

// NodeState is the clustering role a node advertises.
type NodeState uint8

const (
	StateIsolated NodeState = iota
	StateClusterHead
	StateClusterMember
)

func (s NodeState) String() string {
	switch s {
	case StateIsolated:
		return "ISOLATED"
	case StateClusterHead:
		return "CLUSTER_HEAD"
	case StateClusterMember:
		return "CLUSTER_MEMBER"
	default:
		return fmt.Sprintf("STATE(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the known states.
func (s NodeState) Valid() bool {
	return s <= StateClusterMember
}

// MessageType tags the control message variants.
type MessageType uint8

const (
	TypeDiscovery MessageType = iota
	TypeReply
	TypeInvite
	TypeHeartbeat
)

func (t MessageType) String() string {
	switch t {
	case TypeDiscovery:
		return "DISCOVERY"
	case TypeReply:
		return "REPLY"
	case TypeInvite:
		return "INVITE"
	case TypeHeartbeat:
		return "HEARTBEAT"
	default:
		return fmt.Sprintf("TYPE(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	return t <= TypeHeartbeat
}

// Message is a clustering control message.
// Timestamps are nanoseconds since the scheduler epoch. OriginalTimestamp is
// only meaningful for REPLY, where it echoes the DISCOVERY timestamp.
// SenderAddr always decodes as an IPv4 address: a zero or non-IPv4 address
// comes back as 0.0.0.0 and an IPv4-mapped one in its unmapped form.
type Message struct {
	Type              MessageType
	Timestamp         int64
	OriginalTimestamp int64
	SenderID          NodeID
	SenderState       NodeState
	SenderAddr        netip.Addr
}

func (m Message) String() string {
	return fmt.Sprintf("%s(sender=%d addr=%s state=%s ts=%d orig=%d)",
		m.Type, m.SenderID, m.SenderAddr, m.SenderState, m.Timestamp, m.OriginalTimestamp)
}
