package nodeapi

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// NodeState is the GetState payload.
type NodeState struct {
	ID            uint32            `json:"id"`
	Addr          string            `json:"addr"`
	Running       bool              `json:"running"`
	State         string            `json:"state"`
	HeadID        uint32            `json:"head_id"`
	Members       []Member          `json:"members"`
	Neighbors     []Neighbor        `json:"neighbors"`
	Sent          map[string]uint64 `json:"sent"`
	Received      map[string]uint64 `json:"received"`
	Dropped       uint64            `json:"dropped"`
	Elections     uint64            `json:"elections"`
	Renouncements uint64            `json:"renouncements"`
	LastRound     *Round            `json:"last_round,omitempty"`
}

type Member struct {
	ID         uint32 `json:"id"`
	LastSeenMs int64  `json:"last_seen_ms"`
}

type Neighbor struct {
	ID    uint32  `json:"id"`
	Addr  string  `json:"addr"`
	RTTMs float64 `json:"rtt_ms"`
}

// Round summarizes the last advisory election a head ran.
type Round struct {
	// ID exceeds float64 precision, so it travels as a string.
	ID     int64          `json:"id,string"`
	Winner uint32         `json:"winner"`
	Tally  map[string]int `json:"tally"`
}

// ToStruct converts s to a protobuf Struct.
func (s *NodeState) ToStruct() (*structpb.Struct, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal node state: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal node state: %w", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build node state struct: %w", err)
	}
	return st, nil
}

// FromStruct parses a Struct produced by ToStruct.
func FromStruct(st *structpb.Struct) (*NodeState, error) {
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return nil, fmt.Errorf("marshal node state struct: %w", err)
	}
	var s NodeState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode node state: %w", err)
	}
	return &s, nil
}
