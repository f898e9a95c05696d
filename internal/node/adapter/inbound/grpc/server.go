package grpc_handler

import (
	"context"
	"strconv"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/port"
	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/nodeapi"
	"github.com/anthanhphan/gosdk/logger"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server implements the gRPC ClusterNode service.
type Server struct {
	clustering port.ClusteringService
	election   port.ElectionService
}

var _ nodeapi.ClusterNodeServer = (*Server)(nil)

// NewServer creates a new gRPC server. election may be nil.
func NewServer(clustering port.ClusteringService, election port.ElectionService) *Server {
	return &Server{
		clustering: clustering,
		election:   election,
	}
}

// GetState returns the node's clustering snapshot and its last ranking round.
func (s *Server) GetState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	state := ToNodeState(s.clustering.Snapshot())
	if s.election != nil {
		state.LastRound = toRound(s.election.LastOutcome())
	}
	st, err := state.ToStruct()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode state: %v", err)
	}
	return st, nil
}

// Start begins clustering. Starting a running node is a no-op.
func (s *Server) Start(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	if err := s.clustering.Start(); err != nil {
		logger.Warnw("Start rejected", "error", err.Error())
		return nil, status.Errorf(codes.Unavailable, "start clustering: %v", err)
	}
	return wrapperspb.Bool(s.clustering.IsRunning()), nil
}

// Stop halts clustering. Stopping a stopped node is a no-op.
func (s *Server) Stop(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	if err := s.clustering.Stop(); err != nil {
		logger.Warnw("Stop failed", "error", err.Error())
		return nil, status.Errorf(codes.Internal, "stop clustering: %v", err)
	}
	return wrapperspb.Bool(s.clustering.IsRunning()), nil
}

// ToNodeState converts a snapshot to its wire representation.
func ToNodeState(snap domain.Snapshot) *nodeapi.NodeState {
	state := &nodeapi.NodeState{
		ID:            uint32(snap.ID),
		Running:       snap.Running,
		State:         snap.State.String(),
		HeadID:        uint32(snap.HeadID),
		Members:       make([]nodeapi.Member, 0, len(snap.Members)),
		Neighbors:     make([]nodeapi.Neighbor, 0, len(snap.Neighbors)),
		Sent:          counters(snap.Sent),
		Received:      counters(snap.Received),
		Dropped:       snap.Dropped,
		Elections:     snap.Elections,
		Renouncements: snap.Renouncements,
	}
	if snap.Addr.IsValid() {
		state.Addr = snap.Addr.String()
	}
	for _, m := range snap.Members {
		state.Members = append(state.Members, nodeapi.Member{
			ID:         uint32(m.ID),
			LastSeenMs: m.LastSeen.UnixMilli(),
		})
	}
	for _, n := range snap.Neighbors {
		nb := nodeapi.Neighbor{
			ID:    uint32(n.ID),
			RTTMs: float64(n.RTT.Microseconds()) / 1000,
		}
		if n.Addr.IsValid() {
			nb.Addr = n.Addr.String()
		}
		state.Neighbors = append(state.Neighbors, nb)
	}
	return state
}

func counters(c domain.MessageCounters) map[string]uint64 {
	return map[string]uint64{
		"DISCOVERY": c.Discovery,
		"REPLY":     c.Reply,
		"INVITE":    c.Invite,
		"HEARTBEAT": c.Heartbeat,
	}
}

func toRound(out *election.Outcome) *nodeapi.Round {
	if out == nil {
		return nil
	}
	tally := make(map[string]int, len(out.Tally))
	for id, points := range out.Tally {
		tally[strconv.FormatUint(uint64(id), 10)] = points
	}
	return &nodeapi.Round{
		ID:     out.RoundID,
		Winner: uint32(out.Winner),
		Tally:  tally,
	}
}
