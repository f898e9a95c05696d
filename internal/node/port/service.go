package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/domain"
	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
)

//go:generate mockgen -destination=../service/mocks/service_mock.go -package=mocks -source=service.go

var (
	ErrNotRunning     = errors.New("clustering is not running")
	ErrNotClusterHead = errors.New("node is not a cluster head")
)

// ClusteringService runs the RTT-based cluster formation protocol.
type ClusteringService interface {
	Start() error
	Stop() error

	IsRunning() bool
	IsClusterHead() bool
	IsClusterMember() bool
	IsIsolated() bool

	// ClusterHeadID is the node's own ID unless it is a member.
	ClusterHeadID() wire.NodeID

	Snapshot() domain.Snapshot
}

// ElectionService ranks the current cluster's candidates for headship.
type ElectionService interface {
	RunRound(ctx context.Context) (*election.Outcome, error)
	LastOutcome() *election.Outcome
}

// CandidateDirectory resolves what other vehicles advertise about themselves.
type CandidateDirectory interface {
	Lookup(id wire.NodeID) (domain.Advertisement, bool)
}

// Advertiser publishes this node's own attributes to its peers.
type Advertiser interface {
	Advertise(ad domain.Advertisement) error
}
