package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-vanet-cluster/internal/api/domain"
)

//go:generate mockgen -destination=../service/mocks/service_mock.go -package=mocks -source=service.go

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnknownNode     = errors.New("unknown node")
	ErrNodeUnavailable = errors.New("node unavailable")
)

// RankingService ranks head candidates with the configured decision methods.
type RankingService interface {
	Rank(ctx context.Context, req domain.RankRequest) (*domain.RankResponse, error)
}

// TopologyService aggregates node states into clusters and forwards control
// calls to nodes.
type TopologyService interface {
	Cluster(ctx context.Context) domain.ClusterView

	// StartNode and StopNode return the node's running flag after the call.
	StartNode(ctx context.Context, addr string) (bool, error)
	StopNode(ctx context.Context, addr string) (bool, error)
}
