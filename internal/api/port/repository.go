package port

import (
	"context"

	"github.com/anthanhphan/go-vanet-cluster/internal/api/domain"
	"github.com/anthanhphan/go-vanet-cluster/pkg/nodeapi"
)

//go:generate mockgen -destination=../service/mocks/node_control_mock.go -package=mocks -source=repository.go

// NodeControl calls the control RPC of a single clustering node.
type NodeControl interface {
	GetState(ctx context.Context, addr string) (*nodeapi.NodeState, error)
	Start(ctx context.Context, addr string) (bool, error)
	Stop(ctx context.Context, addr string) (bool, error)
}

// TopologySource returns the latest polled state of every known node.
type TopologySource interface {
	Nodes() []domain.NodeView
	Known(addr string) bool
}
