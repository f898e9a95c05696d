package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/anthanhphan/go-vanet-cluster/internal/api/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/port"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	stateHead   = "CLUSTER_HEAD"
	stateMember = "CLUSTER_MEMBER"
)

// TopologyServiceImpl builds the cluster view from polled node states.
type TopologyServiceImpl struct {
	source  port.TopologySource
	control port.NodeControl
}

var _ port.TopologyService = (*TopologyServiceImpl)(nil)

func NewTopologyService(source port.TopologySource, control port.NodeControl) *TopologyServiceImpl {
	return &TopologyServiceImpl{
		source:  source,
		control: control,
	}
}

// Cluster groups running nodes by head. A member whose head was not polled
// still gets a cluster entry, with an empty head address.
func (s *TopologyServiceImpl) Cluster(ctx context.Context) domain.ClusterView {
	nodes := s.source.Nodes()
	view := domain.ClusterView{
		Nodes:    nodes,
		Clusters: []domain.Cluster{},
		Isolated: []uint32{},
	}

	byHead := make(map[uint32]*domain.Cluster)
	cluster := func(head uint32) *domain.Cluster {
		c, ok := byHead[head]
		if !ok {
			c = &domain.Cluster{HeadID: head, Members: []uint32{}}
			byHead[head] = c
		}
		return c
	}

	for _, n := range nodes {
		st := n.State
		if st == nil || !st.Running {
			continue
		}
		switch st.State {
		case stateHead:
			cluster(st.ID).HeadAddr = n.Addr
		case stateMember:
			c := cluster(st.HeadID)
			c.Members = append(c.Members, st.ID)
		default:
			view.Isolated = append(view.Isolated, st.ID)
		}
	}

	for _, c := range byHead {
		slices.Sort(c.Members)
		view.Clusters = append(view.Clusters, *c)
	}
	slices.SortFunc(view.Clusters, func(a, b domain.Cluster) int {
		return int(int64(a.HeadID) - int64(b.HeadID))
	})
	slices.Sort(view.Isolated)
	return view
}

func (s *TopologyServiceImpl) StartNode(ctx context.Context, addr string) (bool, error) {
	if !s.source.Known(addr) {
		return false, fmt.Errorf("%w: %s", port.ErrUnknownNode, addr)
	}
	running, err := s.control.Start(ctx, addr)
	if err != nil {
		logger.Warnw("Node start failed", "addr", addr, "error", err.Error())
		return false, fmt.Errorf("%w: %v", port.ErrNodeUnavailable, err)
	}
	logger.Infow("Node started", "addr", addr, "running", running)
	return running, nil
}

func (s *TopologyServiceImpl) StopNode(ctx context.Context, addr string) (bool, error) {
	if !s.source.Known(addr) {
		return false, fmt.Errorf("%w: %s", port.ErrUnknownNode, addr)
	}
	running, err := s.control.Stop(ctx, addr)
	if err != nil {
		logger.Warnw("Node stop failed", "addr", addr, "error", err.Error())
		return false, fmt.Errorf("%w: %v", port.ErrNodeUnavailable, err)
	}
	logger.Infow("Node stopped", "addr", addr, "running", running)
	return running, nil
}
