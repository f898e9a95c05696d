package domain

import (
	"time"

	"github.com/anthanhphan/go-vanet-cluster/pkg/nodeapi"
)

// NodeView is the last poll result for one node's control address.
type NodeView struct {
	Addr     string             `json:"addr"`
	State    *nodeapi.NodeState `json:"state,omitempty"`
	Error    string             `json:"error,omitempty"`
	PolledAt time.Time          `json:"polled_at"`
}

// Cluster is one head and the members that report to it.
type Cluster struct {
	HeadID   uint32   `json:"head_id"`
	HeadAddr string   `json:"head_addr"`
	Members  []uint32 `json:"members"`
}

type ClusterView struct {
	Nodes    []NodeView `json:"nodes"`
	Clusters []Cluster  `json:"clusters"`
	Isolated []uint32   `json:"isolated"`
}
