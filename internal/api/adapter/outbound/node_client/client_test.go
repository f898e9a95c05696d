package node_client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/pkg/nodeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Mock Client
type MockNodeClient struct {
	nodeapi.ClusterNodeClient
	mu      sync.Mutex
	calls   int
	state   *nodeapi.NodeState
	err     error
	running bool
}

func (m *MockNodeClient) GetState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.state.ToStruct()
}

func (m *MockNodeClient) Start(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	m.running = true
	return wrapperspb.Bool(true), nil
}

func (m *MockNodeClient) Stop(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	m.running = false
	return wrapperspb.Bool(false), nil
}

func (m *MockNodeClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestNodeClient_PollNodes(t *testing.T) {
	healthy := &MockNodeClient{state: &nodeapi.NodeState{ID: 1, Running: true, State: "CLUSTER_HEAD", HeadID: 1}}
	broken := &MockNodeClient{err: errors.New("connection refused")}

	client := NewNodeClient([]string{"car-1:9090", "car-2:9090", "car-1:9090"}, time.Second)
	now := time.Unix(1000, 0)
	client.now = func() time.Time { return now }
	client.SetClientFactory(func(addr string) (nodeapi.ClusterNodeClient, error) {
		if addr == "car-1:9090" {
			return healthy, nil
		}
		return broken, nil
	})

	ctx := context.Background()
	client.PollNodes(ctx)

	nodes := client.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "car-1:9090", nodes[0].Addr)
	require.NotNil(t, nodes[0].State)
	assert.Equal(t, "CLUSTER_HEAD", nodes[0].State.State)
	assert.Empty(t, nodes[0].Error)
	assert.Equal(t, "car-2:9090", nodes[1].Addr)
	assert.Nil(t, nodes[1].State)
	assert.Contains(t, nodes[1].Error, "connection refused")

	// Within the backoff window the failed node is skipped.
	now = now.Add(500 * time.Millisecond)
	client.PollNodes(ctx)
	assert.Equal(t, 2, healthy.callCount())
	assert.Equal(t, 1, broken.callCount())

	// After the window it is retried.
	now = now.Add(2 * time.Second)
	broken.mu.Lock()
	broken.err = nil
	broken.state = &nodeapi.NodeState{ID: 2, Running: true, State: "CLUSTER_MEMBER", HeadID: 1}
	broken.mu.Unlock()
	client.PollNodes(ctx)
	assert.Equal(t, 2, broken.callCount())
	nodes = client.Nodes()
	require.NotNil(t, nodes[1].State)
	assert.Empty(t, nodes[1].Error)
}

func TestNodeClient_Control(t *testing.T) {
	node := &MockNodeClient{}
	client := NewNodeClient([]string{"car-1:9090"}, time.Second)
	client.SetClientFactory(func(addr string) (nodeapi.ClusterNodeClient, error) {
		return node, nil
	})

	assert.True(t, client.Known("car-1:9090"))
	assert.False(t, client.Known("car-9:9090"))

	running, err := client.Start(context.Background(), "car-1:9090")
	require.NoError(t, err)
	assert.True(t, running)
	assert.True(t, node.running)

	running, err = client.Stop(context.Background(), "car-1:9090")
	require.NoError(t, err)
	assert.False(t, running)

	client.Close()
	client.Close()
}
