package nodeapi

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func sampleState() *NodeState {
	return &NodeState{
		ID:      7,
		Addr:    "10.0.0.7",
		Running: true,
		State:   "CLUSTER_HEAD",
		HeadID:  7,
		Members: []Member{{ID: 8, LastSeenMs: 1500}},
		Neighbors: []Neighbor{
			{ID: 8, Addr: "10.0.0.8", RTTMs: 2.5},
		},
		Sent:      map[string]uint64{"DISCOVERY": 12, "INVITE": 1},
		Received:  map[string]uint64{"REPLY": 1, "HEARTBEAT": 10},
		Dropped:   2,
		Elections: 1,
		LastRound: &Round{ID: 123456789012345678, Winner: 8, Tally: map[string]int{"7": 3, "8": 5}},
	}
}

func TestNodeState_StructRoundTrip(t *testing.T) {
	in := sampleState()
	st, err := in.ToStruct()
	require.NoError(t, err)
	assert.Equal(t, "CLUSTER_HEAD", st.Fields["state"].GetStringValue())

	out, err := FromStruct(st)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

type fakeNode struct {
	running bool
}

func (f *fakeNode) GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	s := sampleState()
	s.Running = f.running
	return s.ToStruct()
}

func (f *fakeNode) Start(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	f.running = true
	return wrapperspb.Bool(true), nil
}

func (f *fakeNode) Stop(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.FailedPrecondition, "not running")
}

func dialBufconn(t *testing.T, srv ClusterNodeServer) ClusterNodeClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterClusterNodeServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewClusterNodeClient(conn)
}

func TestClusterNode_OverGRPC(t *testing.T) {
	node := &fakeNode{}
	client := dialBufconn(t, node)
	ctx := context.Background()

	started, err := client.Start(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.True(t, started.GetValue())

	st, err := client.GetState(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	state, err := FromStruct(st)
	require.NoError(t, err)
	assert.True(t, state.Running)
	assert.Equal(t, uint32(7), state.ID)
	assert.Equal(t, int64(123456789012345678), state.LastRound.ID)

	_, err = client.Stop(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}
