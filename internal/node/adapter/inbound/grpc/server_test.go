package grpc_handler

import (
	"context"
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/service/mocks"
	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/nodeapi"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestServer_GetState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cl := mocks.NewMockClusteringService(ctrl)
	el := mocks.NewMockElectionService(ctrl)

	seen := time.UnixMilli(4200)
	cl.EXPECT().Snapshot().Return(domain.Snapshot{
		ID:      1,
		Addr:    netip.MustParseAddr("10.0.0.1"),
		Running: true,
		State:   wire.StateClusterHead,
		HeadID:  1,
		Members: []domain.Member{{ID: 2, LastSeen: seen}},
		Neighbors: []domain.Neighbor{
			{ID: 2, Addr: netip.MustParseAddr("10.0.0.2"), RTT: 2500 * time.Microsecond},
		},
		Sent:      domain.MessageCounters{Discovery: 4, Invite: 1},
		Received:  domain.MessageCounters{Reply: 1, Heartbeat: 3},
		Elections: 1,
	})
	el.EXPECT().LastOutcome().Return(&election.Outcome{
		RoundID: 99,
		Winner:  2,
		Tally:   map[wire.NodeID]int{1: 1, 2: 3},
	})

	st, err := NewServer(cl, el).GetState(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	state, err := nodeapi.FromStruct(st)
	require.NoError(t, err)
	assert.Equal(t, "CLUSTER_HEAD", state.State)
	assert.Equal(t, "10.0.0.1", state.Addr)
	assert.Equal(t, []nodeapi.Member{{ID: 2, LastSeenMs: 4200}}, state.Members)
	assert.Equal(t, []nodeapi.Neighbor{{ID: 2, Addr: "10.0.0.2", RTTMs: 2.5}}, state.Neighbors)
	assert.Equal(t, uint64(4), state.Sent["DISCOVERY"])
	assert.Equal(t, uint64(3), state.Received["HEARTBEAT"])
	require.NotNil(t, state.LastRound)
	assert.Equal(t, int64(99), state.LastRound.ID)
	assert.Equal(t, map[string]int{"1": 1, "2": 3}, state.LastRound.Tally)
}

func TestServer_GetStateWithoutElection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cl := mocks.NewMockClusteringService(ctrl)
	cl.EXPECT().Snapshot().Return(domain.Snapshot{ID: 3, State: wire.StateIsolated, HeadID: 3})

	st, err := NewServer(cl, nil).GetState(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	state, err := nodeapi.FromStruct(st)
	require.NoError(t, err)
	assert.Equal(t, "ISOLATED", state.State)
	assert.Empty(t, state.Addr)
	assert.Nil(t, state.LastRound)
}

func TestServer_StartStop(t *testing.T) {
	errBind := errors.New("bind: address already in use")

	tests := []struct {
		name     string
		setup    func(cl *mocks.MockClusteringService)
		call     func(s *Server) (bool, error)
		want     bool
		wantCode codes.Code
	}{
		{
			name: "Start",
			setup: func(cl *mocks.MockClusteringService) {
				cl.EXPECT().Start().Return(nil)
				cl.EXPECT().IsRunning().Return(true)
			},
			call: func(s *Server) (bool, error) {
				v, err := s.Start(context.Background(), &emptypb.Empty{})
				return v.GetValue(), err
			},
			want: true,
		},
		{
			name: "Start fails",
			setup: func(cl *mocks.MockClusteringService) {
				cl.EXPECT().Start().Return(errBind)
			},
			call: func(s *Server) (bool, error) {
				v, err := s.Start(context.Background(), &emptypb.Empty{})
				return v.GetValue(), err
			},
			wantCode: codes.Unavailable,
		},
		{
			name: "Stop",
			setup: func(cl *mocks.MockClusteringService) {
				cl.EXPECT().Stop().Return(nil)
				cl.EXPECT().IsRunning().Return(false)
			},
			call: func(s *Server) (bool, error) {
				v, err := s.Stop(context.Background(), &emptypb.Empty{})
				return v.GetValue(), err
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cl := mocks.NewMockClusteringService(ctrl)
			tt.setup(cl)

			got, err := tt.call(NewServer(cl, nil))
			if tt.wantCode != codes.OK {
				assert.Equal(t, tt.wantCode, status.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
