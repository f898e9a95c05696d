package service

import (
	"context"
	"errors"
	"testing"

	"github.com/anthanhphan/go-vanet-cluster/internal/api/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/port"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/service/mocks"
	"github.com/anthanhphan/go-vanet-cluster/pkg/nodeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTopologyService_Cluster(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockTopologySource(ctrl)
	source.EXPECT().Nodes().Return([]domain.NodeView{
		{Addr: "car-3:9090", State: &nodeapi.NodeState{ID: 3, Running: true, State: "CLUSTER_HEAD", HeadID: 3}},
		{Addr: "car-11:9090", State: &nodeapi.NodeState{ID: 11, Running: true, State: "CLUSTER_MEMBER", HeadID: 3}},
		{Addr: "car-5:9090", State: &nodeapi.NodeState{ID: 5, Running: true, State: "CLUSTER_MEMBER", HeadID: 3}},
		{Addr: "car-7:9090", State: &nodeapi.NodeState{ID: 7, Running: true, State: "CLUSTER_MEMBER", HeadID: 1}},
		{Addr: "car-8:9090", State: &nodeapi.NodeState{ID: 8, Running: true, State: "ISOLATED", HeadID: 8}},
		{Addr: "car-9:9090", State: &nodeapi.NodeState{ID: 9, Running: false, State: "ISOLATED", HeadID: 9}},
		{Addr: "car-2:9090", Error: "connection refused"},
	})

	view := NewTopologyService(source, nil).Cluster(context.Background())

	assert.Len(t, view.Nodes, 7)
	assert.Equal(t, []domain.Cluster{
		{HeadID: 1, Members: []uint32{7}},
		{HeadID: 3, HeadAddr: "car-3:9090", Members: []uint32{5, 11}},
	}, view.Clusters)
	assert.Equal(t, []uint32{8}, view.Isolated)
}

func TestTopologyService_Control(t *testing.T) {
	type mockSetup func(source *mocks.MockTopologySource, control *mocks.MockNodeControl)

	tests := []struct {
		name    string
		start   bool
		setup   mockSetup
		want    bool
		wantErr error
	}{
		{
			name:  "Start",
			start: true,
			setup: func(source *mocks.MockTopologySource, control *mocks.MockNodeControl) {
				source.EXPECT().Known("car-1:9090").Return(true)
				control.EXPECT().Start(gomock.Any(), "car-1:9090").Return(true, nil)
			},
			want: true,
		},
		{
			name: "Stop",
			setup: func(source *mocks.MockTopologySource, control *mocks.MockNodeControl) {
				source.EXPECT().Known("car-1:9090").Return(true)
				control.EXPECT().Stop(gomock.Any(), "car-1:9090").Return(false, nil)
			},
			want: false,
		},
		{
			name:  "Unknown node",
			start: true,
			setup: func(source *mocks.MockTopologySource, control *mocks.MockNodeControl) {
				source.EXPECT().Known("car-1:9090").Return(false)
			},
			wantErr: port.ErrUnknownNode,
		},
		{
			name: "Node unreachable",
			setup: func(source *mocks.MockTopologySource, control *mocks.MockNodeControl) {
				source.EXPECT().Known("car-1:9090").Return(true)
				control.EXPECT().Stop(gomock.Any(), "car-1:9090").Return(false, errors.New("connection refused"))
			},
			wantErr: port.ErrNodeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := mocks.NewMockTopologySource(ctrl)
			control := mocks.NewMockNodeControl(ctrl)
			tt.setup(source, control)

			svc := NewTopologyService(source, control)
			var (
				got bool
				err error
			)
			if tt.start {
				got, err = svc.StartNode(context.Background(), "car-1:9090")
			} else {
				got, err = svc.StopNode(context.Background(), "car-1:9090")
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
