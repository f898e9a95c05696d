package http_handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthanhphan/go-vanet-cluster/internal/api/config"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/port"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/service/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T) (*Server, *mocks.MockRankingService, *mocks.MockTopologyService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ranking := mocks.NewMockRankingService(ctrl)
	topology := mocks.NewMockTopologyService(ctrl)
	return NewServer(config.DefaultConfig(), ranking, topology), ranking, topology
}

func decode(t *testing.T, body io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(v))
}

func TestServer_Health(t *testing.T) {
	s, _, _ := newTestServer(t)

	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestServer_Rank(t *testing.T) {
	const body = `{"candidates":[{"id":1,"rtt_ms":2,"neighbors":3,"profile":{"power":100,"speed_kmh":60}},{"id":2}],"methods":["topsis"]}`

	tests := []struct {
		name       string
		body       string
		setup      func(ranking *mocks.MockRankingService)
		wantStatus int
	}{
		{
			name: "Success",
			body: body,
			setup: func(ranking *mocks.MockRankingService) {
				ranking.EXPECT().Rank(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req domain.RankRequest) (*domain.RankResponse, error) {
						assert.Len(t, req.Candidates, 2)
						assert.Equal(t, 100, req.Candidates[0].Profile.Power)
						assert.Equal(t, 2.0, req.Candidates[0].RTTMs)
						assert.Equal(t, []string{"topsis"}, req.Methods)
						return &domain.RankResponse{RoundID: 42, Candidates: []uint32{1, 2}, Winner: 1}, nil
					})
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "Malformed body",
			body:       `{"candidates":`,
			setup:      func(ranking *mocks.MockRankingService) {},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name: "Invalid request",
			body: body,
			setup: func(ranking *mocks.MockRankingService) {
				ranking.EXPECT().Rank(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: no candidates", port.ErrInvalidRequest))
			},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name: "Internal failure",
			body: body,
			setup: func(ranking *mocks.MockRankingService) {
				ranking.EXPECT().Rank(gomock.Any(), gomock.Any()).Return(nil, errors.New("clock moved backwards"))
			},
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ranking, _ := newTestServer(t)
			tt.setup(ranking)

			req := httptest.NewRequest(fiber.MethodPost, "/rankings", strings.NewReader(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := s.app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == fiber.StatusOK {
				var out map[string]any
				decode(t, resp.Body, &out)
				assert.Equal(t, "42", out["round_id"])
				assert.Equal(t, float64(1), out["winner"])
			}
		})
	}
}

func TestServer_Cluster(t *testing.T) {
	s, _, topology := newTestServer(t)
	topology.EXPECT().Cluster(gomock.Any()).Return(domain.ClusterView{
		Clusters: []domain.Cluster{{HeadID: 3, HeadAddr: "car-3:9090", Members: []uint32{5}}},
		Isolated: []uint32{8},
	})

	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, "/cluster", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view domain.ClusterView
	decode(t, resp.Body, &view)
	assert.Equal(t, uint32(3), view.Clusters[0].HeadID)
	assert.Equal(t, []uint32{8}, view.Isolated)
}

func TestServer_NodeControl(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(topology *mocks.MockTopologyService)
		wantStatus int
	}{
		{
			name: "Start",
			path: "/nodes/car-1:9090/start",
			setup: func(topology *mocks.MockTopologyService) {
				topology.EXPECT().StartNode(gomock.Any(), "car-1:9090").Return(true, nil)
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name: "Stop",
			path: "/nodes/car-1:9090/stop",
			setup: func(topology *mocks.MockTopologyService) {
				topology.EXPECT().StopNode(gomock.Any(), "car-1:9090").Return(false, nil)
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name: "Unknown node",
			path: "/nodes/car-9:9090/stop",
			setup: func(topology *mocks.MockTopologyService) {
				topology.EXPECT().StopNode(gomock.Any(), "car-9:9090").Return(false, port.ErrUnknownNode)
			},
			wantStatus: fiber.StatusNotFound,
		},
		{
			name: "Node unavailable",
			path: "/nodes/car-1:9090/start",
			setup: func(topology *mocks.MockTopologyService) {
				topology.EXPECT().StartNode(gomock.Any(), "car-1:9090").Return(false, port.ErrNodeUnavailable)
			},
			wantStatus: fiber.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, topology := newTestServer(t)
			tt.setup(topology)

			resp, err := s.app.Test(httptest.NewRequest(fiber.MethodPost, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
