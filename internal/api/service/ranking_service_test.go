package service

import (
	"context"
	"errors"
	"testing"

	"github.com/anthanhphan/go-vanet-cluster/internal/api/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/port"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/service/mocks"
	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	strongProfile = election.VehicleProfile{
		Power:           100,
		DriverAge:       45,
		ManufactureYear: 2024,
		HoursTraveled:   1500,
		LicenseYears:    25,
		FuelClass:       1,
		SpeedKmh:        60,
		Type:            scoring.VehicleEmergency,
	}
	weakProfile = election.VehicleProfile{
		Power:           300,
		DriverAge:       19,
		ManufactureYear: 1995,
		HoursTraveled:   5,
		LicenseYears:    1,
		FuelClass:       7,
		SpeedKmh:        60,
		Type:            scoring.VehiclePrivate,
	}
)

func rankRequest() domain.RankRequest {
	return domain.RankRequest{
		Candidates: []domain.CandidateInput{
			{ID: 10, Profile: weakProfile, Neighbors: 1, RTTMs: 9},
			{ID: 20, Profile: strongProfile, Neighbors: 4, RTTMs: 1},
		},
	}
}

func TestRankingService_Rank(t *testing.T) {
	type mockSetup func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink)

	tests := []struct {
		name    string
		req     func() domain.RankRequest
		setup   mockSetup
		wantErr error
		check   func(t *testing.T, resp *domain.RankResponse)
	}{
		{
			name: "All methods pick the dominant vehicle",
			req:  rankRequest,
			setup: func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink) {
				ids.EXPECT().Next().Return(int64(1001), nil)
				// One record per method plus the Borda tally.
				sink.EXPECT().AppendScoreRecord(gomock.Any(), gomock.Any()).Return(nil).Times(5)
			},
			check: func(t *testing.T, resp *domain.RankResponse) {
				assert.Equal(t, int64(1001), resp.RoundID)
				assert.Equal(t, []uint32{10, 20}, resp.Candidates)
				assert.Equal(t, uint32(20), resp.Winner)
				require.Len(t, resp.Results, 4)
				assert.Equal(t, "topsis", resp.Results[0].Method)
				for _, r := range resp.Results {
					assert.Equal(t, uint32(20), r.Best, r.Method)
				}
				assert.Equal(t, map[string]int{"10": 0, "20": 4}, resp.Tally)
			},
		},
		{
			name: "Selected methods only",
			req: func() domain.RankRequest {
				r := rankRequest()
				r.Methods = []string{"AHP", " wsm "}
				return r
			},
			setup: func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink) {
				ids.EXPECT().Next().Return(int64(7), nil)
				gomock.InOrder(
					sink.EXPECT().AppendScoreRecord(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, rec election.ScoreRecord) error {
							assert.Equal(t, "ahp", rec.Method)
							assert.Equal(t, int64(7), rec.TimeTag)
							return nil
						}),
					sink.EXPECT().AppendScoreRecord(gomock.Any(), gomock.Any()).Return(nil),
					sink.EXPECT().AppendScoreRecord(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, rec election.ScoreRecord) error {
							assert.Equal(t, election.BordaMethodName, rec.Method)
							assert.Equal(t, []float64{0, 2}, rec.Scores)
							return nil
						}),
				)
			},
			check: func(t *testing.T, resp *domain.RankResponse) {
				require.Len(t, resp.Results, 2)
				assert.Equal(t, "ahp", resp.Results[0].Method)
				assert.Equal(t, "wsm", resp.Results[1].Method)
			},
		},
		{
			name: "Sink failure does not fail the round",
			req:  rankRequest,
			setup: func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink) {
				ids.EXPECT().Next().Return(int64(8), nil)
				sink.EXPECT().AppendScoreRecord(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(5)
			},
			check: func(t *testing.T, resp *domain.RankResponse) {
				assert.Equal(t, uint32(20), resp.Winner)
			},
		},
		{
			name:    "No candidates",
			req:     func() domain.RankRequest { return domain.RankRequest{} },
			setup:   func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink) {},
			wantErr: port.ErrInvalidRequest,
		},
		{
			name: "Unknown method",
			req: func() domain.RankRequest {
				r := rankRequest()
				r.Methods = []string{"electre"}
				return r
			},
			setup:   func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink) {},
			wantErr: port.ErrInvalidRequest,
		},
		{
			name: "Wrong weight count",
			req: func() domain.RankRequest {
				r := rankRequest()
				r.Weights = []float64{0.5, 0.5}
				return r
			},
			setup:   func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink) {},
			wantErr: port.ErrInvalidRequest,
		},
		{
			name: "Negative weight",
			req: func() domain.RankRequest {
				r := rankRequest()
				r.Weights = []float64{-1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
				return r
			},
			setup: func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink) {
				ids.EXPECT().Next().Return(int64(9), nil)
			},
			wantErr: port.ErrInvalidRequest,
		},
		{
			name: "Duplicate candidate",
			req: func() domain.RankRequest {
				r := rankRequest()
				r.Candidates[1].ID = 10
				return r
			},
			setup: func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink) {
				ids.EXPECT().Next().Return(int64(9), nil)
			},
			wantErr: port.ErrInvalidRequest,
		},
		{
			name: "Round id failure",
			req:  rankRequest,
			setup: func(ids *mocks.MockIDGenerator, sink *mocks.MockScoreSink) {
				ids.EXPECT().Next().Return(int64(0), errors.New("clock moved backwards"))
			},
			wantErr: errors.New("clock moved backwards"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ids := mocks.NewMockIDGenerator(ctrl)
			sink := mocks.NewMockScoreSink(ctrl)
			tt.setup(ids, sink)

			resp, err := NewRankingService(sink, ids).Rank(context.Background(), tt.req())
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, port.ErrInvalidRequest) {
					assert.ErrorIs(t, err, port.ErrInvalidRequest)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				return
			}
			require.NoError(t, err)
			tt.check(t, resp)
		})
	}
}

func TestRankingService_NilSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ids := mocks.NewMockIDGenerator(ctrl)
	ids.EXPECT().Next().Return(int64(3), nil)

	resp, err := NewRankingService(nil, ids).Rank(context.Background(), rankRequest())
	require.NoError(t, err)
	assert.Equal(t, uint32(20), resp.Winner)
}
