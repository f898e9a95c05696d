package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/internal/api/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/port"
	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/mcda"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
	"github.com/anthanhphan/gosdk/logger"
)

//go:generate mockgen -destination=mocks/dependencies_mock.go -package=mocks -source=ranking_service.go

// IDGenerator issues ranking round identifiers.
type IDGenerator interface {
	Next() (int64, error)
}

// ScoreSink receives one record per method and round.
type ScoreSink interface {
	AppendScoreRecord(ctx context.Context, rec election.ScoreRecord) error
}

// RankingServiceImpl ranks submitted candidates with the multi-criteria
// elector and records every round in the score log.
type RankingServiceImpl struct {
	sink  ScoreSink
	idGen IDGenerator
}

var _ port.RankingService = (*RankingServiceImpl)(nil)

// NewRankingService creates the service. sink may be nil.
func NewRankingService(sink ScoreSink, idGen IDGenerator) *RankingServiceImpl {
	return &RankingServiceImpl{
		sink:  sink,
		idGen: idGen,
	}
}

func (s *RankingServiceImpl) Rank(ctx context.Context, req domain.RankRequest) (*domain.RankResponse, error) {
	cfg, err := electionConfig(req)
	if err != nil {
		return nil, err
	}

	cands := make([]election.Candidate, 0, len(req.Candidates))
	for _, in := range req.Candidates {
		if in.RTTMs < 0 || in.Neighbors < 0 {
			return nil, fmt.Errorf("%w: candidate %d has negative rtt or neighbors", port.ErrInvalidRequest, in.ID)
		}
		cands = append(cands, election.Candidate{
			ID:        wire.NodeID(in.ID),
			Profile:   in.Profile,
			Neighbors: in.Neighbors,
			RTT:       time.Duration(in.RTTMs * float64(time.Millisecond)),
		})
	}

	roundID, err := s.idGen.Next()
	if err != nil {
		return nil, fmt.Errorf("generate round id: %w", err)
	}

	var sink election.ScoreSink
	if s.sink != nil {
		sink = s.sink
	}
	out, err := election.NewElector(cfg, sink).Elect(ctx, roundID, cands)
	if err != nil {
		if errors.Is(err, mcda.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", port.ErrInvalidRequest, err)
		}
		return nil, err
	}

	logger.Infow("Ranking round completed",
		"round", roundID,
		"candidates", len(cands),
		"methods", len(cfg.Methods),
		"winner", out.Winner)

	return toResponse(out, cfg.Methods), nil
}

func electionConfig(req domain.RankRequest) (election.Config, error) {
	cfg := election.DefaultConfig()
	if len(req.Candidates) == 0 {
		return cfg, fmt.Errorf("%w: no candidates", port.ErrInvalidRequest)
	}

	if len(req.Methods) > 0 {
		cfg.Methods = make([]mcda.Method, 0, len(req.Methods))
		for _, name := range req.Methods {
			m, err := mcda.ParseMethod(strings.ToLower(strings.TrimSpace(name)))
			if err != nil {
				return cfg, fmt.Errorf("%w: %v", port.ErrInvalidRequest, err)
			}
			cfg.Methods = append(cfg.Methods, m)
		}
	}
	if len(req.Weights) > 0 {
		if len(req.Weights) != election.CriteriaCount {
			return cfg, fmt.Errorf("%w: got %d weights, want %d", port.ErrInvalidRequest, len(req.Weights), election.CriteriaCount)
		}
		cfg.Weights = req.Weights
	}
	if req.PreferenceThreshold < 0 || req.RTTThresholdMs < 0 {
		return cfg, fmt.Errorf("%w: thresholds must not be negative", port.ErrInvalidRequest)
	}
	if req.PreferenceThreshold > 0 {
		cfg.PreferenceThreshold = req.PreferenceThreshold
	}
	if req.RTTThresholdMs > 0 {
		cfg.RTTThreshold = time.Duration(req.RTTThresholdMs * float64(time.Millisecond))
	}
	return cfg, nil
}

func toResponse(out *election.Outcome, methods []mcda.Method) *domain.RankResponse {
	resp := &domain.RankResponse{
		RoundID:    out.RoundID,
		Candidates: make([]uint32, len(out.Candidates)),
		Criteria:   out.Criteria,
		Results:    make([]domain.MethodResult, 0, len(methods)),
		Tally:      make(map[string]int, len(out.Tally)),
		Winner:     uint32(out.Winner),
	}
	for i, id := range out.Candidates {
		resp.Candidates[i] = uint32(id)
	}
	for _, m := range methods {
		res := out.Results[m]
		resp.Results = append(resp.Results, domain.MethodResult{
			Method: string(m),
			Scores: res.Scores,
			Best:   uint32(out.Candidates[res.Best]),
		})
	}
	for id, points := range out.Tally {
		resp.Tally[strconv.FormatUint(uint64(id), 10)] = points
	}
	return resp
}
