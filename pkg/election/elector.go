package election

import (
	"context"
	"fmt"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/pkg/mcda"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
	"github.com/anthanhphan/gosdk/logger"
)

// BordaMethodName labels the aggregated Borda tally in score records.
const BordaMethodName = "borda"

// ScoreRecord is one ranking round of one method, kept for offline analysis.
type ScoreRecord struct {
	Method       string
	TimeTag      int64
	CandidateIDs []wire.NodeID
	Criteria     [][]float64
	Scores       []float64
}

// ScoreSink appends score records to an audit trail.
type ScoreSink interface {
	AppendScoreRecord(ctx context.Context, rec ScoreRecord) error
}

// Config selects the methods and weights an Elector uses.
type Config struct {
	Methods             []mcda.Method
	Weights             []float64
	PreferenceThreshold float64
	RTTThreshold        time.Duration
}

// DefaultConfig runs every method with the AHP-derived criterion weights.
func DefaultConfig() Config {
	return Config{
		Methods:             mcda.Methods(),
		Weights:             mcda.DefaultAHPWeights(),
		PreferenceThreshold: mcda.DefaultPreferenceThreshold,
		RTTThreshold:        10 * time.Millisecond,
	}
}

// Outcome is the result of one election round.
type Outcome struct {
	RoundID    int64                       `json:"round_id"`
	Candidates []wire.NodeID               `json:"candidates"`
	Criteria   [][]float64                 `json:"criteria"`
	Results    map[mcda.Method]mcda.Result `json:"results"`
	Tally      map[wire.NodeID]int         `json:"tally"`
	Winner     wire.NodeID                 `json:"winner"`
}

// Elector ranks candidates with several methods and aggregates the rankings
// with a Borda count.
type Elector struct {
	cfg  Config
	sink ScoreSink
}

// NewElector fills unset config fields from DefaultConfig. sink may be nil.
func NewElector(cfg Config, sink ScoreSink) *Elector {
	def := DefaultConfig()
	if len(cfg.Methods) == 0 {
		cfg.Methods = def.Methods
	}
	if len(cfg.Weights) == 0 {
		cfg.Weights = def.Weights
	}
	if cfg.PreferenceThreshold <= 0 {
		cfg.PreferenceThreshold = def.PreferenceThreshold
	}
	if cfg.RTTThreshold <= 0 {
		cfg.RTTThreshold = def.RTTThreshold
	}
	return &Elector{cfg: cfg, sink: sink}
}

// Elect ranks cands and records every method's scores under roundID.
// Sink failures are logged and do not fail the round.
func (e *Elector) Elect(ctx context.Context, roundID int64, cands []Candidate) (*Outcome, error) {
	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: no candidates", mcda.ErrInvalidInput)
	}
	seen := make(map[wire.NodeID]struct{}, len(cands))
	for _, c := range cands {
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate candidate %d", mcda.ErrInvalidInput, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	ids := IDs(cands)
	matrix := BuildMatrix(cands, e.cfg.RTTThreshold)
	out := &Outcome{
		RoundID:    roundID,
		Candidates: ids,
		Criteria:   matrix,
		Results:    make(map[mcda.Method]mcda.Result, len(e.cfg.Methods)),
		Tally:      make(map[wire.NodeID]int, len(cands)),
	}

	for _, method := range e.cfg.Methods {
		res, err := mcda.Rank(method, matrix, e.cfg.Weights, mcda.Options{PreferenceThreshold: e.cfg.PreferenceThreshold})
		if err != nil {
			return nil, fmt.Errorf("rank with %s: %w", method, err)
		}
		out.Results[method] = res
		if err := mcda.Borda(res.Scores, ids, out.Tally); err != nil {
			return nil, fmt.Errorf("borda over %s: %w", method, err)
		}
		e.record(ctx, string(method), roundID, ids, matrix, res.Scores)
	}

	tallyScores := make([]float64, len(ids))
	for i, id := range ids {
		tallyScores[i] = float64(out.Tally[id])
	}
	out.Winner = ids[mcda.Argmax(tallyScores)]
	e.record(ctx, BordaMethodName, roundID, ids, matrix, tallyScores)

	return out, nil
}

func (e *Elector) record(ctx context.Context, method string, roundID int64, ids []wire.NodeID, matrix [][]float64, scores []float64) {
	if e.sink == nil {
		return
	}
	err := e.sink.AppendScoreRecord(ctx, ScoreRecord{
		Method:       method,
		TimeTag:      roundID,
		CandidateIDs: ids,
		Criteria:     matrix,
		Scores:       scores,
	})
	if err != nil {
		logger.Warnw("Failed to append score record", "method", method, "round", roundID, "error", err.Error())
	}
}
