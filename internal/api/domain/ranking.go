package domain

import (
	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
)

// CandidateInput is one vehicle submitted for ranking.
type CandidateInput struct {
	ID        uint32                  `json:"id"`
	Profile   election.VehicleProfile `json:"profile"`
	Neighbors int                     `json:"neighbors"`
	RTTMs     float64                 `json:"rtt_ms"`
}

// RankRequest asks the gateway to rank a set of head candidates. Zero values
// select the defaults: every method, AHP weights, 0.5 preference threshold
// and a 10 ms RTT threshold.
type RankRequest struct {
	Candidates          []CandidateInput `json:"candidates"`
	Methods             []string         `json:"methods,omitempty"`
	Weights             []float64        `json:"weights,omitempty"`
	PreferenceThreshold float64          `json:"preference_threshold,omitempty"`
	RTTThresholdMs      float64          `json:"rtt_threshold_ms,omitempty"`
}

type MethodResult struct {
	Method string    `json:"method"`
	Scores []float64 `json:"scores"`
	Best   uint32    `json:"best"`
}

type RankResponse struct {
	RoundID    int64          `json:"round_id,string"`
	Candidates []uint32       `json:"candidates"`
	Criteria   [][]float64    `json:"criteria"`
	Results    []MethodResult `json:"results"`
	Tally      map[string]int `json:"tally"`
	Winner     uint32         `json:"winner"`
}
