package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/port"
	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/sched"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
	"github.com/anthanhphan/gosdk/logger"
)

//go:generate mockgen -destination=mocks/id_generator_mock.go -package=mocks -source=election_service.go

// IDGenerator issues round identifiers.
type IDGenerator interface {
	Next() (int64, error)
}

// ElectionServiceImpl periodically ranks the head and its members with the
// multi-criteria elector. Outcomes are logged and audited only; they never
// change the clustering state.
type ElectionServiceImpl struct {
	clustering port.ClusteringService
	directory  port.CandidateDirectory
	elector    *election.Elector
	idGen      IDGenerator
	sched      sched.Scheduler
	profile    election.VehicleProfile
	interval   time.Duration

	mu     sync.Mutex
	last   *election.Outcome
	timer  sched.Handle
	active bool
}

var _ port.ElectionService = (*ElectionServiceImpl)(nil)

// NewElectionService wires the periodic election. directory may be nil, in
// which case members are ranked with empty profiles.
func NewElectionService(
	clustering port.ClusteringService,
	directory port.CandidateDirectory,
	elector *election.Elector,
	idGen IDGenerator,
	scheduler sched.Scheduler,
	profile election.VehicleProfile,
	interval time.Duration,
) *ElectionServiceImpl {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &ElectionServiceImpl{
		clustering: clustering,
		directory:  directory,
		elector:    elector,
		idGen:      idGen,
		sched:      scheduler,
		profile:    profile,
		interval:   interval,
	}
}

// Start schedules a round every interval. Rounds are skipped while the node
// does not head a cluster.
func (s *ElectionServiceImpl) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}
	s.active = true
	s.timer = s.sched.Every(s.interval, s.tick)
}

func (s *ElectionServiceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.active = false
	s.sched.Cancel(s.timer)
}

func (s *ElectionServiceImpl) tick() {
	if !s.clustering.IsClusterHead() {
		return
	}
	if _, err := s.RunRound(context.Background()); err != nil {
		logger.Warnw("Head ranking round failed", "error", err.Error())
	}
}

// RunRound ranks the current head and its members once.
func (s *ElectionServiceImpl) RunRound(ctx context.Context) (*election.Outcome, error) {
	if !s.clustering.IsRunning() {
		return nil, port.ErrNotRunning
	}
	snap := s.clustering.Snapshot()
	if snap.State != wire.StateClusterHead {
		return nil, port.ErrNotClusterHead
	}

	roundID, err := s.idGen.Next()
	if err != nil {
		return nil, fmt.Errorf("generate round id: %w", err)
	}

	cands := s.candidates(snap)
	outcome, err := s.elector.Elect(ctx, roundID, cands)
	if err != nil {
		return nil, fmt.Errorf("elect round %d: %w", roundID, err)
	}

	s.mu.Lock()
	s.last = outcome
	s.mu.Unlock()

	logger.Infow("Head ranking round",
		"round", roundID,
		"head", snap.ID,
		"candidates", len(cands),
		"winner", outcome.Winner,
		"tally", outcome.Tally[outcome.Winner])
	if outcome.Winner != snap.ID {
		logger.Infow("Better head candidate available", "round", roundID, "head", snap.ID, "candidate", outcome.Winner)
	}
	return outcome, nil
}

func (s *ElectionServiceImpl) LastOutcome() *election.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// candidates lists the head first, then its members in ID order. A member's
// RTT is the head's last measurement to it; the head's own RTT is the mean
// over its members.
func (s *ElectionServiceImpl) candidates(snap domain.Snapshot) []election.Candidate {
	rtts := make(map[wire.NodeID]time.Duration, len(snap.Neighbors))
	for _, n := range snap.Neighbors {
		rtts[n.ID] = n.RTT
	}

	cands := make([]election.Candidate, 0, len(snap.Members)+1)
	cands = append(cands, election.Candidate{
		ID:        snap.ID,
		Profile:   s.profile,
		Neighbors: len(snap.Neighbors),
	})

	var rttSum time.Duration
	measured := 0
	for _, m := range snap.Members {
		c := election.Candidate{ID: m.ID, RTT: rtts[m.ID]}
		if c.RTT > 0 {
			rttSum += c.RTT
			measured++
		}
		if s.directory != nil {
			if ad, ok := s.directory.Lookup(m.ID); ok {
				c.Profile = ad.Profile
				c.Neighbors = ad.Neighbors
			} else {
				logger.Debugw("No advertisement for member", "member", m.ID)
			}
		}
		cands = append(cands, c)
	}
	if measured > 0 {
		cands[0].RTT = rttSum / time.Duration(measured)
	}
	return cands
}
