// Package idgen issues time-ordered 64-bit identifiers for election rounds.
package idgen

import (
	"errors"
	"sync"
	"time"
)

// Layout: 41 bits of milliseconds since Epoch, 10 bits of worker ID and
// 12 bits of per-millisecond sequence.
const (
	workerBits   = 10
	sequenceBits = 12

	MaxWorkerID = -1 ^ (-1 << workerBits)
	maxSequence = -1 ^ (-1 << sequenceBits)

	workerShift    = sequenceBits
	timestampShift = sequenceBits + workerBits

	// Epoch is 2025-01-01 00:00:00 UTC in milliseconds.
	Epoch = 1735689600000
)

var (
	ErrWorkerIDOutOfRange = errors.New("worker ID out of range")
	ErrClockMovedBack     = errors.New("clock moved backwards")
)

// Generator issues unique, increasing IDs for one worker.
type Generator struct {
	mu       sync.Mutex
	clock    Clock
	workerID int64
	lastTime int64
	sequence int64
}

// New returns a generator for workerID in [0, MaxWorkerID]. A nil clock
// means SystemClock.
func New(workerID int64, clock Clock) (*Generator, error) {
	if workerID < 0 || workerID > MaxWorkerID {
		return nil, ErrWorkerIDOutOfRange
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Generator{clock: clock, workerID: workerID, lastTime: -1}, nil
}

// WorkerIDFor folds an arbitrary identifier into the worker ID range.
func WorkerIDFor(id uint32) int64 {
	return int64(id) & MaxWorkerID
}

func (g *Generator) Next() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.NowMillis()
	if now < g.lastTime {
		return 0, ErrClockMovedBack
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & maxSequence
		if g.sequence == 0 {
			// Sequence exhausted for this millisecond.
			for now <= g.lastTime {
				now = g.clock.NowMillis()
			}
		}
	} else {
		g.sequence = 0
	}
	g.lastTime = now

	return ((now - Epoch) << timestampShift) | (g.workerID << workerShift) | g.sequence, nil
}

// Parts splits an ID back into its issue time, worker and sequence.
func Parts(id int64) (issued time.Time, workerID, sequence int64) {
	ms := (id >> timestampShift) + Epoch
	return time.UnixMilli(ms), (id >> workerShift) & MaxWorkerID, id & maxSequence
}
