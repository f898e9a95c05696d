package scorelog

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/gosdk/logger"
)

// AsyncSink queues records for a pool of workers writing to the wrapped
// sink. AppendScoreRecord never blocks: a full queue drops the record.
type AsyncSink struct {
	next    election.ScoreSink
	timeout time.Duration

	jobs    chan election.ScoreRecord
	mu      sync.RWMutex
	closed  bool
	once    sync.Once
	wg      sync.WaitGroup
	dropped atomic.Uint64
	failed  atomic.Uint64
}

var _ election.ScoreSink = (*AsyncSink)(nil)

type AsyncConfig struct {
	Workers   int
	QueueSize int
	// WriteTimeout bounds each write to the wrapped sink.
	WriteTimeout time.Duration
}

func NewAsyncSink(next election.ScoreSink, cfg AsyncConfig) *AsyncSink {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 2 * time.Second
	}

	s := &AsyncSink{
		next:    next,
		timeout: cfg.WriteTimeout,
		jobs:    make(chan election.ScoreRecord, cfg.QueueSize),
	}

	for i := 0; i < cfg.Workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for rec := range s.jobs {
				s.write(rec)
			}
		}()
	}
	return s
}

func (s *AsyncSink) write(rec election.ScoreRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.next.AppendScoreRecord(ctx, rec); err != nil {
		s.failed.Add(1)
		logger.Warnw("Score record write failed", "method", rec.Method, "round", rec.TimeTag, "error", err.Error())
	}
}

func (s *AsyncSink) AppendScoreRecord(_ context.Context, rec election.ScoreRecord) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrSinkClosed
	}

	select {
	case s.jobs <- rec:
		return nil
	default:
		s.dropped.Add(1)
		return ErrQueueFull
	}
}

// Dropped counts records rejected because the queue was full.
func (s *AsyncSink) Dropped() uint64 { return s.dropped.Load() }

// Failed counts records the wrapped sink rejected.
func (s *AsyncSink) Failed() uint64 { return s.failed.Load() }

// Close stops accepting records, drains the queue and closes the wrapped
// sink when it is an io.Closer.
func (s *AsyncSink) Close() error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.jobs)
		s.mu.Unlock()

		s.wg.Wait()
		if c, ok := s.next.(io.Closer); ok {
			err = c.Close()
		}
	})
	return err
}
