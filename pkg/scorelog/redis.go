package scorelog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "scores"

// RedisSink appends score rows to the list <prefix>:<method>. The header is
// stored once per method under <prefix>:<method>:header.
type RedisSink struct {
	client  redis.Cmdable
	prefix  string
	breaker *Breaker
}

var _ election.ScoreSink = (*RedisSink)(nil)

type RedisSinkConfig struct {
	KeyPrefix        string
	FailureThreshold int
	OpenTimeout      time.Duration
}

func NewRedisSink(client redis.Cmdable, cfg RedisSinkConfig) *RedisSink {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	return &RedisSink{
		client: client,
		prefix: cfg.KeyPrefix,
		breaker: NewBreaker(BreakerConfig{
			Name:             "redis-score-sink",
			FailureThreshold: cfg.FailureThreshold,
			OpenTimeout:      cfg.OpenTimeout,
		}),
	}
}

// ListKey returns the list a method's rows are pushed to.
func (s *RedisSink) ListKey(method string) string {
	return s.prefix + ":" + method
}

func (s *RedisSink) HeaderKey(method string) string {
	return s.ListKey(method) + ":header"
}

func (s *RedisSink) AppendScoreRecord(ctx context.Context, rec election.ScoreRecord) error {
	rows := Rows(rec)
	if len(rows) == 0 {
		return nil
	}

	values := make([]any, len(rows))
	for i, row := range rows {
		values[i] = strings.Join(row, ",")
	}

	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetNX(ctx, s.HeaderKey(rec.Method), strings.Join(Header(), ","), 0)
			pipe.RPush(ctx, s.ListKey(rec.Method), values...)
			return nil
		})
		if err != nil {
			return fmt.Errorf("push %s scores: %w", rec.Method, err)
		}
		return nil
	})
}

// BreakerState exposes the guard's state for health reporting.
func (s *RedisSink) BreakerState() BreakerState {
	return s.breaker.State()
}
