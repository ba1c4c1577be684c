package audit

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "ticketgate:stats:"

// RedisSink maintains monthly outcome counters, keyed
// ticketgate:stats:<YYYY-MM> with one hash field per validation status.
type RedisSink struct {
	client *redis.Client
}

// NewRedisSink instantiates the sink.
func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client}
}

// Record increments the counter for the event's outcome.
func (s *RedisSink) Record(ctx context.Context, event Event) error {
	key := statsKeyPrefix + event.OccurredAt.Format("2006-01")
	return s.client.HIncrBy(ctx, key, event.Status, 1).Err()
}
