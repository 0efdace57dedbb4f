package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/analytics/internal/application/adapter"
)

// adviceSequenceKey is the Redis key holding a profile's advice refresh counter.
const adviceSequenceKey = "advice:sequence:%s"

// RedisSequenceIssuer issues per-profile sequences shared by every API instance.
type RedisSequenceIssuer struct {
	client *redis.Client
}

// NewRedisSequenceIssuer creates a new Redis-backed sequence issuer.
func NewRedisSequenceIssuer(client *redis.Client) *RedisSequenceIssuer {
	return &RedisSequenceIssuer{client: client}
}

// Next atomically increments the profile counter. The first value is 1.
func (s *RedisSequenceIssuer) Next(ctx context.Context, profileID uuid.UUID) (int64, error) {
	seq, err := s.client.Incr(ctx, fmt.Sprintf(adviceSequenceKey, profileID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to issue advice sequence: %w", err)
	}
	return seq, nil
}

var _ adapter.SequenceIssuer = (*RedisSequenceIssuer)(nil)
