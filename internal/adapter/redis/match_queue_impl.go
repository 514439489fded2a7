package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/user/threat-log-analyzer/internal/entity"
)

const matchQueueKey = "threatlog:matches"

// MatchQueueRepoImpl provides a concrete implementation for the MatchQueueRepository interface using Redis Lists.
type MatchQueueRepoImpl struct {
	client *redis.Client
}

// NewMatchQueueRepo creates a new instance of MatchQueueRepoImpl.
func NewMatchQueueRepo(client *redis.Client) *MatchQueueRepoImpl {
	return &MatchQueueRepoImpl{client: client}
}

// Push adds a JSON-encoded record to the left side of the list; consumers RPOP
// from the right to read matches in the order they were found.
func (r *MatchQueueRepoImpl) Push(ctx context.Context, record entity.CorrelatedRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode match for %s: %w", record.IP, err)
	}
	return r.client.LPush(ctx, matchQueueKey, payload).Err()
}

// Size returns the current number of queued matches.
func (r *MatchQueueRepoImpl) Size(ctx context.Context) (int64, error) {
	return r.client.LLen(ctx, matchQueueKey).Result()
}
