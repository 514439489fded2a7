package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const flaggedIPPrefix = "threatlog:flagged:"

// FlaggedIPRepoImpl provides a concrete implementation for the FlaggedIPRepository interface using Redis.
type FlaggedIPRepoImpl struct {
	client *redis.Client
}

// NewFlaggedIPRepo creates a new instance of FlaggedIPRepoImpl.
func NewFlaggedIPRepo(client *redis.Client) *FlaggedIPRepoImpl {
	return &FlaggedIPRepoImpl{client: client}
}

func (r *FlaggedIPRepoImpl) generateKey(ip string) string {
	return fmt.Sprintf("%s%s", flaggedIPPrefix, ip)
}

// MarkFlagged stores the failure count under the address key with an expiry,
// so enforcement tools can block the address until the mark lapses.
func (r *FlaggedIPRepoImpl) MarkFlagged(ctx context.Context, ip string, failures int, expiry time.Duration) error {
	return r.client.SetEx(ctx, r.generateKey(ip), failures, expiry).Err()
}
