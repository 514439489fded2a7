package repository

import (
	"context"
	"time"
)

// FlaggedIPRepository publishes flagged addresses for external enforcement.
type FlaggedIPRepository interface {
	// MarkFlagged records an address with its failure count for the given expiry.
	MarkFlagged(ctx context.Context, ip string, failures int, expiry time.Duration) error
}
