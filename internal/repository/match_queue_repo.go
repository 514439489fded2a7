package repository

import (
	"context"

	"github.com/user/threat-log-analyzer/internal/entity"
)

// MatchQueueRepository defines a FIFO queue of correlated records for downstream consumers.
type MatchQueueRepository interface {
	// Push adds a record to the end of the queue.
	Push(ctx context.Context, record entity.CorrelatedRecord) error
	// Size returns the current number of queued records.
	Size(ctx context.Context) (int64, error)
}
