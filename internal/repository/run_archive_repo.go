package repository

import (
	"context"

	"github.com/user/threat-log-analyzer/internal/entity"
)

// RunArchiveRepository stores the results of completed runs.
type RunArchiveRepository interface {
	// SaveRun stores the run counters, the flagged addresses and the matches
	// atomically and returns the id assigned to the run.
	SaveRun(ctx context.Context, report *entity.RunReport, summary entity.FailedAttemptSummary, matches []entity.CorrelatedRecord) (int64, error)
}
