package usecase

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/entity"
)

// publish hands the run results to the configured external sinks.
func (uc *pipelineUseCase) publish(ctx context.Context, report *entity.RunReport, summary entity.FailedAttemptSummary, correlated []entity.CorrelatedRecord) error {
	var errs error

	if uc.Flagged != nil {
		marked := 0
		for ip, failures := range summary {
			if err := uc.Flagged.MarkFlagged(ctx, ip, failures, uc.settings.FlaggedTTL); err != nil {
				errs = multierr.Append(errs, uc.sinkFailed("sink_flagged", fmt.Errorf("failed to flag %s: %w", ip, err)))
				continue
			}
			marked++
		}
		uc.Logger.Info("flagged addresses published", zap.Int("marked", marked), zap.Duration("ttl", uc.settings.FlaggedTTL))
	}

	if uc.Matches != nil {
		pushed := 0
		for _, record := range correlated {
			if err := uc.Matches.Push(ctx, record); err != nil {
				errs = multierr.Append(errs, uc.sinkFailed("sink_matches", fmt.Errorf("failed to queue match for %s: %w", record.IP, err)))
				continue
			}
			pushed++
		}
		size, err := uc.Matches.Size(ctx)
		if err != nil {
			errs = multierr.Append(errs, uc.sinkFailed("sink_matches", fmt.Errorf("failed to read match queue size: %w", err)))
		}
		uc.Logger.Info("threat matches queued", zap.Int("pushed", pushed), zap.Int64("queue_size", size))
	}

	if uc.Archive != nil {
		runID, err := uc.Archive.SaveRun(ctx, report, summary, correlated)
		if err != nil {
			errs = multierr.Append(errs, uc.sinkFailed("sink_archive", fmt.Errorf("failed to archive run: %w", err)))
		} else {
			uc.Logger.Info("run archived", zap.Int64("run_id", runID))
		}
	}

	return errs
}

func (uc *pipelineUseCase) sinkFailed(stage string, err error) error {
	uc.Metrics.IncStageError(stage)
	uc.Logger.Error("sink failed", zap.String("stage", stage), zap.Error(err))
	return fmt.Errorf("%s: %w", stage, err)
}
