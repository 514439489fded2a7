package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/entity"
	"github.com/user/threat-log-analyzer/internal/repository"
	"github.com/user/threat-log-analyzer/pkg/metrics"
	"github.com/user/threat-log-analyzer/pkg/utils"
)

var (
	// ErrNoLogRecords is returned when the log is missing or has no matching lines.
	// Nothing is written in that case.
	ErrNoLogRecords = errors.New("log file is empty or could not be read")
)

// Pipeline runs one complete analysis.
type Pipeline interface {
	Run(ctx context.Context) (*entity.RunReport, error)
}

// Dependencies wires the pipeline stages. Flagged, Matches and Archive are
// optional sinks and are skipped when nil.
type Dependencies struct {
	Logs    repository.LogRepository
	Feed    repository.ThreatFeedRepository
	Reports repository.ReportRepository

	Flagged repository.FlaggedIPRepository
	Matches repository.MatchQueueRepository
	Archive repository.RunArchiveRepository

	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Settings holds the pipeline parameters that come from configuration.
type Settings struct {
	FeedURL    string
	FlaggedTTL time.Duration
}

type pipelineUseCase struct {
	Dependencies
	settings Settings
}

// NewPipeline creates a new instance of the analysis pipeline.
func NewPipeline(deps Dependencies, settings Settings) Pipeline {
	return &pipelineUseCase{Dependencies: deps, settings: settings}
}

// Run reads the log, writes the failed-attempt reports and the CSV export,
// fetches the threat feed and writes the correlation. Write and sink failures
// are logged and aggregated into the returned error without stopping the run.
func (uc *pipelineUseCase) Run(ctx context.Context) (*entity.RunReport, error) {
	report := &entity.RunReport{StartedAt: time.Now()}
	uc.Logger.Info("analysis started")

	records, err := uc.Logs.ReadRecords(ctx)
	if err != nil {
		uc.Metrics.IncStageError("read")
		if errors.Is(err, repository.ErrLogNotFound) {
			uc.Logger.Warn("log file not found", zap.Error(err))
		} else {
			uc.Logger.Error("failed to read log file", zap.Error(err))
		}
		records = nil
	}
	if len(records) == 0 {
		uc.Logger.Warn(ErrNoLogRecords.Error())
		report.FinishedAt = time.Now()
		return report, ErrNoLogRecords
	}
	report.RecordsParsed = len(records)
	uc.Metrics.RecordsParsed.Add(float64(len(records)))

	var writeErr error
	writeErr = multierr.Append(writeErr, uc.step("prepare_output", uc.Reports.Prepare))

	summary, failedTotal := FindFailedAttempts(records)
	report.FailedAttempts = failedTotal
	report.FlaggedAddresses = len(summary)
	uc.Metrics.FailedAttempts.Add(float64(failedTotal))
	uc.Metrics.FlaggedAddresses.Set(float64(len(summary)))
	uc.Logger.Info("failed attempts analyzed",
		zap.Int("failed_records", failedTotal),
		zap.Int("flagged_addresses", len(summary)),
	)

	writeErr = multierr.Append(writeErr, uc.step("write_failed_json", func() error {
		return uc.Reports.SaveFailedAttemptsJSON(summary)
	}))
	writeErr = multierr.Append(writeErr, uc.step("write_failed_text", func() error {
		return uc.Reports.SaveFailedAttemptsText(summary)
	}))
	writeErr = multierr.Append(writeErr, uc.step("write_csv", func() error {
		return uc.Reports.SaveLogRecordsCSV(records)
	}))

	threats, fetchErr := uc.fetchThreats(ctx)
	if fetchErr != nil {
		report.FeedDegraded = true
		threats = entity.ThreatMapping{}
	}
	report.ThreatsLoaded = len(threats)
	uc.Metrics.ThreatsLoaded.Set(float64(len(threats)))
	writeErr = multierr.Append(writeErr, uc.step("write_threats", func() error {
		return uc.Reports.SaveThreatMapping(threats)
	}))

	correlated := Correlate(records, threats)
	report.Matches = len(correlated)
	uc.Metrics.ThreatMatches.Set(float64(len(correlated)))
	uc.Logger.Info("threat correlation finished", zap.Int("matches", len(correlated)))
	writeErr = multierr.Append(writeErr, uc.step("write_correlated", func() error {
		return uc.Reports.SaveCorrelated(correlated)
	}))
	report.WriteErrors = len(multierr.Errors(writeErr))

	report.FinishedAt = time.Now()
	sinkErr := uc.publish(ctx, report, summary, correlated)

	uc.Logger.Info("analysis completed",
		zap.Int("records", report.RecordsParsed),
		zap.Int("flagged_addresses", report.FlaggedAddresses),
		zap.Int("threats", report.ThreatsLoaded),
		zap.Int("matches", report.Matches),
		zap.Bool("feed_degraded", report.FeedDegraded),
		zap.Int("write_errors", report.WriteErrors),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report, multierr.Combine(writeErr, sinkErr)
}

// step runs a best-effort action, logging and counting its failure.
func (uc *pipelineUseCase) step(stage string, fn func() error) error {
	if err := fn(); err != nil {
		uc.Metrics.IncStageError(stage)
		uc.Logger.Error("pipeline step failed", zap.String("stage", stage), zap.Error(err))
		return fmt.Errorf("%s: %w", stage, err)
	}
	return nil
}

// fetchThreats loads the threat mapping. The error is only used to mark the
// run as degraded; it has already been logged.
func (uc *pipelineUseCase) fetchThreats(ctx context.Context) (entity.ThreatMapping, error) {
	host := utils.HostLabel(uc.settings.FeedURL)
	start := time.Now()

	threats, err := uc.Feed.FetchThreats(ctx, uc.settings.FeedURL)
	duration := time.Since(start)

	if err != nil {
		uc.Metrics.FeedFetchSeconds.WithLabelValues(host, "failure").Observe(duration.Seconds())
		uc.Metrics.IncStageError("fetch")
		uc.Logger.Error("failed to load threat feed, continuing with an empty mapping",
			zap.String("url", uc.settings.FeedURL),
			zap.String("error_type", feedErrorType(err)),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Metrics.FeedFetchSeconds.WithLabelValues(host, "success").Observe(duration.Seconds())
	uc.Logger.Info("threat feed loaded",
		zap.String("url", uc.settings.FeedURL),
		zap.Int("threats", len(threats)),
		zap.Int64("duration_ms", duration.Milliseconds()),
	)
	if threats == nil {
		threats = entity.ThreatMapping{}
	}
	return threats, nil
}

func feedErrorType(err error) string {
	switch {
	case errors.Is(err, repository.ErrFeedTimeout):
		return "timeout"
	case errors.Is(err, repository.ErrNavigationFailed):
		return "navigation"
	case errors.Is(err, repository.ErrExtractionFailed):
		return "extraction"
	case errors.Is(err, repository.ErrContentRestricted):
		return "restricted"
	default:
		return "unknown"
	}
}
