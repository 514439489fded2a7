package repository

import "github.com/user/threat-log-analyzer/internal/entity"

// ReportRepository persists the analysis outputs. Every method is independent,
// a failure in one must not prevent the others from being attempted.
type ReportRepository interface {
	// Prepare makes sure the output location exists.
	Prepare() error
	SaveFailedAttemptsJSON(summary entity.FailedAttemptSummary) error
	SaveFailedAttemptsText(summary entity.FailedAttemptSummary) error
	// SaveLogRecordsCSV writes the plain records, never the correlated ones.
	SaveLogRecordsCSV(records []entity.LogRecord) error
	SaveThreatMapping(threats entity.ThreatMapping) error
	SaveCorrelated(records []entity.CorrelatedRecord) error
}
