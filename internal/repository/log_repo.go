package repository

import (
	"context"

	"github.com/user/threat-log-analyzer/internal/entity"
)

// LogRepository defines the source of parsed access-log records.
type LogRepository interface {
	// ReadRecords returns every matching record in file order.
	// Lines that do not match the record pattern are skipped.
	ReadRecords(ctx context.Context) ([]entity.LogRecord, error)
}
