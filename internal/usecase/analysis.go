package usecase

import (
	"strings"

	"github.com/user/threat-log-analyzer/internal/entity"
)

const (
	// failedStatusPrefix marks a failed attempt. This is a literal prefix
	// check on the status text, not an HTTP status range.
	failedStatusPrefix = "40"
	// FailedAttemptThreshold is the minimum number of failures for an address to be flagged.
	FailedAttemptThreshold = 5
)

// IsFailedAttempt reports whether the record's status begins with "40".
func IsFailedAttempt(record entity.LogRecord) bool {
	return strings.HasPrefix(record.Status, failedStatusPrefix)
}

// FindFailedAttempts tallies failed attempts per address and keeps the
// addresses with at least FailedAttemptThreshold failures. It also returns the
// number of failed records seen before thresholding.
func FindFailedAttempts(records []entity.LogRecord) (entity.FailedAttemptSummary, int) {
	counts := make(map[string]int)
	total := 0
	for _, record := range records {
		if IsFailedAttempt(record) {
			counts[record.IP]++
			total++
		}
	}

	summary := make(entity.FailedAttemptSummary)
	for ip, count := range counts {
		if count >= FailedAttemptThreshold {
			summary[ip] = count
		}
	}
	return summary, total
}

// Correlate keeps the records whose address is in threats, annotated with the
// matching description, in input order. Records without a match are dropped.
func Correlate(records []entity.LogRecord, threats entity.ThreatMapping) []entity.CorrelatedRecord {
	correlated := make([]entity.CorrelatedRecord, 0)
	for _, record := range records {
		if desc, ok := threats[record.IP]; ok {
			correlated = append(correlated, entity.CorrelatedRecord{
				LogRecord:         record,
				ThreatDescription: desc,
			})
		}
	}
	return correlated
}
