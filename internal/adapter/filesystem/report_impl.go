package filesystem

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/entity"
)

const (
	FailedLoginsFile         = "failed_logins.json"
	LogAnalysisTextFile      = "log_analysis.txt"
	LogAnalysisCSVFile       = "log_analysis.csv"
	ThreatIPsFile            = "threat_ips.json"
	CombinedSecurityDataFile = "combined_security_data.json"

	// failedAttemptPhrase follows the count on every line of the text summary.
	failedAttemptPhrase = "uğursuz giriş cəhdi"

	jsonIndent = "    "
)

// ReportRepoImpl provides a concrete implementation for the ReportRepository
// interface that writes every report into a single output directory.
type ReportRepoImpl struct {
	dir    string
	logger *zap.Logger
}

// NewReportRepo creates a report writer rooted at dir.
func NewReportRepo(dir string, logger *zap.Logger) *ReportRepoImpl {
	return &ReportRepoImpl{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (r *ReportRepoImpl) Dir() string {
	return r.dir
}

// Prepare creates the output directory if it is absent.
func (r *ReportRepoImpl) Prepare() error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", r.dir, err)
	}
	return nil
}

func (r *ReportRepoImpl) SaveFailedAttemptsJSON(summary entity.FailedAttemptSummary) error {
	if summary == nil {
		summary = entity.FailedAttemptSummary{}
	}
	return r.writeJSON(FailedLoginsFile, summary)
}

// SaveFailedAttemptsText writes one line per flagged address, sorted by address.
func (r *ReportRepoImpl) SaveFailedAttemptsText(summary entity.FailedAttemptSummary) error {
	path := filepath.Join(r.dir, LogAnalysisTextFile)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, ip := range sortedKeys(summary) {
		if _, err := fmt.Fprintf(w, "%s: %d %s\n", ip, summary[ip], failedAttemptPhrase); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	r.logger.Info("failed attempt summary written", zap.String("path", path), zap.Int("addresses", len(summary)))
	return nil
}

// SaveLogRecordsCSV writes the header followed by one row per record.
// Rows end with CRLF, the RFC 4180 line terminator.
func (r *ReportRepoImpl) SaveLogRecordsCSV(records []entity.LogRecord) error {
	path := filepath.Join(r.dir, LogAnalysisCSVFile)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.UseCRLF = true
	if err := w.Write(entity.CSVHeader); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, record := range records {
		if err := w.Write(record.CSVRow()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	r.logger.Info("log records written", zap.String("path", path), zap.Int("records", len(records)))
	return nil
}

func (r *ReportRepoImpl) SaveThreatMapping(threats entity.ThreatMapping) error {
	if threats == nil {
		threats = entity.ThreatMapping{}
	}
	return r.writeJSON(ThreatIPsFile, threats)
}

func (r *ReportRepoImpl) SaveCorrelated(records []entity.CorrelatedRecord) error {
	if records == nil {
		records = []entity.CorrelatedRecord{}
	}
	return r.writeJSON(CombinedSecurityDataFile, records)
}

// writeJSON pretty-prints payload with a 4-space indent.
func (r *ReportRepoImpl) writeJSON(name string, payload any) error {
	path := filepath.Join(r.dir, name)
	data, err := json.MarshalIndent(payload, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	r.logger.Info("data saved", zap.String("path", path))
	return nil
}

func sortedKeys(summary entity.FailedAttemptSummary) []string {
	keys := make([]string, 0, len(summary))
	for ip := range summary {
		keys = append(keys, ip)
	}
	sort.Strings(keys)
	return keys
}
