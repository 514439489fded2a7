package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/threat-log-analyzer/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id                BIGSERIAL PRIMARY KEY,
	started_at        TIMESTAMPTZ NOT NULL,
	finished_at       TIMESTAMPTZ NOT NULL,
	records_parsed    INTEGER NOT NULL,
	failed_attempts   INTEGER NOT NULL,
	flagged_addresses INTEGER NOT NULL,
	threats_loaded    INTEGER NOT NULL,
	matches           INTEGER NOT NULL,
	feed_degraded     BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS flagged_addresses (
	run_id   BIGINT NOT NULL REFERENCES analysis_runs (id) ON DELETE CASCADE,
	ip       TEXT NOT NULL,
	failures INTEGER NOT NULL,
	PRIMARY KEY (run_id, ip)
);
CREATE TABLE IF NOT EXISTS threat_matches (
	id                 BIGSERIAL PRIMARY KEY,
	run_id             BIGINT NOT NULL REFERENCES analysis_runs (id) ON DELETE CASCADE,
	ip                 TEXT NOT NULL,
	log_timestamp      TEXT NOT NULL,
	method             TEXT NOT NULL,
	status             TEXT NOT NULL,
	threat_description TEXT NOT NULL
);`

// RunArchiveRepoImpl provides a concrete implementation for the RunArchiveRepository interface using PostgreSQL.
type RunArchiveRepoImpl struct {
	db *pgxpool.Pool
}

// NewRunArchiveRepo creates a new instance of RunArchiveRepoImpl.
func NewRunArchiveRepo(db *pgxpool.Pool) *RunArchiveRepoImpl {
	return &RunArchiveRepoImpl{db: db}
}

// EnsureSchema creates the archive tables if they do not exist yet.
func (r *RunArchiveRepoImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create archive schema: %w", err)
	}
	return nil
}

// SaveRun stores a run with its flagged addresses and matches in a single transaction.
func (r *RunArchiveRepoImpl) SaveRun(ctx context.Context, report *entity.RunReport, summary entity.FailedAttemptSummary, matches []entity.CorrelatedRecord) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var runID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO analysis_runs (started_at, finished_at, records_parsed, failed_attempts, flagged_addresses, threats_loaded, matches, feed_degraded)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		report.StartedAt, report.FinishedAt, report.RecordsParsed, report.FailedAttempts,
		report.FlaggedAddresses, report.ThreatsLoaded, report.Matches, report.FeedDegraded,
	).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	if len(summary) > 0 || len(matches) > 0 {
		batch := &pgx.Batch{}
		for ip, failures := range summary {
			batch.Queue(`INSERT INTO flagged_addresses (run_id, ip, failures) VALUES ($1, $2, $3)`,
				runID, ip, failures)
		}
		for _, m := range matches {
			batch.Queue(`INSERT INTO threat_matches (run_id, ip, log_timestamp, method, status, threat_description)
			             VALUES ($1, $2, $3, $4, $5, $6)`,
				runID, m.IP, m.Timestamp, m.Method, m.Status, m.ThreatDescription)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("failed to insert run details: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return runID, nil
}
