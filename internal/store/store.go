package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/nyaya/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		raw_text TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		outcome TEXT NOT NULL,
		output TEXT,
		error TEXT,
		latency_ms INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at);
	CREATE INDEX IF NOT EXISTS idx_analyses_outcome ON analyses(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a settled submission. It satisfies controller.Recorder.
func (s *Store) Record(ctx context.Context, rec internal.AnalysisRecord) error {
	created := rec.Timestamp
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, raw_text, target_lang, outcome, output, error, latency_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, normalizeText(rec.RawText), rec.TargetLang, rec.Outcome, rec.Output, rec.Error, rec.Latency.Milliseconds(), created)
	return err
}

// GetAnalysis returns the record with the given ID.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*internal.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, raw_text, target_lang, outcome, output, error, latency_ms, created_at FROM analyses WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListAnalyses returns records newest first. A limit ≤ 0 returns all.
func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]internal.AnalysisRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, raw_text, target_lang, outcome, output, error, latency_ms, created_at FROM analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []internal.AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}

	return results, rows.Err()
}

// HistoryStats summarises recorded submissions.
type HistoryStats struct {
	TotalEntries   int
	Rendered       int
	Skipped        int
	Failed         int
	AvgLatencyMs   int
	LanguagesCount int
}

// Stats returns summary statistics for the history.
func (s *Store) Stats(ctx context.Context) (*HistoryStats, error) {
	stats := &HistoryStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'rendered' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'skipped' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'failed' THEN 1 ELSE 0 END), 0),
			CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER),
			COUNT(DISTINCT target_lang)
		FROM analyses`).Scan(
		&stats.TotalEntries,
		&stats.Rendered,
		&stats.Skipped,
		&stats.Failed,
		&stats.AvgLatencyMs,
		&stats.LanguagesCount,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteAnalysis permanently removes a record by ID.
func (s *Store) DeleteAnalysis(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return nil
}

// ClearAnalyses removes all records.
func (s *Store) ClearAnalyses(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*internal.AnalysisRecord, error) {
	var rec internal.AnalysisRecord
	var output, errMsg sql.NullString
	var latencyMs sql.NullInt64

	if err := row.Scan(&rec.ID, &rec.RawText, &rec.TargetLang, &rec.Outcome, &output, &errMsg, &latencyMs, &rec.Timestamp); err != nil {
		return nil, err
	}
	rec.Output = output.String
	rec.Error = errMsg.String
	rec.Latency = time.Duration(latencyMs.Int64) * time.Millisecond
	return &rec, nil
}

// normalizeText trims whitespace and applies Unicode NFC normalization so
// identical documents compare equal in history queries.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
