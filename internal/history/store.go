// Package history is the append-only log of completed analyses.
//
// Append is synchronous: a record is visible to Recent before Append
// returns. There is no update or delete path.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go driver, no CGO

	"github.com/veridict/veridict/internal/model"
)

// Store persists analysis records in SQLite
type Store struct {
	db *sql.DB
}

// Open creates the store at path, creating and migrating the database as
// needed. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// the append counter must stay strictly sequential
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		prediction TEXT NOT NULL,
		confidence REAL NOT NULL,
		model_used TEXT NOT NULL DEFAULT '',
		timestamp DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores the record and fills in its assigned id and timestamp
func (s *Store) Append(ctx context.Context, record *model.AnalysisRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (text, prediction, confidence, model_used, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		record.Text, record.Prediction, record.Confidence, record.ModelUsed,
		record.Timestamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("append record: last id: %w", err)
	}
	record.ID = id
	return nil
}

// Recent returns up to limit records, newest first, skipping offset
func (s *Store) Recent(ctx context.Context, limit, offset int) ([]model.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, prediction, confidence, model_used, timestamp
		 FROM analyses ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]model.AnalysisRecord, 0, limit)
	for rows.Next() {
		var r model.AnalysisRecord
		var ts string
		if err := rows.Scan(&r.ID, &r.Text, &r.Prediction, &r.Confidence, &r.ModelUsed, &ts); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			r.Timestamp = parsed
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

// Count reports the total number of records
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}
