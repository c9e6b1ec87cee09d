package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Compile-time interface check.
var _ domain.RunStore = (*SQLiteStore)(nil)

// Fixed width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps the run ledger in a SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
}

// OpenSQLite opens (or creates) the ledger at path.
func OpenSQLite(path string, log *logger.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("opened run ledger %s", path)
	return &SQLiteStore{db: db, log: log}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			played_ms INTEGER NOT NULL,
			revenue INTEGER NOT NULL,
			fulfilled INTEGER NOT NULL,
			expired INTEGER NOT NULL,
			reason TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_revenue ON runs(revenue DESC, fulfilled DESC, started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save records a finished run. Each id can be saved once.
func (s *SQLiteStore) Save(ctx context.Context, run *domain.RunRecord) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, played_ms, revenue, fulfilled, expired, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.Played.Milliseconds(),
		run.Revenue,
		run.Fulfilled,
		run.Expired,
		run.Reason,
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", run.ID, domain.ErrAlreadyExists)
	}
	s.log.Debug("saved run %s (revenue=%d, reason=%s)", run.ID, run.Revenue, run.Reason)
	return nil
}

// Get retrieves a run by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	runs, err := s.query(ctx, `SELECT id, started_at, played_ms, revenue, fulfilled, expired, reason
		FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &runs[0], nil
}

// Recent returns up to limit runs, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	return s.query(ctx, `SELECT id, started_at, played_ms, revenue, fulfilled, expired, reason
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, sqlLimit(limit))
}

// Top returns up to limit runs, highest revenue first.
func (s *SQLiteStore) Top(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	return s.query(ctx, `SELECT id, started_at, played_ms, revenue, fulfilled, expired, reason
		FROM runs ORDER BY revenue DESC, fulfilled DESC, started_at LIMIT ?`, sqlLimit(limit))
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]domain.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []domain.RunRecord
	for rows.Next() {
		var (
			run       domain.RunRecord
			startedAt string
			playedMS  int64
		)
		if err := rows.Scan(&run.ID, &startedAt, &playedMS, &run.Revenue, &run.Fulfilled, &run.Expired, &run.Reason); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("run %s: bad started_at %q: %w", run.ID, startedAt, err)
		}
		run.Played = time.Duration(playedMS) * time.Millisecond
		out = append(out, run)
	}
	return out, rows.Err()
}

// sqlLimit maps "no limit" to SQLite's -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
