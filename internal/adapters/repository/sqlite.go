package repository

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
	"github.com/okian/folio/pkg/metrics"

	_ "modernc.org/sqlite"
)

const (
	defaultBusyTimeout = 5 * time.Second
	millisPerSecond    = 1e3
)

// SQLiteStore is a file-backed Store. The database file and table are
// created on Open when absent.
type SQLiteStore struct {
	db           *sql.DB
	busyTimeout  time.Duration
	maxOpenConns int
	logger       logger.Logger
}

// Open opens (creating if needed) and migrates the SQLite database at path.
func Open(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrStorePath
	}

	s := &SQLiteStore{
		busyTimeout:  defaultBusyTimeout,
		maxOpenConns: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", s.dsn(filepath.Clean(path)))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(s.maxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	applied, err := applyMigrations(ctx, db, migrationFS, "migrations")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	s.db = db

	if s.logger != nil {
		s.logger.Info(ctx, "sqlite store opened",
			logger.String("path", path),
			logger.Int("migrations_applied", len(applied)),
		)
	}
	return s, nil
}

func (s *SQLiteStore) dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", s.busyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	return path + "?" + q.Encode()
}

// Create inserts the entry. Absent fields are stored as NULL.
func (s *SQLiteStore) Create(ctx context.Context, entry model.FeedbackEntry) (model.FeedbackEntry, error) {
	if s == nil || s.db == nil {
		return model.FeedbackEntry{}, ErrNotConfigured
	}
	defer observe("create", time.Now())

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback_entries (name, comment) VALUES (?, ?)`,
		nullable(entry.Name), nullable(entry.Comment),
	)
	if err != nil {
		metrics.RecordStoreError("create")
		return model.FeedbackEntry{}, fmt.Errorf("insert feedback entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		metrics.RecordStoreError("create")
		return model.FeedbackEntry{}, fmt.Errorf("read inserted id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// List returns all entries ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]model.FeedbackEntry, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	defer observe("list", time.Now())

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, comment FROM feedback_entries ORDER BY id`)
	if err != nil {
		metrics.RecordStoreError("list")
		return nil, fmt.Errorf("list feedback entries: %w", err)
	}
	defer rows.Close()

	var entries []model.FeedbackEntry
	for rows.Next() {
		var (
			entry         model.FeedbackEntry
			name, comment sql.NullString
		)
		if err := rows.Scan(&entry.ID, &name, &comment); err != nil {
			metrics.RecordStoreError("list")
			return nil, fmt.Errorf("scan feedback entry: %w", err)
		}
		entry.Name = fromNull(name)
		entry.Comment = fromNull(comment)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreError("list")
		return nil, fmt.Errorf("iterate feedback entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of rows.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrNotConfigured
	}
	defer observe("count", time.Now())

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback_entries`).Scan(&n); err != nil {
		metrics.RecordStoreError("count")
		return 0, fmt.Errorf("count feedback entries: %w", err)
	}
	return n, nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	return s.db.PingContext(ctx)
}

// Close releases the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullable(f model.Field) sql.NullString {
	return sql.NullString{String: f.Value, Valid: f.Present}
}

func fromNull(ns sql.NullString) model.Field {
	if !ns.Valid {
		return model.Field{}
	}
	return model.Set(ns.String)
}

func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/millisPerSecond)
}
