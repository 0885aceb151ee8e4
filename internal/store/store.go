package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Snapshot records one run's computed activity score for a user.
type Snapshot struct {
	ID         int64     `db:"id"`
	Username   string    `db:"username"`
	Score      float64   `db:"score"`
	TotalPosts int       `db:"total_posts"`
	RecordedAt time.Time `db:"recorded_at"`
}

// SQLiteStore persists per-run score snapshots in SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) AddSnapshot(ctx context.Context, username string, score float64, totalPosts int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO score_history (username, score, total_posts, recorded_at)
		VALUES (?, ?, ?, ?)
	`, username, score, totalPosts, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add snapshot %s: %w", username, err)
	}
	return nil
}

func (s *SQLiteStore) History(ctx context.Context, username string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	var snaps []Snapshot
	err := s.db.SelectContext(ctx, &snaps,
		"SELECT * FROM score_history WHERE username = ? ORDER BY recorded_at DESC, id DESC LIMIT ?",
		username, limit)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", username, err)
	}
	return snaps, nil
}

func (s *SQLiteStore) LatestScore(ctx context.Context, username string) (float64, bool, error) {
	var score float64
	err := s.db.GetContext(ctx, &score,
		"SELECT score FROM score_history WHERE username = ? ORDER BY recorded_at DESC, id DESC LIMIT 1",
		username)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("latest score %s: %w", username, err)
	}
	return score, true, nil
}
