package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/heartquiz/heartgame-go/internal/model"
	"github.com/heartquiz/heartgame-go/internal/storage"
)

// Config holds configuration for the SQLite storage backend
type Config struct {
	// Path is the filesystem path to the database file
	// (":memory:" for an in-memory database)
	Path string
}

// DefaultConfig returns default SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path: "var/heartgame.db",
	}
}

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB

	// modernc sqlite does not support concurrent writers
	writeLock sync.Mutex
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New creates a new SQLite storage instance, initializing the schema
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := initializeDB(db); err != nil {
		return nil, fmt.Errorf("initialize db: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &Storage{db: db}, nil
}

func initializeDB(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT    PRIMARY KEY,
			username      TEXT    UNIQUE NOT NULL,
			password_hash TEXT    NOT NULL,
			created_at    INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS score_records (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     TEXT    NOT NULL,
			delta       INTEGER NOT NULL,
			occurred_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS user_aggregates (
			user_id       TEXT    PRIMARY KEY,
			total_score   INTEGER NOT NULL,
			highest_score INTEGER NOT NULL,
			updated_at    INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)",
		string(user.ID),
		user.Username,
		user.PasswordHash,
		user.CreatedAt.Unix(),
	)
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) {
			switch liteErr.Code() {
			case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
				return model.ErrUsernameTaken
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?",
		string(id),
	))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?",
		username,
	))
}

func (s *Storage) scanUser(row *sql.Row) (*model.User, error) {
	var (
		user      model.User
		createdAt int64
	)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &user, nil
}

// Score operations

func (s *Storage) AppendScoreRecord(ctx context.Context, rec *model.ScoreRecord) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO score_records (user_id, delta, occurred_at) VALUES (?, ?, ?)",
		string(rec.UserID),
		rec.Delta,
		rec.OccurredAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert score record: %w", err)
	}
	return nil
}

func (s *Storage) GetUserAggregate(ctx context.Context, id model.UserID) (*model.UserAggregate, error) {
	var (
		agg       model.UserAggregate
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, total_score, highest_score, updated_at FROM user_aggregates WHERE user_id = ?",
		string(id),
	).Scan(&agg.UserID, &agg.TotalScore, &agg.HighestScore, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.UserAggregate{UserID: id}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan aggregate: %w", err)
	}
	agg.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &agg, nil
}

// UpdateUserAggregate applies fold inside a transaction; writeLock serializes
// writers so the read-modify-write cannot lose concurrent updates.
func (s *Storage) UpdateUserAggregate(ctx context.Context, id model.UserID, fold storage.AggregateFold) (*model.UserAggregate, error) {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	agg := model.UserAggregate{UserID: id}
	var updatedAt int64
	err = tx.QueryRowContext(ctx,
		"SELECT total_score, highest_score, updated_at FROM user_aggregates WHERE user_id = ?",
		string(id),
	).Scan(&agg.TotalScore, &agg.HighestScore, &updatedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scan aggregate: %w", err)
	}

	if err := fold(&agg); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_aggregates (user_id, total_score, highest_score, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_score = excluded.total_score,
			highest_score = excluded.highest_score,
			updated_at = excluded.updated_at
	`, string(id), agg.TotalScore, agg.HighestScore, agg.UpdatedAt.Unix()); err != nil {
		return nil, fmt.Errorf("upsert aggregate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &agg, nil
}

func (s *Storage) TopAggregates(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.user_id, COALESCE(u.username, ''), a.highest_score
		FROM user_aggregates a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.highest_score DESC, u.username ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var entry model.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.HighestScore); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
