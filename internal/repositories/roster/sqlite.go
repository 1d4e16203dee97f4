package roster

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/clock"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteConfig contains configuration for the SQLite roster repository
type SQLiteConfig struct {
	// Path is the database file, created along with its directory if missing
	Path  string
	Key   string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", cfg.Path, vb)
	errors.ValidateRequired("key", cfg.Key, vb)
	return vb.Build()
}

// SQLite stores the roster snapshot in a local key-value table
type SQLite struct {
	db    *sql.DB
	key   string
	clock clock.Clock
}

// NewSQLite opens (and if needed creates) the database file
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	path := filepath.Clean(strings.TrimSpace(cfg.Path))
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create kv table")
	}

	return &SQLite{db: db, key: cfg.Key, clock: c}, nil
}

// Close releases the database handle
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load implements Repository
func (s *SQLite) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&data)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("no roster stored at %s", s.key)
		}
		return nil, errors.Wrap(err, "failed to get roster")
	}

	roster, err := decode(data)
	if err != nil {
		return nil, err
	}
	return &LoadOutput{Roster: roster}, nil
}

// Save implements Repository
func (s *SQLite) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	data, err := encode(input.Roster)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		    value = excluded.value,
		    updated_at = excluded.updated_at`,
		s.key, data, s.clock.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save roster")
	}
	return &SaveOutput{}, nil
}

// Clear implements Repository
func (s *SQLite) Clear(ctx context.Context, _ ClearInput) (*ClearOutput, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, s.key); err != nil {
		return nil, errors.Wrap(err, "failed to clear roster")
	}
	return &ClearOutput{}, nil
}

// UpdatedAt returns the unix millisecond time of the last save, or 0
func (s *SQLite) UpdatedAt(ctx context.Context) (int64, error) {
	var at int64
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, s.key).Scan(&at)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to read updated_at")
	}
	return at, nil
}
