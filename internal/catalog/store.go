package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// Store provides access to a Navidrome database file.
type Store struct {
	db   *sql.DB
	path string
}

// querier is satisfied by *sql.DB and *sql.Tx so lookups can run either
// inside or outside the run transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to an existing Navidrome database. It refuses to create
// one: a missing file means the configured path is wrong, not that a
// fresh database is wanted.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("navidrome database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if _, execErr := db.Exec("PRAGMA busy_timeout = 5000"); execErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply busy timeout: %w", execErr)
	}

	store := &Store{db: db, path: path}
	ok, err := store.hasTable(context.Background(), "media_file")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("probe schema: %w", err)
	}
	if !ok {
		_ = db.Close()
		return nil, fmt.Errorf("%s does not look like a Navidrome database (no media_file table)", path)
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) hasTable(ctx context.Context, name string) (bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("query sqlite_master: %w", err)
	}
	return count > 0, nil
}

// TableColumns reports the column names of a table in declaration order.
func (s *Store) TableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    sql.NullString
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table info: %w", err)
	}
	return columns, nil
}

// HasRatedAt reports whether the annotation table carries the rated_at
// column that newer Navidrome versions add.
func (s *Store) HasRatedAt(ctx context.Context) (bool, error) {
	columns, err := s.TableColumns(ctx, "annotation")
	if err != nil {
		return false, err
	}
	for _, column := range columns {
		if column == "rated_at" {
			return true, nil
		}
	}
	return false, nil
}

// Tx wraps the database transaction that scopes all writes of one run.
type Tx struct {
	tx *sql.Tx
}

// Begin opens the run transaction.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Commit makes the run's writes permanent.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback discards the run's writes.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
