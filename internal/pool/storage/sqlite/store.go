// Package sqlite implements pool persistence over SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	platformerrors "github.com/louisbranch/annuaire/internal/platform/errors"
	"github.com/louisbranch/annuaire/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/annuaire/internal/pool/storage"
	"github.com/louisbranch/annuaire/internal/pool/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store implements storage.Store over a SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a pool SQLite store and applies bundled migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	// _txlock=immediate makes every transaction a writer from the start,
	// so concurrent takes queue on the busy timeout instead of failing on
	// snapshot upgrade.
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Take removes and returns the n oldest numbers in one transaction.
//
// The select and delete share the transaction so concurrent takes observe
// disjoint rows: SQLite serializes writers, and a row is either returned
// by exactly one committed take or still present.
func (s *Store) Take(ctx context.Context, n int) ([]storage.Number, error) {
	if n <= 0 {
		return nil, storage.ErrInvalidCount
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeStorage, "begin take", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx,
		"SELECT id, number FROM phones ORDER BY id ASC LIMIT ?", n)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeStorage, "select numbers", err)
	}

	var taken []storage.Number
	for rows.Next() {
		var number storage.Number
		if err := rows.Scan(&number.ID, &number.Value); err != nil {
			_ = rows.Close()
			return nil, platformerrors.Wrap(platformerrors.CodeStorage, "scan number", err)
		}
		taken = append(taken, number)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, platformerrors.Wrap(platformerrors.CodeStorage, "iterate numbers", err)
	}
	if err := rows.Close(); err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeStorage, "close rows", err)
	}

	if len(taken) == 0 {
		if err := tx.Commit(); err != nil {
			return nil, platformerrors.Wrap(platformerrors.CodeStorage, "commit empty take", err)
		}
		return nil, nil
	}

	placeholders := make([]string, len(taken))
	args := make([]any, len(taken))
	for i, number := range taken {
		placeholders[i] = "?"
		args[i] = number.ID
	}
	query := fmt.Sprintf("DELETE FROM phones WHERE id IN (%s)",
		strings.Join(placeholders, ","))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeStorage, "delete numbers", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeStorage, "commit take", err)
	}
	return taken, nil
}

// Count reports the pool size.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	row := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM phones")
	if err := row.Scan(&count); err != nil {
		return 0, platformerrors.Wrap(platformerrors.CodeStorage, "count phones", err)
	}
	return count, nil
}

// AddNumber appends one number to the pool. The bot never calls this; it
// is the bulk-load path used by the seed command.
func (s *Store) AddNumber(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return platformerrors.New(platformerrors.CodeValidation, "number value is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO phones (number) VALUES (?)", value); err != nil {
		return platformerrors.Wrap(platformerrors.CodeStorage, "insert number", err)
	}
	return nil
}
