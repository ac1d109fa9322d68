// Package sqlite implements directory persistence over SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/louisbranch/annuaire/internal/directory/storage"
	"github.com/louisbranch/annuaire/internal/directory/storage/sqlite/migrations"
	"github.com/louisbranch/annuaire/internal/phone"
	platformerrors "github.com/louisbranch/annuaire/internal/platform/errors"
	"github.com/louisbranch/annuaire/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// cleanedMobile strips whitespace and formatting punctuation from the
// stored mobile column so fingerprint candidates can match by substring.
// The column may hold several numbers in inconsistent formats.
const cleanedMobile = "REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(" +
	"IFNULL(mobile,''),' ',''),'+',''),'-',''),'.',''),'(',''),')',''),',',''),';','')"

const recordColumns = "id, firstname, lastname, email, mobile, " +
	"streetNumber, streetType, streetName, postalCode, city, " +
	"iban, bic, birthDate, age"

// Store implements storage.Store over a SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a directory SQLite store and applies bundled migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
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

// Search finds up to storage.SearchLimit records for the query.
//
// When the query contains a digit, up to two deduplicated fingerprint
// candidates (raw and canonical form) are matched as substrings of the
// cleaned mobile column. When that yields nothing, or the query has no
// digits, every whitespace token must match firstname or lastname
// case-insensitively.
func (s *Store) Search(ctx context.Context, query string) ([]storage.Record, error) {
	query = strings.TrimSpace(query)

	if phone.HasDigit(query) {
		candidates := fingerprintCandidates(query)
		if len(candidates) > 0 {
			records, err := s.searchByFingerprint(ctx, candidates)
			if err != nil {
				return nil, err
			}
			if len(records) > 0 {
				return records, nil
			}
		}
	}

	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, storage.ErrEmptyQuery
	}
	return s.searchByName(ctx, tokens)
}

// Count reports the directory size.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	row := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM people")
	if err := row.Scan(&count); err != nil {
		return 0, platformerrors.Wrap(platformerrors.CodeStorage, "count people", err)
	}
	return count, nil
}

// InsertRecord adds one directory row. The bot never calls this; it is
// the bulk-load path used by the seed command.
func (s *Store) InsertRecord(ctx context.Context, record storage.Record) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO people (firstname, lastname, email, mobile,
    streetNumber, streetType, streetName, postalCode, city,
    iban, bic, birthDate, age)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullable(record.Firstname), nullable(record.Lastname),
		nullable(record.Email), nullable(record.Mobile),
		nullable(record.StreetNumber), nullable(record.StreetType),
		nullable(record.StreetName), nullable(record.PostalCode),
		nullable(record.City), nullable(record.IBAN), nullable(record.BIC),
		nullable(record.BirthDate), nullable(record.Age),
	)
	if err != nil {
		return platformerrors.Wrap(platformerrors.CodeStorage, "insert record", err)
	}
	return nil
}

// fingerprintCandidates derives the deduplicated match keys for a
// phone-shaped query: the fingerprint of the raw input and, when a
// canonical form exists, the fingerprint of that form.
func fingerprintCandidates(query string) []string {
	var candidates []string
	seen := map[string]bool{}
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			candidates = append(candidates, c)
		}
	}
	add(phone.Fingerprint(query))
	if canonical, ok := phone.Normalize(query); ok {
		add(phone.Fingerprint(canonical))
	}
	return candidates
}

func (s *Store) searchByFingerprint(ctx context.Context, candidates []string) ([]storage.Record, error) {
	clauses := make([]string, 0, len(candidates))
	args := make([]any, 0, len(candidates)+1)
	for _, candidate := range candidates {
		clauses = append(clauses, cleanedMobile+" LIKE '%' || ? || '%'")
		args = append(args, candidate)
	}
	query := fmt.Sprintf("SELECT %s FROM people WHERE %s LIMIT ?",
		recordColumns, strings.Join(clauses, " OR "))
	args = append(args, storage.SearchLimit)

	return s.queryRecords(ctx, query, args)
}

func (s *Store) searchByName(ctx context.Context, tokens []string) ([]storage.Record, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + recordColumns + " FROM people WHERE 1=1")
	args := make([]any, 0, 2*len(tokens)+1)
	for _, token := range tokens {
		sb.WriteString(" AND (LOWER(IFNULL(firstname,'')) LIKE ? OR LOWER(IFNULL(lastname,'')) LIKE ?)")
		pattern := "%" + strings.ToLower(token) + "%"
		args = append(args, pattern, pattern)
	}
	sb.WriteString(" LIMIT ?")
	args = append(args, storage.SearchLimit)

	return s.queryRecords(ctx, sb.String(), args)
}

func (s *Store) queryRecords(ctx context.Context, query string, args []any) ([]storage.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeStorage, "query people", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []storage.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, platformerrors.Wrap(platformerrors.CodeStorage, "scan record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodeStorage, "iterate people", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (storage.Record, error) {
	var record storage.Record
	var firstname, lastname, email, mobile sql.NullString
	var streetNumber, streetType, streetName, postalCode, city sql.NullString
	var iban, bic, birthDate, age sql.NullString
	if err := rows.Scan(
		&record.ID,
		&firstname, &lastname, &email, &mobile,
		&streetNumber, &streetType, &streetName, &postalCode, &city,
		&iban, &bic, &birthDate, &age,
	); err != nil {
		return storage.Record{}, err
	}
	record.Firstname = firstname.String
	record.Lastname = lastname.String
	record.Email = email.String
	record.Mobile = mobile.String
	record.StreetNumber = streetNumber.String
	record.StreetType = streetType.String
	record.StreetName = streetName.String
	record.PostalCode = postalCode.String
	record.City = city.String
	record.IBAN = iban.String
	record.BIC = bic.String
	record.BirthDate = birthDate.String
	record.Age = age.String
	return record, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
