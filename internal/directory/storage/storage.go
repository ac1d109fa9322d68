// Package storage defines persistence contracts for the people directory.
package storage

import (
	"context"

	"github.com/louisbranch/annuaire/internal/platform/errors"
)

// ErrEmptyQuery indicates a search was requested with no usable tokens.
var ErrEmptyQuery = errors.New(errors.CodeValidation, "search query is empty")

// SearchLimit bounds how many records one search may return.
const SearchLimit = 20

// Record is one directory entry. The directory is read-only from the
// bot's perspective; rows are bulk-loaded ahead of time. Empty string
// means the field is absent.
type Record struct {
	ID           int64
	Firstname    string
	Lastname     string
	Email        string
	Mobile       string // may hold several numbers with arbitrary punctuation
	StreetNumber string
	StreetType   string
	StreetName   string
	PostalCode   string
	City         string
	IBAN         string
	BIC          string
	BirthDate    string // possibly a full ISO timestamp
	Age          string
}

// Store reads directory records.
type Store interface {
	// Search returns up to SearchLimit records matching the query, in
	// storage order. Phone-shaped queries are matched by fingerprint
	// substring against the mobile field first; name-token matching is
	// the fallback. Zero matches is a nil slice, not an error; only
	// infrastructure failures return errors, except ErrEmptyQuery when
	// the query holds no tokens at all.
	Search(ctx context.Context, query string) ([]Record, error)

	// Count reports the directory size for status display.
	Count(ctx context.Context) (int64, error)
}
