// Package storage defines persistence contracts for the number pool.
package storage

import (
	"context"

	"github.com/louisbranch/annuaire/internal/platform/errors"
)

// ErrInvalidCount indicates a take was requested for a non-positive count.
var ErrInvalidCount = errors.New(errors.CodeValidation, "count must be positive")

// Number is one unissued phone number in the pool. ID orders issuance;
// rows are seeded ahead of time and destroyed the instant they are taken.
type Number struct {
	ID    int64
	Value string
}

// Store hands out pool numbers.
type Store interface {
	// Take atomically removes and returns the n oldest numbers. When
	// fewer than n remain it returns all of them; an exhausted pool
	// yields an empty result, not an error. Two concurrent takes never
	// return overlapping numbers.
	Take(ctx context.Context, n int) ([]Number, error)

	// Count reports the pool size. Advisory only: it may be stale the
	// moment it returns and must never drive issuance decisions.
	Count(ctx context.Context) (int64, error)
}
