// Package auth gates bot access behind a static party allow-list.
package auth

import (
	"strconv"
	"strings"
)

// Gate checks party identifiers against a fixed allow-list.
type Gate struct {
	allowed map[int64]struct{}
}

// NewGate builds a gate from the given party IDs. An empty list means the
// gate is open: every party is allowed.
func NewGate(partyIDs []int64) *Gate {
	allowed := make(map[int64]struct{}, len(partyIDs))
	for _, id := range partyIDs {
		allowed[id] = struct{}{}
	}
	return &Gate{allowed: allowed}
}

// Allowed reports whether the party may use the bot.
func (g *Gate) Allowed(partyID int64) bool {
	if g == nil || len(g.allowed) == 0 {
		return true
	}
	_, ok := g.allowed[partyID]
	return ok
}

// ParseAllowList reads a comma-separated list of numeric party IDs,
// silently skipping blanks and non-numeric entries.
func ParseAllowList(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
