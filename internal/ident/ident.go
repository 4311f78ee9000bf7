// Package ident allocates collision-resistant identifiers for banks,
// vignettes, and images.
package ident

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// tokenLen is the length of short identifiers used for banks and images.
// 16 hex characters of UUID randomness keeps ids readable in file names
// while leaving collisions to the retry loop below.
const tokenLen = 16

// maxAttempts bounds the collision retry loop in NewToken.
const maxAttempts = 8

// ErrIDExhausted is returned when a fresh id cannot be found after
// repeated collisions. In practice this indicates a broken taken check.
var ErrIDExhausted = errors.New("id space exhausted")

// NewID returns a full UUID string. UUID v7 keeps ids time-sortable;
// falls back to v4 if v7 generation fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// NewToken returns a short random token that the given predicate reports
// as unused. Colliding candidates are rejected and regenerated rather
// than silently accepted.
func NewToken(taken func(string) bool) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		tok := shortToken()
		if taken == nil || !taken(tok) {
			return tok, nil
		}
	}
	return "", ErrIDExhausted
}

// shortToken derives a fixed-length token from UUID randomness.
func shortToken() string {
	raw := strings.ReplaceAll(NewID(), "-", "")
	// v7 front-loads the timestamp; take the random tail.
	return raw[len(raw)-tokenLen:]
}
