package models

import (
	"time"

	"github.com/google/uuid"
)

// SlugReservation records a slug claimed within a scope.
// Stored in entropy_slug_reservations, unique on (scope, slug).
type SlugReservation struct {
	ID    uuid.UUID `json:"id"`
	Scope string    `json:"scope"` // Entity kind the slug is unique within, e.g. "blog-post"
	Slug  string    `json:"slug"`
	// Base is the slug before any numeric suffix was appended.
	Base      string    `json:"base"`
	Suffix    int       `json:"suffix"` // 0 when Slug == Base
	CreatedAt time.Time `json:"created_at"`
}
