package repository

import "time"

// Game represents a games row. Slug is the catalog entry id.
type Game struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Theme       string
	Target      string
	SortOrder   int
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
