package domain

import "time"

// Article is the domain entity for a blog post. Body holds the raw
// markdown source; rendering happens at read time and never mutates it.
type Article struct {
	ID         int64
	Title      string
	Body       string
	AuthorID   int64
	TotalViews int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
