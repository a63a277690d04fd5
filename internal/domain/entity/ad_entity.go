package entity

import "time"

// Ad is a classified listing owned by exactly one account.
// AuthorID is fixed at creation and never changes afterwards.
//
// The Author* display fields are filled by the repository with a live
// join against the users table at read time; they are never persisted
// on the ads row. Comments work the other way around (see Comment).
type Ad struct {
	ID          int
	Title       string
	Price       int
	Description string
	Image       string
	AuthorID    int

	AuthorEmail     string
	AuthorFirstName string
	AuthorLastName  string
	AuthorPhone     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
