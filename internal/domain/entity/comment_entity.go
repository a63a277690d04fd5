package entity

// Comment is a text annotation on an ad.
//
// AuthorFirstName and AuthorImage are snapshots taken from the author
// account when the comment is created. They deliberately stay as they
// were even if the account is later renamed or gets a new avatar.
// CreatedAt is epoch milliseconds, set once at creation.
type Comment struct {
	ID              int
	Text            string
	CreatedAt       int64
	AuthorFirstName string
	AuthorImage     string
	AuthorID        int
	AuthorEmail     string
	AdID            int
}
