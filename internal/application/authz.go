package application

import "github.com/oksasatya/go-classifieds-api/internal/domain/entity"

// canModify is the single authorization rule gating every mutation:
// the acting account may alter a record iff it is the record's author
// or carries the administrator role. Pure predicate, no I/O; callers
// that get false abort before touching the record or its attachment.
func canModify(actor *entity.User, ownerEmail string) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.Email == ownerEmail
}
