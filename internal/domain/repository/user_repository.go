package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
)

// ErrNoRows is returned by every repository when a lookup does not
// resolve to a row. Services translate it into their own not-found
// signalling instead of letting it escape.
var ErrNoRows = errors.New("repository: no rows")

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int) error
}
