package repository

import (
	"context"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
)

// AdRepository defines persistence operations for ads.
// Read methods fill the Author* display fields of entity.Ad with a
// live join against the owning account.
type AdRepository interface {
	Create(ctx context.Context, ad *entity.Ad) error
	GetByID(ctx context.Context, id int) (*entity.Ad, error)
	List(ctx context.Context) ([]entity.Ad, error)
	ListByAuthor(ctx context.Context, authorID int) ([]entity.Ad, error)
	Update(ctx context.Context, ad *entity.Ad) error
	Delete(ctx context.Context, id int) error
}
