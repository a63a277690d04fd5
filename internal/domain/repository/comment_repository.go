package repository

import (
	"context"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
)

// CommentRepository defines persistence operations for ad comments.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id int) (*entity.Comment, error)
	ListByAd(ctx context.Context, adID int) ([]entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id int) error
}
