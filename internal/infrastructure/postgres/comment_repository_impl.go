package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	"github.com/oksasatya/go-classifieds-api/internal/domain/repository"
)

// commentSelect joins the author's email for the ownership check only.
// author_first_name and author_image come from the comments row itself:
// they are the snapshot taken at creation, never the account's current
// values.
const commentSelect = `
	SELECT c.id, c.text, c.created_at, c.author_first_name, c.author_image,
	       c.author, u.email, c.ad
	FROM comments c
	JOIN users u ON u.id = c.author
`

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{}
	err := row.Scan(&c.ID, &c.Text, &c.CreatedAt, &c.AuthorFirstName, &c.AuthorImage,
		&c.AuthorID, &c.AuthorEmail, &c.AdID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (text, created_at, author_first_name, author_image, author, ad)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, c.Text, c.CreatedAt, c.AuthorFirstName, c.AuthorImage, c.AuthorID, c.AdID)
	return row.Scan(&c.ID)
}

func (r *CommentRepository) GetByID(ctx context.Context, id int) (*entity.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx, commentSelect+`WHERE c.id = $1`, id))
}

func (r *CommentRepository) ListByAd(ctx context.Context, adID int) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, commentSelect+`WHERE c.ad = $1 ORDER BY c.id`, adID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []entity.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	res, err := r.pool.Exec(ctx, `UPDATE comments SET text = $1 WHERE id = $2`, c.Text, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
