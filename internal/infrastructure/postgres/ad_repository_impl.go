package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	"github.com/oksasatya/go-classifieds-api/internal/domain/repository"
)

// adSelect joins the owning account so read paths see the author's
// current profile fields, not a snapshot.
const adSelect = `
	SELECT a.id, a.title, a.price, a.description, a.image, a.author,
	       u.email, u.first_name, u.last_name, u.phone,
	       a.created_at, a.updated_at
	FROM ads a
	JOIN users u ON u.id = a.author
`

type AdRepository struct {
	pool *pgxpool.Pool
}

func NewAdRepository(pool *pgxpool.Pool) *AdRepository {
	return &AdRepository{pool: pool}
}

func scanAd(row pgx.Row) (*entity.Ad, error) {
	ad := &entity.Ad{}
	err := row.Scan(&ad.ID, &ad.Title, &ad.Price, &ad.Description, &ad.Image, &ad.AuthorID,
		&ad.AuthorEmail, &ad.AuthorFirstName, &ad.AuthorLastName, &ad.AuthorPhone,
		&ad.CreatedAt, &ad.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return ad, nil
}

func (r *AdRepository) Create(ctx context.Context, ad *entity.Ad) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ads (title, price, description, image, author)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, ad.Title, ad.Price, ad.Description, ad.Image, ad.AuthorID)
	return row.Scan(&ad.ID, &ad.CreatedAt, &ad.UpdatedAt)
}

func (r *AdRepository) GetByID(ctx context.Context, id int) (*entity.Ad, error) {
	return scanAd(r.pool.QueryRow(ctx, adSelect+`WHERE a.id = $1`, id))
}

func (r *AdRepository) List(ctx context.Context) ([]entity.Ad, error) {
	return r.listRows(ctx, adSelect+`ORDER BY a.id`)
}

func (r *AdRepository) ListByAuthor(ctx context.Context, authorID int) ([]entity.Ad, error) {
	return r.listRows(ctx, adSelect+`WHERE a.author = $1 ORDER BY a.id`, authorID)
}

func (r *AdRepository) listRows(ctx context.Context, sql string, args ...any) ([]entity.Ad, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []entity.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		ads = append(ads, *ad)
	}
	return ads, rows.Err()
}

func (r *AdRepository) Update(ctx context.Context, ad *entity.Ad) error {
	ad.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE ads
		SET title = $1, price = $2, description = $3, image = $4, updated_at = $5
		WHERE id = $6
	`, ad.Title, ad.Price, ad.Description, ad.Image, ad.UpdatedAt, ad.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *AdRepository) Delete(ctx context.Context, id int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM ads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return nil
}

var _ repository.AdRepository = (*AdRepository)(nil)
