package item

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Item, error) {
	const q = `
SELECT id::text, name, price_cents, COALESCE(image, ''), COALESCE(description, ''), created_at
FROM items
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("item repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.PriceCents, &it.Image, &it.Description, &it.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("item repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	const q = `
SELECT id::text, name, price_cents, COALESCE(image, ''), COALESCE(description, ''), created_at
FROM items
WHERE id = $1
`
	var it domain.Item
	err := r.pool.QueryRow(ctx, q, id).Scan(&it.ID, &it.Name, &it.PriceCents, &it.Image, &it.Description, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("item repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("item repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, item domain.Item) (*domain.Item, error) {
	const q = `
INSERT INTO items (name, price_cents, image, description)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
ON CONFLICT (name) DO UPDATE SET
    price_cents = EXCLUDED.price_cents,
    image = EXCLUDED.image,
    description = EXCLUDED.description
RETURNING id::text, created_at
`
	res := item
	err := r.pool.QueryRow(ctx, q, item.Name, item.PriceCents, item.Image, item.Description).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("item repo: upsert name=%q error=%v", item.Name, err)
		return nil, err
	}
	r.logger.Printf("item repo: upserted name=%q id=%s", res.Name, res.ID)
	return &res, nil
}
