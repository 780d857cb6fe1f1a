package discount

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Lookup(ctx context.Context, code string) (*domain.DiscountCode, error) {
	const q = `
SELECT code, kind, value_off
FROM discounts
WHERE code = $1
LIMIT 1
`
	var d domain.DiscountCode
	if err := r.pool.QueryRow(ctx, q, code).Scan(&d.Code, &d.Kind, &d.ValueOff); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
