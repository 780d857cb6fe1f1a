package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) CreateWithItem(ctx context.Context, in CreateCartInput) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	total := in.UnitPriceCents * int64(in.Quantity)

	var cartID string
	if err := tx.QueryRow(ctx, `
INSERT INTO carts (account_id, total_cents)
VALUES ($1, $2)
RETURNING id::text
`, in.AccountID, total).Scan(&cartID); err != nil {
		return nil, mapFKViolation(err)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, item_id, unit_price_cents, quantity)
VALUES ($1, $2, $3, $4)
`, cartID, in.ItemID, in.UnitPriceCents, in.Quantity); err != nil {
		return nil, mapFKViolation(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, cartID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	const q = `
SELECT id::text, account_id::text, applied_discount, total_cents, ordered, created_at
FROM carts
WHERE id = $1
`
	var cart domain.Cart
	var accountID *string
	var applied *string
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&cart.ID,
		&accountID,
		&applied,
		&cart.TotalCents,
		&cart.Ordered,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	cart.AccountID = accountID
	cart.AppliedDiscount = applied

	const linesQuery = `
SELECT id::text, cart_id::text, item_id::text, unit_price_cents, quantity, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartItem
		if err := rows.Scan(
			&line.ID,
			&line.CartID,
			&line.ItemID,
			&line.UnitPriceCents,
			&line.Quantity,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

// ApplyDiscount locks the cart row, so the reduced total and the discount
// marker are written in one statement and either both commit or neither
// does. Concurrent applications serialize on the lock: the first one wins,
// later ones observe the marker.
func (r *postgresRepo) ApplyDiscount(ctx context.Context, cartID string, code domain.DiscountCode) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var applied *string
	var total int64
	var ordered bool
	err = tx.QueryRow(ctx, `
SELECT applied_discount, total_cents, ordered
FROM carts
WHERE id = $1
FOR UPDATE
`, cartID).Scan(&applied, &total, &ordered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if ordered {
		return nil, domain.ErrAlreadyOrdered
	}
	if applied != nil {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			return nil, err
		}
		cart, err := r.GetByID(ctx, cartID)
		if err != nil {
			return nil, err
		}
		return cart, domain.ErrDiscountApplied
	}

	newTotal := total - code.ReductionFor(total)
	if _, err := tx.Exec(ctx, `
UPDATE carts
SET total_cents = $1, applied_discount = $2
WHERE id = $3
`, newTotal, code.Code, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, cartID)
}

// Finalize is the one-way open -> ordered transition. The cart row is
// locked before the account row is touched; the debit itself is a
// compare-and-debit so two purchases racing on the same account cannot
// overdraw it.
func (r *postgresRepo) Finalize(ctx context.Context, cartID, accountID string) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var total int64
	var ordered bool
	err = tx.QueryRow(ctx, `
SELECT total_cents, ordered
FROM carts
WHERE id = $1
FOR UPDATE
`, cartID).Scan(&total, &ordered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if ordered {
		return nil, domain.ErrAlreadyOrdered
	}

	cmd, err := tx.Exec(ctx, `
UPDATE accounts
SET store_credit_cents = store_credit_cents - $1
WHERE id = $2 AND store_credit_cents >= $1
`, total, accountID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrInsufficientCredit
	}

	if _, err := tx.Exec(ctx, `
UPDATE carts
SET ordered = true, account_id = $1
WHERE id = $2
`, accountID, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, cartID)
}

func (r *postgresRepo) ListOrderedByAccount(ctx context.Context, accountID string) ([]domain.Cart, error) {
	const q = `
SELECT id::text, account_id::text, applied_discount, total_cents, ordered, created_at
FROM carts
WHERE account_id = $1 AND ordered
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carts []domain.Cart
	for rows.Next() {
		var cart domain.Cart
		var acc *string
		var applied *string
		if err := rows.Scan(&cart.ID, &acc, &applied, &cart.TotalCents, &cart.Ordered, &cart.CreatedAt); err != nil {
			return nil, err
		}
		cart.AccountID = acc
		cart.AppliedDiscount = applied
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return carts, nil
	}

	ids := make([]string, 0, len(carts))
	byID := make(map[string]*domain.Cart, len(carts))
	for i := range carts {
		ids = append(ids, carts[i].ID)
		byID[carts[i].ID] = &carts[i]
	}

	lineRows, err := r.pool.Query(ctx, `
SELECT id::text, cart_id::text, item_id::text, unit_price_cents, quantity, created_at
FROM cart_items
WHERE cart_id = ANY($1)
ORDER BY created_at ASC
`, ids)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var line domain.CartItem
		if err := lineRows.Scan(&line.ID, &line.CartID, &line.ItemID, &line.UnitPriceCents, &line.Quantity, &line.CreatedAt); err != nil {
			return nil, err
		}
		if cart, ok := byID[line.CartID]; ok {
			cart.Items = append(cart.Items, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	return carts, nil
}

func mapFKViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return domain.ErrNotFound
	}
	return err
}
