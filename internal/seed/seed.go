package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type itemSeed struct {
	Name        string
	PriceCents  int64
	Image       string
	Description string
}

type discountSeed struct {
	Code     string
	Kind     string
	ValueOff int64
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	items := []itemSeed{
		{
			Name:        "Demo T-Shirt",
			PriceCents:  1999,
			Image:       "/files/demo-shirt.png",
			Description: "Soft cotton tee for demo purposes",
		},
		{
			Name:        "Demo Mug",
			PriceCents:  1299,
			Image:       "/files/demo-mug.png",
			Description: "Ceramic mug with demo logo",
		},
	}

	for _, it := range items {
		if err := upsertItem(ctx, pool, it); err != nil {
			return fmt.Errorf("upsert item %s: %w", it.Name, err)
		}
	}

	discounts := []discountSeed{
		{Code: "25", Kind: "percent", ValueOff: 25},
		{Code: "HALF", Kind: "percent", ValueOff: 50},
		{Code: "SAVE10", Kind: "amount", ValueOff: 1000},
	}

	for _, d := range discounts {
		if err := upsertDiscount(ctx, pool, d); err != nil {
			return fmt.Errorf("upsert discount %s: %w", d.Code, err)
		}
	}

	return nil
}

func upsertItem(ctx context.Context, pool *pgxpool.Pool, it itemSeed) error {
	const q = `
INSERT INTO items (name, price_cents, image, description)
VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO UPDATE
SET price_cents = EXCLUDED.price_cents,
    image = EXCLUDED.image,
    description = EXCLUDED.description
`
	_, err := pool.Exec(ctx, q, it.Name, it.PriceCents, it.Image, it.Description)
	return err
}

func upsertDiscount(ctx context.Context, pool *pgxpool.Pool, d discountSeed) error {
	const q = `
INSERT INTO discounts (code, kind, value_off)
VALUES ($1, $2, $3)
ON CONFLICT (code) DO UPDATE
SET kind = EXCLUDED.kind,
    value_off = EXCLUDED.value_off
`
	_, err := pool.Exec(ctx, q, d.Code, d.Kind, d.ValueOff)
	return err
}
