package cart

import (
	"context"

	"storefront/internal/domain"
)

type CreateCartInput struct {
	AccountID      string
	ItemID         string
	UnitPriceCents int64
	Quantity       int
}

type Repository interface {
	CreateWithItem(ctx context.Context, in CreateCartInput) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	// ApplyDiscount reduces the total and records the code in one
	// transaction. When a discount is already recorded it returns the
	// unchanged cart together with domain.ErrDiscountApplied.
	ApplyDiscount(ctx context.Context, cartID string, code domain.DiscountCode) (*domain.Cart, error)
	// Finalize debits the account and flips the ordered flag atomically.
	Finalize(ctx context.Context, cartID, accountID string) (*domain.Cart, error)
	ListOrderedByAccount(ctx context.Context, accountID string) ([]domain.Cart, error)
}
