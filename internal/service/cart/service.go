package cart

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

// Service is the cart engine: it opens carts, applies discount codes and
// finalizes purchases against an account's store credit.
type Service struct {
	repo      cartRepo
	items     itemRepo
	discounts discountRepo
}

type cartRepo interface {
	CreateWithItem(ctx context.Context, in cartrepo.CreateCartInput) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	ApplyDiscount(ctx context.Context, cartID string, code domain.DiscountCode) (*domain.Cart, error)
	Finalize(ctx context.Context, cartID, accountID string) (*domain.Cart, error)
	ListOrderedByAccount(ctx context.Context, accountID string) ([]domain.Cart, error)
}

type itemRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Item, error)
}

type discountRepo interface {
	Lookup(ctx context.Context, code string) (*domain.DiscountCode, error)
}

func New(repo cartrepo.Repository, items itemRepo, discounts discountRepo) *Service {
	return &Service{repo: repo, items: items, discounts: discounts}
}

type OpenInput struct {
	ItemID         string `json:"itemId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents *int64 `json:"unitPriceCents,omitempty"`
	AccountID      string `json:"-"`
}

// OpenWithItem creates a cart holding a single line item. The unit price is
// captured now, from the override when given or from the catalog otherwise,
// and stays fixed for the cart's lifetime.
func (s *Service) OpenWithItem(ctx context.Context, in OpenInput) (*domain.Cart, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	itemID := strings.TrimSpace(in.ItemID)
	if itemID == "" {
		return nil, errors.New("itemId required")
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	unitPrice := item.PriceCents
	if in.UnitPriceCents != nil {
		if *in.UnitPriceCents < 0 {
			return nil, errors.New("unit price must not be negative")
		}
		unitPrice = *in.UnitPriceCents
	}

	return s.repo.CreateWithItem(ctx, cartrepo.CreateCartInput{
		AccountID:      in.AccountID,
		ItemID:         item.ID,
		UnitPriceCents: unitPrice,
		Quantity:       in.Quantity,
	})
}

// ApplyDiscount resolves the code in the registry and applies it at most
// once. When the cart already carries a discount the unchanged cart is
// returned together with domain.ErrDiscountApplied.
func (s *Service) ApplyDiscount(ctx context.Context, cartID, code string) (*domain.Cart, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}
	d, err := s.discounts.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.repo.ApplyDiscount(ctx, cartID, *d)
}

// Finalize debits the account and marks the cart ordered. The purchasing
// account is passed explicitly; the engine holds no session state.
func (s *Service) Finalize(ctx context.Context, cartID, accountID string) (*domain.Cart, error) {
	return s.repo.Finalize(ctx, cartID, accountID)
}

func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.repo.GetByID(ctx, cartID)
}

// ListOrdered returns the account's finalized carts, newest first.
func (s *Service) ListOrdered(ctx context.Context, accountID string) ([]domain.Cart, error) {
	return s.repo.ListOrderedByAccount(ctx, accountID)
}
