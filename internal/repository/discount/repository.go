package discount

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the discount registry: a static code lookup. Codes are
// seeded out of band; there are no writes at runtime.
type Repository interface {
	Lookup(ctx context.Context, code string) (*domain.DiscountCode, error)
}
