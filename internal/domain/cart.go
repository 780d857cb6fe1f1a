package domain

import "time"

// Cart aggregates line items into an order-in-progress. Once Ordered flips
// to true the cart and its items are a read-only purchase record owned by
// AccountID.
type Cart struct {
	ID              string     `json:"id"`
	AccountID       *string    `json:"accountId,omitempty"`
	AppliedDiscount *string    `json:"appliedDiscount,omitempty"`
	TotalCents      int64      `json:"totalCents"`
	Ordered         bool       `json:"ordered"`
	CreatedAt       time.Time  `json:"createdAt"`
	Items           []CartItem `json:"items,omitempty"`
}

// CartItem is one cart line. UnitPriceCents is captured when the line is
// added and never resynchronized to the catalog price.
type CartItem struct {
	ID             string    `json:"id"`
	CartID         string    `json:"cartId"`
	ItemID         string    `json:"itemId"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	CreatedAt      time.Time `json:"createdAt"`
}
