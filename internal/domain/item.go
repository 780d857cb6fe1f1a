package domain

import "time"

// Item is an immutable catalog entry. Image holds a URL reference; file
// storage itself is outside this service.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PriceCents  int64     `json:"priceCents"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
