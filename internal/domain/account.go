package domain

import "time"

// Account is a registered shopper with a spendable store-credit balance.
// The balance is only ever reduced inside the purchase transaction.
type Account struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	PasswordHash     string    `json:"-"`
	StoreCreditCents int64     `json:"storeCreditCents"`
	CreatedAt        time.Time `json:"createdAt"`
}
