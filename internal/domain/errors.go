package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidQuantity indicates a non-positive line item quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrDiscountApplied indicates the cart already carries a discount.
	// Callers receive it together with the unchanged cart; it is not fatal.
	ErrDiscountApplied = errors.New("discount already applied")
	// ErrAlreadyOrdered indicates the cart was finalized before.
	ErrAlreadyOrdered = errors.New("cart already ordered")
	// ErrInsufficientCredit indicates the account balance cannot cover the cart total.
	ErrInsufficientCredit = errors.New("insufficient store credit")
)
