package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type openCartRequest struct {
	ItemID         string `json:"itemId" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required"`
	UnitPriceCents *int64 `json:"unitPriceCents"`
}

func openCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := currentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		var in openCartRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if in.UnitPriceCents != nil && *in.UnitPriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unit price must not be negative"})
			return
		}
		cart, err := svc.OpenWithItem(c.Request.Context(), cartsvc.OpenInput{
			ItemID:         in.ItemID,
			Quantity:       in.Quantity,
			UnitPriceCents: in.UnitPriceCents,
			AccountID:      account.ID,
		})
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cart)
	}
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func applyDiscountHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.ApplyDiscount(c.Request.Context(), c.Param("id"), c.Param("code"))
		if err != nil {
			// A repeated application is a no-op, not a failure: the
			// unchanged cart comes back with a 200.
			if errors.Is(err, domain.ErrDiscountApplied) {
				c.JSON(http.StatusOK, cart)
				return
			}
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func purchaseHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := currentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		cart, err := svc.Finalize(c.Request.Context(), c.Param("id"), account.ID)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyOrdered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientCredit):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
