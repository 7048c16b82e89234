package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a stored cart line: product reference plus desired quantity.
// A quantity of zero or below is never stored; such lines are removed.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is the per-user staging document, keyed by the owning user.
type Cart struct {
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) FindItem(productID uuid.UUID) (int, bool) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i, true
		}
	}

	return -1, false
}

// CartViewItem is a cart line with its product resolved at read time.
type CartViewItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
}

// CartView is the materialized projection returned to callers. Lines whose
// product no longer exists are dropped from the view, not from the stored cart.
type CartView struct {
	UserID    uuid.UUID      `json:"user_id"`
	Items     []CartViewItem `json:"items"`
	Total     float64        `json:"total"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
}
