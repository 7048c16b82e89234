package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the three known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}

	return false
}

// IsTerminal reports whether no further transition may leave s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderItem embeds a full product snapshot rather than a live reference, so
// the order total never changes retroactively.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
}

// Order is immutable after creation except for Status and UpdatedAt.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// UserEmail is attached only on projections served to admin callers.
	UserEmail string `json:"userEmail,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}

type CheckoutResponse struct {
	OrderID uuid.UUID `json:"orderId"`
}

type OrderQuery struct {
	// UserID scopes the listing to one owner. Nil means all owners, which is
	// only permitted for admin callers.
	UserID    *uuid.UUID
	Status    OrderStatus
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int

	// IncludeEmail joins the owner's email into each row (admin listings).
	IncludeEmail bool
}
