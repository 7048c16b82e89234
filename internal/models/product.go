package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot captures the product fields embedded into an order item at
// checkout time. Orders keep these copies so a later price or title change
// never alters an existing order.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	}
}

type ProductSnapshot struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
}

type CreateProductRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required,min=1,max=100"`
	ImageURL    string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type ProductQuery struct {
	Category  string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}
