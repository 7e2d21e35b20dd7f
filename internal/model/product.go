package model

import "time"

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type Product struct {
	ID           int64     `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CategoryID   *int64    `json:"categoryId,omitempty"`
	CategoryName string    `json:"categoryName,omitempty"`
	Price        float64   `json:"price"`
	Cost         float64   `json:"cost"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductWithInventory carries the summed on-hand quantity across
// locations alongside the product row.
type ProductWithInventory struct {
	Product
	QuantityOnHand int64 `json:"quantityOnHand"`
}

type ProductRequest struct {
	SKU         string  `json:"sku" binding:"required,max=50"`
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=500"`
	CategoryID  *int64  `json:"categoryId"`
	Price       float64 `json:"price" binding:"gte=0"`
	Cost        float64 `json:"cost" binding:"gte=0"`
}
