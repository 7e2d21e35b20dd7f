package model

import "time"

const (
	TransactionTypeIn         = "IN"
	TransactionTypeOut        = "OUT"
	TransactionTypeAdjustment = "ADJUSTMENT"
)

type Inventory struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"productId"`
	ProductSKU  string    `json:"productSku,omitempty"`
	ProductName string    `json:"productName,omitempty"`
	Quantity    int64     `json:"quantity"`
	Location    string    `json:"location,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type CreateInventoryRequest struct {
	ProductID int64  `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"gte=0"`
	Location  string `json:"location" binding:"max=100"`
}

type UpdateInventoryRequest struct {
	Quantity int64  `json:"quantity" binding:"gte=0"`
	Location string `json:"location" binding:"max=100"`
}

type InventoryTransaction struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"productId"`
	ProductSKU      string    `json:"productSku,omitempty"`
	Quantity        int64     `json:"quantity"`
	TransactionType string    `json:"transactionType"`
	ReferenceNumber string    `json:"referenceNumber,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedBy       int64     `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateTransactionRequest struct {
	ProductID       int64  `json:"productId" binding:"required"`
	Quantity        int64  `json:"quantity" binding:"required,gt=0"`
	TransactionType string `json:"transactionType" binding:"required,oneof=IN OUT ADJUSTMENT"`
	ReferenceNumber string `json:"referenceNumber" binding:"max=50"`
	Notes           string `json:"notes" binding:"max=500"`
}
