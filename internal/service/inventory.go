package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp-suite/backend/internal/db"
	"github.com/erp-suite/backend/internal/model"
	"github.com/google/uuid"
)

type inventoryRepo interface {
	ListInventory(ctx context.Context) ([]model.Inventory, error)
	ListLowStockInventory(ctx context.Context, threshold int64) ([]model.Inventory, error)
	GetInventoryByID(ctx context.Context, id int64) (*model.Inventory, error)
	GetInventoryByProductID(ctx context.Context, productID int64) (*model.Inventory, error)
	CreateInventory(ctx context.Context, req model.CreateInventoryRequest) (int64, error)
	UpdateInventory(ctx context.Context, id int64, req model.UpdateInventoryRequest) error
	DeleteInventory(ctx context.Context, id int64) error
	ListInventoryTransactions(ctx context.Context, productID int64) ([]model.InventoryTransaction, error)
	CreateInventoryTransaction(ctx context.Context, t model.InventoryTransaction) (int64, error)
}

type InventoryService struct {
	repo inventoryRepo
}

func NewInventoryService(repo inventoryRepo) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) ListInventory(ctx context.Context) ([]model.Inventory, error) {
	return s.repo.ListInventory(ctx)
}

func (s *InventoryService) ListLowStock(ctx context.Context, threshold int64) ([]model.Inventory, error) {
	if threshold <= 0 {
		threshold = 10
	}
	return s.repo.ListLowStockInventory(ctx, threshold)
}

func (s *InventoryService) GetInventoryByProduct(ctx context.Context, productID int64) (*model.Inventory, error) {
	inv, err := s.repo.GetInventoryByProductID(ctx, productID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *InventoryService) CreateInventory(ctx context.Context, req model.CreateInventoryRequest) (*model.Inventory, error) {
	id, err := s.repo.CreateInventory(ctx, req)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	inv, err := s.repo.GetInventoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InventoryService) UpdateInventory(ctx context.Context, id int64, req model.UpdateInventoryRequest) error {
	if err := s.repo.UpdateInventory(ctx, id, req); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *InventoryService) DeleteInventory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteInventory(ctx, id); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *InventoryService) ListTransactions(ctx context.Context, productID int64) ([]model.InventoryTransaction, error) {
	return s.repo.ListInventoryTransactions(ctx, productID)
}

// RecordTransaction writes a stock movement on behalf of the authenticated
// user and applies it to the product's on-hand quantity. A reference number
// is generated when the request carries none.
func (s *InventoryService) RecordTransaction(ctx context.Context, userID int64, req model.CreateTransactionRequest) (*model.InventoryTransaction, error) {
	ref := req.ReferenceNumber
	if ref == "" {
		ref = fmt.Sprintf("TXN-%s", uuid.NewString())
	}

	txn := model.InventoryTransaction{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		TransactionType: req.TransactionType,
		ReferenceNumber: ref,
		Notes:           req.Notes,
		CreatedBy:       userID,
	}

	id, err := s.repo.CreateInventoryTransaction(ctx, txn)
	if err != nil {
		if errors.Is(err, db.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		return nil, err
	}

	txn.ID = id
	return &txn, nil
}
