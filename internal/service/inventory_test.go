package service

import (
	"context"
	"strings"
	"testing"

	"github.com/erp-suite/backend/internal/db"
	"github.com/erp-suite/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

type fakeInventoryRepo struct {
	quantities map[int64]int64
	txns       []model.InventoryTransaction
	threshold  int64
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{quantities: map[int64]int64{}}
}

func (f *fakeInventoryRepo) ListInventory(ctx context.Context) ([]model.Inventory, error) {
	return []model.Inventory{}, nil
}

func (f *fakeInventoryRepo) ListLowStockInventory(ctx context.Context, threshold int64) ([]model.Inventory, error) {
	f.threshold = threshold
	return []model.Inventory{}, nil
}

func (f *fakeInventoryRepo) GetInventoryByID(ctx context.Context, id int64) (*model.Inventory, error) {
	return &model.Inventory{ID: id}, nil
}

func (f *fakeInventoryRepo) GetInventoryByProductID(ctx context.Context, productID int64) (*model.Inventory, error) {
	qty, ok := f.quantities[productID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &model.Inventory{ProductID: productID, Quantity: qty}, nil
}

func (f *fakeInventoryRepo) CreateInventory(ctx context.Context, req model.CreateInventoryRequest) (int64, error) {
	f.quantities[req.ProductID] = req.Quantity
	return 1, nil
}

func (f *fakeInventoryRepo) UpdateInventory(ctx context.Context, id int64, req model.UpdateInventoryRequest) error {
	return nil
}

func (f *fakeInventoryRepo) DeleteInventory(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeInventoryRepo) ListInventoryTransactions(ctx context.Context, productID int64) ([]model.InventoryTransaction, error) {
	return f.txns, nil
}

func (f *fakeInventoryRepo) CreateInventoryTransaction(ctx context.Context, t model.InventoryTransaction) (int64, error) {
	switch t.TransactionType {
	case model.TransactionTypeIn:
		f.quantities[t.ProductID] += t.Quantity
	case model.TransactionTypeOut:
		if f.quantities[t.ProductID] < t.Quantity {
			return 0, db.ErrInsufficientStock
		}
		f.quantities[t.ProductID] -= t.Quantity
	case model.TransactionTypeAdjustment:
		f.quantities[t.ProductID] = t.Quantity
	}
	f.txns = append(f.txns, t)
	return int64(len(f.txns)), nil
}

func TestRecordTransactionGeneratesReference(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo())

	txn, err := svc.RecordTransaction(context.Background(), 7, model.CreateTransactionRequest{
		ProductID:       1,
		Quantity:        5,
		TransactionType: model.TransactionTypeIn,
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if !strings.HasPrefix(txn.ReferenceNumber, "TXN-") {
		t.Fatalf("expected generated reference, got %q", txn.ReferenceNumber)
	}
	if txn.CreatedBy != 7 {
		t.Fatalf("expected creator 7, got %d", txn.CreatedBy)
	}
}

func TestRecordTransactionKeepsProvidedReference(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo())

	txn, err := svc.RecordTransaction(context.Background(), 7, model.CreateTransactionRequest{
		ProductID:       1,
		Quantity:        5,
		TransactionType: model.TransactionTypeIn,
		ReferenceNumber: "PO-1234",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if txn.ReferenceNumber != "PO-1234" {
		t.Fatalf("expected PO-1234, got %q", txn.ReferenceNumber)
	}
}

func TestRecordTransactionInsufficientStock(t *testing.T) {
	repo := newFakeInventoryRepo()
	repo.quantities[1] = 3
	svc := NewInventoryService(repo)

	_, err := svc.RecordTransaction(context.Background(), 7, model.CreateTransactionRequest{
		ProductID:       1,
		Quantity:        5,
		TransactionType: model.TransactionTypeOut,
	})
	if err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestListLowStockDefaultThreshold(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := NewInventoryService(repo)

	if _, err := svc.ListLowStock(context.Background(), 0); err != nil {
		t.Fatalf("low stock failed: %v", err)
	}
	if repo.threshold != 10 {
		t.Fatalf("expected default threshold 10, got %d", repo.threshold)
	}
}
