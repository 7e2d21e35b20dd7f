package service

import (
	"context"
	"strings"

	"github.com/erp-suite/backend/internal/db"
	"github.com/erp-suite/backend/internal/model"
)

type productRepo interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	ListProductsWithInventory(ctx context.Context) ([]model.ProductWithInventory, error)
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*model.Product, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
	CreateProduct(ctx context.Context, req model.ProductRequest) (int64, error)
	UpdateProduct(ctx context.Context, id int64, req model.ProductRequest) error
	DeleteProduct(ctx context.Context, id int64) error
}

type ProductService struct {
	repo productRepo
}

func NewProductService(repo productRepo) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *ProductService) ListProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return s.repo.ListProductsByCategory(ctx, categoryID)
}

func (s *ProductService) ListProductsWithInventory(ctx context.Context) ([]model.ProductWithInventory, error) {
	return s.repo.ListProductsWithInventory(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	prod, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return prod, nil
}

func (s *ProductService) GetProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	prod, err := s.repo.GetProductBySKU(ctx, sku)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return prod, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req model.ProductRequest) (*model.Product, error) {
	req.SKU = strings.TrimSpace(req.SKU)

	exists, err := s.repo.SKUExists(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	id, err := s.repo.CreateProduct(ctx, req)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req model.ProductRequest) error {
	req.SKU = strings.TrimSpace(req.SKU)

	if err := s.repo.UpdateProduct(ctx, id, req); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
