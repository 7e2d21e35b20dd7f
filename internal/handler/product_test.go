package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp-suite/backend/internal/model"
	"github.com/erp-suite/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type fakeProductService struct{}

func (f *fakeProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return []model.Product{}, nil
}

func (f *fakeProductService) ListProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return []model.Product{}, nil
}

func (f *fakeProductService) ListProductsWithInventory(ctx context.Context) ([]model.ProductWithInventory, error) {
	return []model.ProductWithInventory{}, nil
}

func (f *fakeProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return nil, service.ErrNotFound
}

func (f *fakeProductService) GetProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	return nil, service.ErrNotFound
}

func (f *fakeProductService) CreateProduct(ctx context.Context, req model.ProductRequest) (*model.Product, error) {
	return &model.Product{ID: 1, SKU: req.SKU, Name: req.Name}, nil
}

func (f *fakeProductService) UpdateProduct(ctx context.Context, id int64, req model.ProductRequest) error {
	return nil
}

func (f *fakeProductService) DeleteProduct(ctx context.Context, id int64) error {
	return nil
}

func newProductRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProductHandler(&fakeProductService{})
	r.GET("/api/v1/products/:id", h.GetProduct)
	r.POST("/api/v1/products", h.CreateProduct)
	return r
}

func TestCreateProductValidation(t *testing.T) {
	r := newProductRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(`{"name":"No SKU"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetProductInvalidID(t *testing.T) {
	r := newProductRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	r := newProductRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
