package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/erp-suite/backend/internal/model"
	"github.com/gin-gonic/gin"
)

type inventoryService interface {
	ListInventory(ctx context.Context) ([]model.Inventory, error)
	ListLowStock(ctx context.Context, threshold int64) ([]model.Inventory, error)
	GetInventoryByProduct(ctx context.Context, productID int64) (*model.Inventory, error)
	CreateInventory(ctx context.Context, req model.CreateInventoryRequest) (*model.Inventory, error)
	UpdateInventory(ctx context.Context, id int64, req model.UpdateInventoryRequest) error
	DeleteInventory(ctx context.Context, id int64) error
	ListTransactions(ctx context.Context, productID int64) ([]model.InventoryTransaction, error)
	RecordTransaction(ctx context.Context, userID int64, req model.CreateTransactionRequest) (*model.InventoryTransaction, error)
}

type InventoryHandler struct {
	svc inventoryService
}

func NewInventoryHandler(svc inventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ListInventory godoc
// @Summary List inventory with product details
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Inventory
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/inventory [get]
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	items, err := h.svc.ListInventory(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListLowStock godoc
// @Summary List inventory at or below a stock threshold
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param threshold query int false "Quantity threshold" default(10)
// @Success 200 {array} model.Inventory
// @Failure 400,401 {object} model.ErrorResponse
// @Router /api/v1/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	threshold := int64(10)
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
			return
		}
		threshold = parsed
	}
	items, err := h.svc.ListLowStock(c.Request.Context(), threshold)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetInventoryByProduct godoc
// @Summary Get inventory for a product
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} model.Inventory
// @Failure 400,401,404 {object} model.ErrorResponse
// @Router /api/v1/inventory/product/{id} [get]
func (h *InventoryHandler) GetInventoryByProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	inv, err := h.svc.GetInventoryByProduct(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// CreateInventory godoc
// @Summary Create an inventory record
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateInventoryRequest true "Inventory"
// @Success 201 {object} model.Inventory
// @Failure 400,401,403,409 {object} model.ErrorResponse
// @Router /api/v1/inventory [post]
func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	var req model.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	inv, err := h.svc.CreateInventory(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// UpdateInventory godoc
// @Summary Update an inventory record
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inventory ID"
// @Param request body model.UpdateInventoryRequest true "Inventory"
// @Success 200 {object} model.StatusResponse
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /api/v1/inventory/{id} [put]
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req model.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.svc.UpdateInventory(c.Request.Context(), id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.StatusResponse{Status: "updated"})
}

// DeleteInventory godoc
// @Summary Delete an inventory record
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inventory ID"
// @Success 200 {object} model.StatusResponse
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /api/v1/inventory/{id} [delete]
func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.DeleteInventory(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.StatusResponse{Status: "deleted"})
}

// ListTransactions godoc
// @Summary List inventory transactions
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param productId query int false "Filter by product ID"
// @Success 200 {array} model.InventoryTransaction
// @Failure 400,401 {object} model.ErrorResponse
// @Router /api/v1/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var productID int64
	if raw := c.Query("productId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}
		productID = parsed
	}
	txns, err := h.svc.ListTransactions(c.Request.Context(), productID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// CreateTransaction godoc
// @Summary Record an inventory transaction
// @Description Writes a stock movement attributed to the authenticated user and applies it to the product's on-hand quantity.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateTransactionRequest true "Transaction"
// @Success 201 {object} model.InventoryTransaction
// @Failure 400,401,403,409 {object} model.ErrorResponse
// @Router /api/v1/inventory/transactions [post]
func (h *InventoryHandler) CreateTransaction(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	txn, err := h.svc.RecordTransaction(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}
