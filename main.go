// ERP API server.
//
// @title ERP API
// @version 1.0
// @description ERP backend: products, categories, inventory and role-gated access.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/erp-suite/backend/internal/config"
	"github.com/erp-suite/backend/internal/db"
	"github.com/erp-suite/backend/internal/handler"
	"github.com/erp-suite/backend/internal/model"
	"github.com/erp-suite/backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	cfg := config.Load()
	ctx := context.Background()

	pg, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pg.Close()

	if err := pg.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	authService, err := service.NewAuthService(pg, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to init auth service: %v", err)
	}

	userService := service.NewUserService(pg)
	if err := userService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		log.Fatalf("Failed to ensure admin user: %v", err)
	}

	categoryService := service.NewCategoryService(pg)
	productService := service.NewProductService(pg)
	inventoryService := service.NewInventoryService(pg)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)

	slowThresholdMs, err := strconv.Atoi(cfg.Perf.SlowRequestThresholdMs)
	if err != nil || slowThresholdMs <= 0 {
		log.Fatalf("Invalid SLOW_REQUEST_THRESHOLD_MS: %q", cfg.Perf.SlowRequestThresholdMs)
	}

	router := gin.Default()
	router.Use(handler.RequestTimingMiddleware(time.Duration(slowThresholdMs) * time.Millisecond))
	if origins := splitOrigins(cfg.CORS.AllowedOrigins); len(origins) > 0 {
		router.Use(handler.CORSMiddleware(origins))
	}

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	api := router.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)
	api.GET("/openapi.json", handler.OpenAPIDoc)

	protected := api.Group("", handler.AuthMiddleware(authService))
	protected.GET("/auth/me", authHandler.Me)

	// Reads are open to any authenticated user; writes need Admin or Manager.
	writers := handler.RequireRoles(model.RoleAdmin, model.RoleManager)

	protected.GET("/categories", categoryHandler.ListCategories)
	protected.GET("/categories/:id", categoryHandler.GetCategory)
	protected.POST("/categories", writers, categoryHandler.CreateCategory)
	protected.PUT("/categories/:id", writers, categoryHandler.UpdateCategory)
	protected.DELETE("/categories/:id", writers, categoryHandler.DeleteCategory)

	protected.GET("/products", productHandler.ListProducts)
	protected.GET("/products/with-inventory", productHandler.ListProductsWithInventory)
	protected.GET("/products/sku/:sku", productHandler.GetProductBySKU)
	protected.GET("/products/category/:id", productHandler.ListProductsByCategory)
	protected.GET("/products/:id", productHandler.GetProduct)
	protected.POST("/products", writers, productHandler.CreateProduct)
	protected.PUT("/products/:id", writers, productHandler.UpdateProduct)
	protected.DELETE("/products/:id", writers, productHandler.DeleteProduct)

	protected.GET("/inventory", inventoryHandler.ListInventory)
	protected.GET("/inventory/low-stock", inventoryHandler.ListLowStock)
	protected.GET("/inventory/product/:id", inventoryHandler.GetInventoryByProduct)
	protected.GET("/inventory/transactions", inventoryHandler.ListTransactions)
	protected.POST("/inventory/transactions", writers, inventoryHandler.CreateTransaction)
	protected.POST("/inventory", writers, inventoryHandler.CreateInventory)
	protected.PUT("/inventory/:id", writers, inventoryHandler.UpdateInventory)
	protected.DELETE("/inventory/:id", writers, inventoryHandler.DeleteInventory)

	admins := handler.RequireRoles(model.RoleAdmin)
	protected.GET("/roles", admins, userHandler.ListRoles)
	protected.GET("/users", admins, userHandler.ListUsers)
	protected.GET("/users/:id", admins, userHandler.GetUser)
	protected.POST("/users", admins, userHandler.CreateUser)
	protected.PUT("/users/:id", admins, userHandler.UpdateUser)
	protected.DELETE("/users/:id", admins, userHandler.DeleteUser)
	protected.POST("/users/:id/roles", admins, userHandler.AssignRole)
	protected.DELETE("/users/:id/roles/:role", admins, userHandler.RemoveRole)

	addr := ":" + cfg.Server.Port
	log.Printf("Starting ERP API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
