package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/analytics"
	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReceivePurchase  *inventory.ReceivePurchaseUseCase
	AutoRestock      *inventory.AutoRestockUseCase
	SalesPerformance *analytics.SalesPerformanceUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Inventario: recepción y reposición
	invGroup := api.Group("/inventory", RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero))
	inventoryHandler := NewInventoryHandler(deps.ReceivePurchase, deps.AutoRestock)
	invGroup.Post("/receipts", inventoryHandler.Receive)
	invGroup.Post("/restock", inventoryHandler.Restock)

	// Reportes
	reports := api.Group("/reports", RequireRole(jwt.RoleAdmin, jwt.RoleGerente))
	reportHandler := NewReportHandler(deps.SalesPerformance)
	reports.Get("/sales-performance", reportHandler.SalesPerformance)
	reports.Get("/sales-performance/pdf", reportHandler.SalesPerformancePDF)
}
