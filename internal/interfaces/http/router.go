package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LogFlow-api/internal/application/importer"
	"github.com/jhoicas/LogFlow-api/internal/application/inventory"
	"github.com/jhoicas/LogFlow-api/internal/application/orders"
	"github.com/jhoicas/LogFlow-api/internal/application/usecase"
	"github.com/jhoicas/LogFlow-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Importer         *importer.UseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	ClientUC         *usecase.ClientUseCase
	OrderUC          *usecase.OrderUseCase
	OrderStatus      *orders.UpdateStatusUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	JWTSecret        string
	Log              *logger.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token; las que escriben
// exigen rol admin u operador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(RoleAdmin, RoleOperador)
	readers := RequireRole(RoleAdmin, RoleOperador, RoleConsulta)

	importHandler := NewImportHandler(deps.Importer, deps.Log)
	upload := api.Group("/upload", writers)
	upload.Post("/excel", importHandler.Upload)
	upload.Post("/process", importHandler.Process)
	api.Get("/imports", readers, importHandler.History)

	productHandler := NewProductHandler(deps.ProductUC, deps.Replenishment, deps.Log)
	products := api.Group("/products", readers)
	products.Get("/", productHandler.List)
	products.Get("/restock", productHandler.Restock)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", productHandler.Movements)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Log)
	api.Get("/categories", readers, categoryHandler.List)

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Log)
	api.Post("/inventory/movements", writers, inventoryHandler.RegisterMovement)

	clientHandler := NewClientHandler(deps.ClientUC, deps.Log)
	api.Get("/clients", readers, clientHandler.List)
	api.Get("/clients/:id", readers, clientHandler.GetByID)

	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderStatus, deps.Log)
	api.Post("/orders/:id/status", writers, orderHandler.UpdateStatus)
	orderRoutes := api.Group("/orders", readers)
	orderRoutes.Get("/", orderHandler.List)
	orderRoutes.Get("/overdue", orderHandler.Overdue)
	orderRoutes.Get("/:id", orderHandler.GetByID)
	orderRoutes.Get("/:id/history", orderHandler.History)
}
