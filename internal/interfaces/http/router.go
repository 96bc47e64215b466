package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/navbahor-erp/internal/application/auth"
	"github.com/jhoicas/navbahor-erp/internal/application/brigade"
	"github.com/jhoicas/navbahor-erp/internal/application/monitoring"
	"github.com/jhoicas/navbahor-erp/internal/application/usecase"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	DirectoryUC *usecase.DirectoryUseCase
	Warehouse   *warehouse.Service
	Field       *brigade.Service
	Dashboard   *monitoring.DashboardUseCase
	Renderer    WaybillRenderer
	JWTSecret   string
}

// Router registra las rutas de la API. Los permisos por rol se validan en los casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Warehouse)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", productHandler.LowStock)
	products.Post("/:id/reconcile", productHandler.Reconcile)

	transactions := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.Warehouse, deps.Renderer)
	transactions.Post("/", txHandler.Record)
	transactions.Get("/", txHandler.List)
	transactions.Get("/:id/document", txHandler.Document)
	transactions.Get("/:id/waybill.pdf", txHandler.WaybillPDF)

	brigadier := protected.Group("/brigadier")
	brigadierHandler := NewBrigadierHandler(deps.Warehouse)
	brigadier.Post("/transactions", brigadierHandler.CreateTransaction)
	brigadier.Get("/inventory", brigadierHandler.Inventory)

	directoryHandler := NewDirectoryHandler(deps.DirectoryUC)
	protected.Post("/farmers", directoryHandler.CreateFarmer)
	protected.Get("/farmers", directoryHandler.ListFarmers)
	protected.Get("/farmers/:id", directoryHandler.GetFarmer)
	protected.Put("/farmers/:id", directoryHandler.UpdateFarmer)
	protected.Put("/farmers/:id/password", directoryHandler.UpdateFarmerCredentials)
	protected.Put("/farmers/:id/contracts", directoryHandler.UpsertContract)
	protected.Post("/brigadiers", directoryHandler.CreateBrigadier)
	protected.Get("/brigadiers", directoryHandler.ListBrigadiers)
	protected.Get("/brigadiers/:id", directoryHandler.GetBrigadier)
	protected.Post("/contours", directoryHandler.CreateContour)
	protected.Get("/contours", directoryHandler.ListContours)
	protected.Put("/contours/:id/brigadier", directoryHandler.AssignContour)

	field := protected.Group("/field")
	fieldHandler := NewFieldHandler(deps.Field)
	field.Get("/stages", fieldHandler.ListStages)
	field.Post("/stages", fieldHandler.CreateStage)
	field.Delete("/stages/:id", fieldHandler.DeleteStage)
	field.Post("/plan", fieldHandler.AssignPlan)
	field.Get("/activities", fieldHandler.ListActivities)
	field.Put("/activities", fieldHandler.UpdateActivity)
	field.Delete("/activities", fieldHandler.ResetActivities)

	protected.Get("/monitoring", NewMonitoringHandler(deps.Dashboard).Summary)
}
