package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fardsis/fsis-api/internal/application/analytics"
	"github.com/fardsis/fsis-api/internal/application/auth"
	"github.com/fardsis/fsis-api/internal/application/billing"
	"github.com/fardsis/fsis-api/internal/application/catalog"
	"github.com/fardsis/fsis-api/internal/application/orders"
	"github.com/fardsis/fsis-api/internal/application/purchasing"
	"github.com/fardsis/fsis-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CatalogUC     *catalog.CatalogUseCase
	PurchaseUC    *purchasing.PurchaseUseCase
	OrderUC       *orders.OrderUseCase
	BillingUC     *billing.BillingUseCase
	DashboardUC   *analytics.DashboardUseCase
	JWTSecret     string
	CookieMinutes int
}

// Router registra las rutas de la API. Cada grupo protegido lleva su
// allow-list explícita; Admin aparece listado en cada una porque no hay
// jerarquía de roles (el gate compara por igualdad exacta).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público; login con rate limit estricto)
	loginLimiter := NewLoginLimiter()
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieMinutes)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", loginLimiter.Handler(), authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas: el gate resuelve la sesión en cada petición.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo: Purchaser, Admin
	catalogGroup := protected.Group("/catalog", RequireRole(entity.RolePurchaser, entity.RoleAdmin))
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogGroup.Get("/items", catalogHandler.ListItems)
	catalogGroup.Get("/items/:id", catalogHandler.GetItem)
	catalogGroup.Get("/distributors", catalogHandler.ListDistributors)

	// Compras
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	invoiceHandler := NewInvoiceHandler(deps.BillingUC)
	purchases := protected.Group("/purchases")
	purchases.Post("/", RequireRole(entity.RolePurchaser, entity.RoleAdmin), purchaseHandler.Create)
	purchases.Get("/", RequireRole(entity.RolePurchaser, entity.RoleAccounting, entity.RoleAdmin), purchaseHandler.List)
	purchases.Get("/:id", RequireRole(entity.RolePurchaser, entity.RoleAccounting, entity.RoleAdmin), purchaseHandler.GetByID)

	// Ciclo de vida y cargos: Accounting, Admin
	billingGate := RequireRole(entity.RoleAccounting, entity.RoleAdmin)
	purchases.Post("/:id/preview", billingGate, invoiceHandler.Preview)
	purchases.Post("/:id/approve", billingGate, purchaseHandler.Approve)
	purchases.Post("/:id/charge", billingGate, purchaseHandler.Charge)
	purchases.Post("/:id/complete", billingGate, purchaseHandler.Complete)
	purchases.Post("/:id/cancel", billingGate, purchaseHandler.Cancel)

	// Recibos PDF: Accounting, Admin
	invoices := protected.Group("/invoices", billingGate)
	invoices.Get("/purchase/:id", invoiceHandler.Receipt)

	// Pedidos de clientes: todos los roles del lado de ventas
	orderGroup := protected.Group("/orders", RequireRole(
		entity.RoleCustomer, entity.RoleCSR, entity.RoleTL, entity.RoleAccounting, entity.RoleAdmin,
	))
	orderHandler := NewOrderHandler(deps.OrderUC)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)

	// Dashboard: allow-list vacía = cualquier autenticado
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequireRole(), dashboardHandler.Summary)
}
