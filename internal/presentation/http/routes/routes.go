package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bodega-api/internal/config"
	domainRepo "github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/internal/presentation/http/handler"
	"github.com/sangkips/bodega-api/internal/presentation/http/middleware"
	"github.com/sangkips/bodega-api/pkg/utils"
)

// Permission names checked by the routes. Seeded by the database package.
const (
	PermManageExchangeRates  = "manage-exchange-rates"
	PermManageProducts       = "manage-products"
	PermManageSales          = "manage-sales"
	PermManageCredits        = "manage-credits"
	PermManageCustomers      = "manage-customers"
	PermManageSuppliers      = "manage-suppliers"
	PermManageSupplierOrders = "manage-supplier-orders"
	PermManageExpenses       = "manage-expenses"
	PermManageDailyClose     = "manage-daily-close"
	PermViewDashboard        = "view-dashboard"
	PermManageUsers          = "manage-users"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	ExchangeRate  *handler.ExchangeRateHandler
	Product       *handler.ProductHandler
	Category      *handler.CategoryHandler
	Customer      *handler.CustomerHandler
	Supplier      *handler.SupplierHandler
	Sale          *handler.SaleHandler
	Credit        *handler.CreditHandler
	SupplierOrder *handler.SupplierOrderHandler
	Expense       *handler.ExpenseHandler
	DailyClose    *handler.DailyCloseHandler
	Dashboard     *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes, limited per client IP
		public := v1.Group("")
		if deps.RateLimiter != nil {
			public.Use(deps.RateLimiter.Middleware())
		}
		registerAuthRoutes(public, h)

		// Protected routes, limited per user
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:     deps.IdempotencyRepo,
		TTL:      24 * time.Hour,
		Required: true,
	})

	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", middleware.RequirePermission(PermViewDashboard), h.Dashboard.GetStats)

	registerExchangeRateRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerCategoryRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerSaleRoutes(protected, h, idempotent)
	registerCreditRoutes(protected, h, idempotent)
	registerSupplierRoutes(protected, h)
	registerSupplierOrderRoutes(protected, h)
	registerExpenseRoutes(protected, h)
	registerDailyCloseRoutes(protected, h)
	registerUserRoutes(protected, h)
}

func registerExchangeRateRoutes(protected *gin.RouterGroup, h *Handlers) {
	rates := protected.Group("/exchange-rates")
	{
		// Every staff member sees the rate in force
		rates.GET("/current", h.ExchangeRate.Current)
		rates.GET("", middleware.RequirePermission(PermManageExchangeRates), h.ExchangeRate.List)
		rates.POST("", middleware.RequirePermission(PermManageExchangeRates), h.ExchangeRate.Set)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		// Reads serve the checkout screen
		products.GET("", h.Product.List)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/quote", h.Product.Quote)

		manage := products.Group("")
		manage.Use(middleware.RequirePermission(PermManageProducts))
		manage.POST("", h.Product.Create)
		manage.PUT("/:id", h.Product.Update)
		manage.DELETE("/:id", h.Product.Delete)
		manage.GET("/:id/adjustments", h.Product.ListAdjustments)
		manage.POST("/:id/adjustments", h.Product.AdjustStock)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", middleware.RequirePermission(PermManageProducts), h.Category.Create)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		// Cashiers pick the customer of a credit sale
		read := middleware.RequirePermission(PermManageCustomers, PermManageSales)
		customers.GET("", read, h.Customer.List)
		customers.GET("/:id", read, h.Customer.Get)
		customers.GET("/:id/credit", read, h.Customer.CreditSummary)

		manage := middleware.RequirePermission(PermManageCustomers)
		customers.POST("", manage, h.Customer.Create)
		customers.PUT("/:id", manage, h.Customer.Update)
		customers.DELETE("/:id", manage, h.Customer.Delete)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission(PermManageSales))
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotent, h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
	}
}

func registerCreditRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	credits := protected.Group("/credits")
	credits.Use(middleware.RequirePermission(PermManageCredits))
	{
		credits.GET("", h.Credit.List)
		credits.GET("/:id", h.Credit.Get)
		credits.GET("/:id/balance", h.Credit.Balance)
		credits.POST("/:id/payments", idempotent, h.Credit.RecordPayment)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequirePermission(PermManageSuppliers, PermManageSupplierOrders))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)

		manage := middleware.RequirePermission(PermManageSuppliers)
		suppliers.POST("", manage, h.Supplier.Create)
		suppliers.PUT("/:id", manage, h.Supplier.Update)
		suppliers.DELETE("/:id", manage, h.Supplier.Delete)
	}
}

func registerSupplierOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/supplier-orders")
	orders.Use(middleware.RequirePermission(PermManageSupplierOrders))
	{
		orders.GET("", h.SupplierOrder.List)
		orders.POST("", h.SupplierOrder.Create)
		orders.GET("/:id", h.SupplierOrder.Get)
		orders.POST("/:id/receive", h.SupplierOrder.Receive)
		orders.POST("/:id/cancel", h.SupplierOrder.Cancel)
		orders.POST("/:id/pay", h.SupplierOrder.Pay)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	expenses.Use(middleware.RequirePermission(PermManageExpenses))
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
	}
}

func registerDailyCloseRoutes(protected *gin.RouterGroup, h *Handlers) {
	closes := protected.Group("/daily-closes")
	closes.Use(middleware.RequirePermission(PermManageDailyClose))
	{
		closes.GET("", h.DailyClose.List)
		closes.POST("", h.DailyClose.Create)
		closes.GET("/:date", h.DailyClose.Get)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission(PermManageUsers))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.PUT("/:id/active", h.User.SetActive)
	}

	protected.GET("/roles", middleware.RequirePermission(PermManageUsers), h.User.ListRoles)
}
