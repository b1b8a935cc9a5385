package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bodega-api/internal/application/service"
	"github.com/sangkips/bodega-api/internal/config"
	"github.com/sangkips/bodega-api/internal/infrastructure/database"
	"github.com/sangkips/bodega-api/internal/infrastructure/repository"
	"github.com/sangkips/bodega-api/internal/presentation/http/handler"
	"github.com/sangkips/bodega-api/internal/presentation/http/middleware"
	"github.com/sangkips/bodega-api/internal/presentation/http/routes"
	"github.com/sangkips/bodega-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	rateRepo := repository.NewExchangeRateRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	adjustmentRepo := repository.NewInventoryAdjustmentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	orderRepo := repository.NewSupplierOrderRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	closeRepo := repository.NewDailyCloseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	calendar := service.NewCalendar(cfg.Ledger.Location)
	rateService := service.NewExchangeRateService(rateRepo, calendar)
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, roleRepo, transactor)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, adjustmentRepo, transactor, rateService, calendar)
	customerService := service.NewCustomerService(customerRepo, creditRepo, rateService)
	supplierService := service.NewSupplierService(supplierRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, adjustmentRepo, customerRepo, creditRepo, transactor, rateService, calendar, cfg.Ledger.CreditTermDays)
	creditService := service.NewCreditService(creditRepo, transactor, rateService, calendar)
	orderService := service.NewSupplierOrderService(orderRepo, supplierRepo, productRepo, adjustmentRepo, transactor, rateService, calendar)
	expenseService := service.NewExpenseService(expenseRepo, rateService, calendar)
	closeService := service.NewDailyCloseService(closeRepo, saleRepo, expenseRepo, transactor, calendar)
	dashboardService := service.NewDashboardService(saleRepo, creditRepo, productRepo, reportRepo, rateService, calendar)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		User:          handler.NewUserHandler(userService),
		ExchangeRate:  handler.NewExchangeRateHandler(rateService),
		Product:       handler.NewProductHandler(productService),
		Category:      handler.NewCategoryHandler(categoryService),
		Customer:      handler.NewCustomerHandler(customerService),
		Supplier:      handler.NewSupplierHandler(supplierService),
		Sale:          handler.NewSaleHandler(saleService),
		Credit:        handler.NewCreditHandler(creditService),
		SupplierOrder: handler.NewSupplierOrderHandler(orderService),
		Expense:       handler.NewExpenseHandler(expenseService),
		DailyClose:    handler.NewDailyCloseHandler(closeService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Requests:        cfg.RateLimit.Requests,
		Window:          time.Duration(cfg.RateLimit.Duration) * time.Second,
		CleanupInterval: 5 * time.Minute,
		EntryTTL:        10 * time.Minute,
	})
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Expired idempotency keys are swept hourly
	go sweepIdempotencyKeys(ctx, idempotencyRepo.DeleteExpired, time.Hour)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s, ledger timezone: %s", cfg.App.Env, cfg.Ledger.Location)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shut down: %v", err)
	}
}

func sweepIdempotencyKeys(ctx context.Context, deleteExpired func(context.Context, time.Time) (int64, error), every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := deleteExpired(ctx, now)
			if err != nil {
				log.Printf("Failed to delete expired idempotency keys: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Deleted %d expired idempotency keys", n)
			}
		}
	}
}
