package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/fardsis/fsis-api/internal/application/analytics"
	"github.com/fardsis/fsis-api/internal/application/auth"
	"github.com/fardsis/fsis-api/internal/application/billing"
	"github.com/fardsis/fsis-api/internal/application/catalog"
	"github.com/fardsis/fsis-api/internal/application/orders"
	"github.com/fardsis/fsis-api/internal/application/purchasing"
	infrapdf "github.com/fardsis/fsis-api/internal/infrastructure/pdf"
	"github.com/fardsis/fsis-api/internal/infrastructure/postgres"
	httpRouter "github.com/fardsis/fsis-api/internal/interfaces/http"
	"github.com/fardsis/fsis-api/pkg/config"
	"github.com/fardsis/fsis-api/pkg/logger"
	"github.com/fardsis/fsis-api/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	distributorRepo := postgres.NewDistributorRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	formatter := money.NewFormatter(cfg.Billing.Currency)
	taxRate := cfg.Billing.DefaultTaxRate

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewCatalogUseCase(itemRepo, distributorRepo)
	purchaseUC := purchasing.NewPurchaseUseCase(txRunner, purchaseRepo, distributorRepo, itemRepo, movementRepo, taxRate, formatter)
	orderUC := orders.NewOrderUseCase(orderRepo, customerRepo, taxRate, formatter)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(formatter)
	billingUC := billing.NewBillingUseCase(purchaseRepo, pdfGenerator, taxRate, formatter)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, formatter)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FSIS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CatalogUC:     catalogUC,
		PurchaseUC:    purchaseUC,
		OrderUC:       orderUC,
		BillingUC:     billingUC,
		DashboardUC:   dashboardUC,
		JWTSecret:     cfg.JWT.Secret,
		CookieMinutes: cfg.JWT.Expiration,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
