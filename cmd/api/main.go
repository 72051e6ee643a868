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
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/application/sales"
	"github.com/tu-usuario/congelados-pos/internal/application/usecase"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
	"github.com/tu-usuario/congelados-pos/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/congelados-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/congelados-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/congelados-pos/internal/interfaces/http"
	"github.com/tu-usuario/congelados-pos/pkg/config"
	"github.com/tu-usuario/congelados-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Persistencia: PostgreSQL si hay base configurada; si no, almacén en
	// memoria para demo y desarrollo.
	var (
		productRepo repository.ProductRepository
		clientRepo  repository.ClientRepository
		saleRepo    repository.SaleRepository
		statsRepo   repository.StatsRepository
		txRunner    sales.SaleTxRunner
	)
	if cfg.DB.Enabled() {
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		productRepo = postgres.NewProductRepository(pool)
		clientRepo = postgres.NewClientRepository(pool)
		saleRepo = postgres.NewSaleRepository(pool)
		statsRepo = postgres.NewStatsRepository(pool)
		txRunner = postgres.NewTxRunner(pool, cfg.POS.InvoicePrefix)
		log.Info().Msg("persistencia: PostgreSQL")
	} else {
		store := memory.New(cfg.POS.InvoicePrefix)
		if cfg.App.Env == "development" {
			store.SeedDemo()
			log.Info().Msg("datos de demostración cargados")
		}
		productRepo = store.Products()
		clientRepo = store.Clients()
		saleRepo = store.Sales()
		statsRepo = store.Stats()
		txRunner = store
		log.Warn().Msg("persistencia: memoria (los datos se pierden al apagar)")
	}

	productUC := usecase.NewProductUseCase(productRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	dashboardUC := usecase.NewDashboardUseCase(statsRepo, decimal.NewFromInt(int64(cfg.POS.LowStockThreshold)))
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, saleRepo)

	pdfGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	salePDFUC := sales.NewPDFUseCase(saleRepo, pdfGenerator)

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
		Title:    "Congelados POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		ClientUC:    clientUC,
		DashboardUC: dashboardUC,
		CreateSale:  createSaleUC,
		SalePDF:     salePDFUC,
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
