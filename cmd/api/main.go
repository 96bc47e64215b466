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
	"github.com/jhoicas/navbahor-erp/internal/application/auth"
	"github.com/jhoicas/navbahor-erp/internal/application/brigade"
	"github.com/jhoicas/navbahor-erp/internal/application/monitoring"
	"github.com/jhoicas/navbahor-erp/internal/application/notify"
	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/application/usecase"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/infrastructure/cache"
	"github.com/jhoicas/navbahor-erp/internal/infrastructure/events"
	"github.com/jhoicas/navbahor-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/navbahor-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/navbahor-erp/internal/interfaces/http"
	"github.com/jhoicas/navbahor-erp/pkg/config"
	"github.com/jhoicas/navbahor-erp/pkg/logger"
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

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("preparar migraciones")
		}
		if err := m.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = m.Close()
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de vistas: Redis si está configurado, si no memoria del proceso.
	var viewCache ports.ViewCache
	if cfg.Redis.Address != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rc.Close()
		viewCache = rc
	} else {
		viewCache = cache.NewMemoryCache()
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	brigadierStockRepo := postgres.NewBrigadierStockRepository(pool)
	waybillRepo := postgres.NewWaybillRepository(pool)
	farmerRepo := postgres.NewFarmerRepository(pool)
	brigadierRepo := postgres.NewBrigadierRepository(pool)
	contourRepo := postgres.NewContourRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	workStageRepo := postgres.NewWorkStageRepository(pool)
	activityRepo := postgres.NewFieldActivityRepository(pool)
	monitoringRepo := postgres.NewMonitoringRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Avisos a administradores: buzón en BD y, si hay brokers, tópico Kafka.
	sinks := []ports.AdminNotifier{notificationRepo}
	if cfg.Kafka.Enabled() {
		publisher := events.NewKafkaPublisher(cfg.Kafka)
		defer publisher.Close()
		sinks = append(sinks, publisher)
	}
	dispatcher := notify.NewDispatcher(log.Component("notify"), sinks...)

	docs := warehouse.Config{
		WarehouseName:         cfg.Documents.WarehouseName,
		ShipperName:           cfg.Documents.ShipperName,
		FarmerDefaultPassword: cfg.Documents.FarmerDefaultPassword,
		FarmerDefaultAddress:  cfg.Documents.FarmerDefaultAddress,
	}
	warehouseSvc := warehouse.NewService(warehouse.Deps{
		TxRunner: txRunner,
		Readers: warehouse.Readers{
			Products:        productRepo,
			Transactions:    transactionRepo,
			BrigadierStocks: brigadierStockRepo,
			Waybills:        waybillRepo,
			Farmers:         farmerRepo,
			Brigadiers:      brigadierRepo,
			Contours:        contourRepo,
		},
		Cache:    viewCache,
		CacheTTL: cfg.Redis.TTL,
		Events:   dispatcher,
		Config:   docs,
		Log:      log.Component("warehouse"),
	})
	fieldSvc := brigade.NewService(txRunner, workStageRepo, activityRepo, contourRepo, brigadierRepo, viewCache, log.Component("field"))
	productUC := usecase.NewProductUseCase(productRepo, viewCache, log.Component("products"))
	userUC := usecase.NewUserUseCase(userRepo, docs.HashPassword, log.Component("users"))
	directoryUC := usecase.NewDirectoryUseCase(txRunner, farmerRepo, brigadierRepo, contourRepo, contractRepo, transactionRepo,
		docs, viewCache, log.Component("directory"))
	dashboardUC := monitoring.NewDashboardUseCase(productRepo, transactionRepo, monitoringRepo, viewCache, log.Component("monitoring"))
	authUC := auth.NewAuthUseCase(userRepo, brigadierRepo, farmerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Navbahor ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		DirectoryUC: directoryUC,
		Warehouse:   warehouseSvc,
		Field:       fieldSvc,
		Dashboard:   dashboardUC,
		Renderer:    pdf.NewWaybillRenderer(),
		JWTSecret:   cfg.JWT.Secret,
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
	// Avisos en vuelo antes de cerrar el pool y el writer de Kafka.
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}
