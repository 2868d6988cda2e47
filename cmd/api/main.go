package main

import (
	"context"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-relocation/internal/application/auth"
	"github.com/jhoicas/stock-relocation/internal/application/relocation"
	"github.com/jhoicas/stock-relocation/internal/application/usecase"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
	"github.com/jhoicas/stock-relocation/internal/infrastructure/cache"
	"github.com/jhoicas/stock-relocation/internal/infrastructure/events"
	"github.com/jhoicas/stock-relocation/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/stock-relocation/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-relocation/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-relocation/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stock-relocation/internal/interfaces/http"
	"github.com/jhoicas/stock-relocation/pkg/config"
	"github.com/jhoicas/stock-relocation/pkg/logger"
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
		if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	uomRepo := postgres.NewUomRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	prodLocRepo := postgres.NewProductLocationRepository(pool)
	relocationRepo := postgres.NewRelocationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Configuración de stock: con Redis si está configurado.
	var configRepo repository.StockConfigurationRepository = postgres.NewStockConfigurationRepository(pool)
	if cfg.Redis.Enabled() {
		client, err := cache.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, configuración sin caché")
		} else {
			defer func() { _ = client.Close() }()
			configRepo = cache.NewConfigurationCache(configRepo, client, cfg.Redis.ConfigTTL, log)
		}
	}

	confirmOpts := []relocation.ConfirmOption{}
	if cfg.NATS.Enabled() {
		nc, err := events.Connect(cfg.NATS, cfg.App.Name)
		if err != nil {
			log.Warn().Err(err).Msg("NATS no disponible, sin publicación de eventos")
		} else {
			defer nc.Close()
			confirmOpts = append(confirmOpts, relocation.WithPublisher(events.NewNATSPublisher(nc, cfg.NATS.Subject)))
		}
	}

	var metricsHandler nethttp.Handler
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		confirmOpts = append(confirmOpts, relocation.WithMetrics(metrics.NewConfirmMetrics(reg)))
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	defaultsUC := relocation.NewDefaultsUseCase(userRepo, locationRepo, configRepo, nil)
	formUC := relocation.NewFormUseCase(productRepo, uomRepo, prodLocRepo, stockRepo, nil)
	relocationUC := relocation.NewRelocationUseCase(
		relocationRepo, locationRepo, productRepo, uomRepo, employeeRepo, defaultsUC, formUC,
	)
	confirmUC := relocation.NewConfirmUseCase(txRunner, log.Component("confirm"), confirmOpts...)
	reportUC := relocation.NewReportUseCase(
		relocationRepo, locationRepo, productRepo, uomRepo, employeeRepo,
		infrapdf.NewMarotoSlipGenerator(), xlsx.NewRelocationExporter(),
	)
	configurationUC := usecase.NewConfigurationUseCase(configRepo, locationRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.DocsPath != "" {
		if _, err := os.Stat(cfg.App.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.DocsPath,
				Path:     "docs",
				Title:    "Stock Relocation API",
			}))
		} else {
			log.Warn().Str("path", cfg.App.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Relocations:   relocationUC,
		Defaults:      defaultsUC,
		Form:          formUC,
		Confirm:       confirmUC,
		Reports:       reportUC,
		Configuration: configurationUC,
		Metrics:       metricsHandler,
		ServiceName:   cfg.App.Name,
		JWTSecret:     cfg.JWT.Secret,
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
