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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/application/intake"
	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/inventario-cocina/internal/interfaces/http"
	"github.com/jhoicas/inventario-cocina/pkg/config"
	"github.com/jhoicas/inventario-cocina/pkg/logger"
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	threshold, err := decimal.NewFromString(cfg.Store.LowStockThreshold)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Store.LowStockThreshold).Msg("LOW_STOCK_THRESHOLD inválido")
	}

	ctx := context.Background()

	var (
		events   repository.EventStore
		requests repository.IntakeRequestRepository
		runner   inventory.TxRunner
	)
	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		events, requests, runner = store, store, store
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		events = postgres.NewEventStore(pool)
		requests = postgres.NewIntakeRequestRepository(pool)
		runner = postgres.NewTxRunner(pool)
	}
	if !cfg.Store.SerializeAdjustments {
		runner = inventory.NewDirectRunner(events)
		log.Warn().Msg("ajustes sin serializar por clave: salidas concurrentes pueden dejar stock negativo")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	stockMetrics := metrics.NewStockMetrics(reg)

	pdf, err := report.NewPDFGenerator(report.PDFFonts{Regular: cfg.Report.PDFFontRegular, Bold: cfg.Report.PDFFontBold})
	if err != nil {
		log.Fatal().Err(err).Msg("fuentes del reporte PDF")
	}

	stockUC := inventory.NewStockUseCase(events, runner, stockMetrics, log.Zerolog())
	requestUC := intake.NewRequestUseCase(requests, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.Swagger.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Inventario Cocina API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:      stockUC,
		RequestUC:    requestUC,
		XLSX:         report.NewXLSXExporter(),
		PDF:          pdf,
		LowThreshold: threshold,
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
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
