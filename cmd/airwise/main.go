package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/JDeep1234/airwise/internal/api/http"
	"github.com/JDeep1234/airwise/internal/aqi"
	"github.com/JDeep1234/airwise/internal/aqi/providers"
	"github.com/JDeep1234/airwise/internal/config"
	"github.com/JDeep1234/airwise/internal/forecast"
	"github.com/JDeep1234/airwise/internal/scheduler"
	"github.com/JDeep1234/airwise/internal/service"
	"github.com/JDeep1234/airwise/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory observation history with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Providers: OpenWeatherMap when a key is configured, synthetic always
	// available as fallback.
	var provider aqi.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provider = providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.Location)
	} else {
		log.Println("INFO: OPENWEATHER_API_KEY not set; serving synthetic air quality data")
	}
	synthetic := providers.NewSyntheticProvider(cfg.Location)

	// Forecasting engine with persisted model state.
	curve, err := forecast.CurveByName(cfg.PM25Curve)
	if err != nil {
		log.Fatalf("failed to configure pm25 curve: %v", err)
	}
	engine := forecast.NewEngine(forecast.NewModelStore(cfg.ModelDir), forecast.WithCurve(curve))
	if engine.LoadPersisted() {
		log.Println("INFO: model and scaler loaded from", cfg.ModelDir)
	} else {
		log.Println("INFO: no trained model found; forecasts use fallback data until training runs")
	}

	// Core service orchestrating providers, store and engine.
	svc := service.New(memStore, provider, synthetic, engine, cfg.TrainingDays)

	// Scheduler for periodic observation capture and retraining.
	sched := scheduler.New(svc, cfg.FetchInterval, cfg.RetrainInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "airwise",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "airwise",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, svc)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
