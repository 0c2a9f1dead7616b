package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/satriahrh/inventario/adapters"
	"github.com/satriahrh/inventario/internal/api"
	"github.com/satriahrh/inventario/internal/config"
	"github.com/satriahrh/inventario/internal/locale"
	"github.com/satriahrh/inventario/internal/logging"
	"github.com/satriahrh/inventario/internal/web"
	"github.com/satriahrh/inventario/internal/websocket"
	"github.com/satriahrh/inventario/usecase"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.IsDevelopment())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	formatter, err := locale.New(cfg.Timezone)
	if err != nil {
		logger.Fatal("Invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Change feed
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// Initialize adapters
	assetRepo := adapters.NewMemoryAssetRepository()
	userRepo := adapters.NewMemoryUserRepository()

	// Initialize usecase services
	assetService := usecase.NewAssetService(assetRepo, hub, cfg.Operator, logger)
	userService := usecase.NewUserService(userRepo, hub, logger)

	if cfg.SeedDemo {
		if _, err := userService.Seed(ctx); err != nil {
			logger.Fatal("Failed to seed demo user", zap.Error(err))
		}
	}

	// Initialize routes
	api.InitRoutes(e, assetService, userService, hub, logger)

	pages, err := web.NewHandler(assetService, userService, formatter, web.Settings{
		BaseURL:  cfg.BaseURL,
		Location: cfg.Location,
		Site:     cfg.Site,
		Live:     true,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to load page templates", zap.Error(err))
	}
	pages.Register(e)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Inventory server started",
		zap.String("port", cfg.Port),
		zap.String("baseURL", cfg.BaseURL),
		zap.Bool("seedDemo", cfg.SeedDemo))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
