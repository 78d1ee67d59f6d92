package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rmoralesdev/salon-backoffice/api/routes"
	"github.com/rmoralesdev/salon-backoffice/internal/booking"
	"github.com/rmoralesdev/salon-backoffice/internal/catalog"
	"github.com/rmoralesdev/salon-backoffice/internal/customers"
	"github.com/rmoralesdev/salon-backoffice/internal/inventory"
	"github.com/rmoralesdev/salon-backoffice/internal/photos"
	"github.com/rmoralesdev/salon-backoffice/internal/settings"
	"github.com/rmoralesdev/salon-backoffice/pkg/config"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	"github.com/rmoralesdev/salon-backoffice/pkg/logger"
	"github.com/rmoralesdev/salon-backoffice/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	customersRepo := customers.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())

	customersService, err := customers.NewService(customersRepo, dbClient)
	requireService(logg, "customers", err)

	catalogService, err := catalog.NewService(catalogRepo, dbClient)
	requireService(logg, "catalog", err)

	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), dbClient)
	requireService(logg, "inventory", err)

	bookingService, err := booking.NewService(booking.NewRepository(dbClient.DB()), dbClient, customersRepo, catalogRepo)
	requireService(logg, "booking", err)

	photosService, err := photos.NewService(photos.NewRepository(dbClient.DB()), dbClient, customersRepo, cfg.Photos, logg)
	requireService(logg, "photos", err)

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()), dbClient)
	requireService(logg, "settings", err)

	registry := prometheus.NewRegistry()

	handler := routes.NewRouter(cfg, logg, dbClient, registry, routes.Services{
		Customers: customersService,
		Catalog:   catalogService,
		Inventory: inventoryService,
		Booking:   bookingService,
		Photos:    photosService,
		Settings:  settingsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err != nil {
		ctx := logg.WithField(context.Background(), "service", name)
		logg.Error(ctx, "failed to create service", err)
		os.Exit(1)
	}
}
