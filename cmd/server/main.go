package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockroom/backend/config"
	httpDelivery "github.com/stockroom/backend/internal/delivery/http"
	"github.com/stockroom/backend/internal/infrastructure/kv"
	"github.com/stockroom/backend/internal/infrastructure/spreadsheet"
	"github.com/stockroom/backend/internal/infrastructure/storage"
	"github.com/stockroom/backend/internal/infrastructure/token"
	"github.com/stockroom/backend/internal/usecase"
	"github.com/stockroom/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()
	logger.SetDefault(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger.Info(ctx, "starting stockroom backend",
		"version", "1.0.0",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"store", cfg.Store.Type)

	// Initialize infrastructure dependencies
	store, closeStore, err := kv.Open(ctx, kv.Options{
		Type:      cfg.Store.Type,
		RedisURL:  cfg.Store.RedisURL,
		KeyPrefix: cfg.Store.KeyPrefix,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	repo := storage.NewRepository(store, storage.SampleProducts())

	issuer, err := token.NewJWTIssuer(token.Config{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return err
	}

	// Initialize usecase layer
	inventory, err := usecase.NewInventory(ctx, repo)
	if err != nil {
		return err
	}

	auth, err := usecase.NewAuthService(ctx, issuer, repo, inventory, usecase.AuthServiceConfig{
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		return err
	}

	handler := httpDelivery.NewHandler(
		usecase.NewCatalogService(inventory),
		usecase.NewReportService(inventory),
		usecase.NewSpreadsheetService(inventory, spreadsheet.NewCodec(), usecase.SpreadsheetServiceConfig{
			ReportLimit: cfg.Import.ReportLimit,
		}),
		auth,
		httpDelivery.HandlerConfig{MaxFileSize: cfg.Import.MaxFileSize},
	)

	// Setup router
	router := httpDelivery.SetupRouter(ctx, cfg, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
