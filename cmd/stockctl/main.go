// Command stockctl imports and exports inventory spreadsheets against the
// configured store without running the HTTP server.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/stockroom/backend/config"
	"github.com/stockroom/backend/internal/infrastructure/kv"
	"github.com/stockroom/backend/internal/infrastructure/spreadsheet"
	"github.com/stockroom/backend/internal/infrastructure/storage"
	"github.com/stockroom/backend/internal/usecase"
	"github.com/stockroom/backend/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Warehouse inventory spreadsheet tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newImportCmd(), newExportCmd(), newTemplateCmd())
	return root
}

// env is the service stack a command runs against
type env struct {
	sheets *usecase.SpreadsheetService
	close  func() error
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	l, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: true})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(l.WithComponent("stockctl"))

	store, closeStore, err := kv.Open(ctx, kv.Options{
		Type:      cfg.Store.Type,
		RedisURL:  cfg.Store.RedisURL,
		KeyPrefix: cfg.Store.KeyPrefix,
	})
	if err != nil {
		return nil, err
	}

	inventory, err := usecase.NewInventory(ctx, storage.NewRepository(store, storage.SampleProducts()))
	if err != nil {
		closeStore()
		return nil, err
	}

	return &env{
		sheets: usecase.NewSpreadsheetService(inventory, spreadsheet.NewCodec(), usecase.SpreadsheetServiceConfig{
			ReportLimit: cfg.Import.ReportLimit,
		}),
		close: closeStore,
	}, nil
}
