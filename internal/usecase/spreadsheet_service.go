package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/backend/internal/domain"
	"github.com/stockroom/backend/pkg/logger"
)

// previewRows is the number of raw rows returned by Preview, header included
const previewRows = 5

// TemplateFilename is the download name of the import template
const TemplateFilename = "warehouse_inventory_template.xlsx"

// SpreadsheetServiceConfig holds configuration for the spreadsheet service
type SpreadsheetServiceConfig struct {
	ReportLimit int
}

// SpreadsheetService runs imports against the inventory and produces
// export and template workbooks
type SpreadsheetService struct {
	inventory   *Inventory
	codec       domain.SpreadsheetCodec
	reportLimit int
	now         func() time.Time
}

// NewSpreadsheetService creates a spreadsheet service with dependencies
func NewSpreadsheetService(
	inventory *Inventory,
	codec domain.SpreadsheetCodec,
	config SpreadsheetServiceConfig,
) *SpreadsheetService {
	limit := config.ReportLimit
	if limit <= 0 {
		limit = domain.DefaultReportLimit
	}

	return &SpreadsheetService{
		inventory:   inventory,
		codec:       codec,
		reportLimit: limit,
		now:         time.Now,
	}
}

// Import applies an uploaded workbook to the catalog.
// Flow: decode -> resolve headers -> normalize rows -> run batch -> persist once.
// Decode and header failures abort before any row is processed.
func (s *SpreadsheetService) Import(
	ctx context.Context,
	user string,
	data []byte,
	mode domain.ImportMode,
) (*domain.ImportReport, error) {
	grid, res, err := s.decode(data)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("import_id", uuid.NewString(), "mode", mode.String()))
	logger.Info(ctx, "import started", "rows", len(grid)-1, "user", user)

	var result domain.BatchResult
	err = s.inventory.Mutate(ctx, func(cat *domain.Catalog) (string, error) {
		var dropped int
		result = RunBatch(ctx, NormalizeRows(grid, res, &dropped), cat, mode)
		result.Skipped = dropped
		return fmt.Sprintf("%s imported %d products from Excel file", user, result.Added+result.Updated), nil
	})
	if err != nil {
		logger.Error(ctx, "import failed to persist", "error", err)
		return nil, err
	}

	logger.Info(ctx, "import completed",
		"added", result.Added,
		"updated", result.Updated,
		"errors", result.Errors,
		"warnings", result.Warnings,
		"skipped", result.Skipped)

	return domain.NewImportReport(mode, result, s.reportLimit), nil
}

// Preview decodes a workbook and reports how its rows relate to the
// current catalog without changing anything
func (s *SpreadsheetService) Preview(ctx context.Context, data []byte) (*domain.ImportPreview, error) {
	grid, res, err := s.decode(data)
	if err != nil {
		return nil, err
	}

	preview := &domain.ImportPreview{Rows: grid[:min(previewRows, len(grid))]}
	s.inventory.View(func(cat *domain.Catalog, _ []domain.Activity) {
		for c := range NormalizeRows(grid, res, nil) {
			preview.Candidates++
			if cat.IndexOf(c.SKU) >= 0 {
				preview.Existing++
			} else {
				preview.New++
			}
		}
	})

	return preview, nil
}

func (s *SpreadsheetService) decode(data []byte) (domain.Grid, domain.HeaderResolution, error) {
	grid, err := s.codec.Decode(data)
	if err != nil {
		return nil, domain.HeaderResolution{}, err
	}
	if len(grid) < 2 {
		return nil, domain.HeaderResolution{}, domain.ErrEmptySpreadsheet
	}

	res := ResolveHeaders(grid[0])
	if err := res.Err(); err != nil {
		return nil, res, err
	}
	return grid, res, nil
}

// Export writes the catalog to a workbook named for today's date
func (s *SpreadsheetService) Export(ctx context.Context, user string) (string, []byte, error) {
	data, err := s.codec.EncodeInventory(s.inventory.Products())
	if err != nil {
		return "", nil, fmt.Errorf("encode inventory: %w", err)
	}

	s.inventory.RecordActivity(ctx, fmt.Sprintf("%s exported inventory to Excel", user))

	filename := fmt.Sprintf("warehouse_inventory_%s.xlsx", s.now().Format("2006-01-02"))
	return filename, data, nil
}

// Template returns the import template workbook
func (s *SpreadsheetService) Template() ([]byte, error) {
	return s.codec.EncodeTemplate()
}
