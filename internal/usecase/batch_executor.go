package usecase

import (
	"context"
	"fmt"
	"iter"

	"github.com/stockroom/backend/internal/domain"
	"github.com/stockroom/backend/pkg/logger"
)

// applyCandidate is swapped in tests to inject merge defects
var applyCandidate = ApplyCandidate

// RunBatch merges candidates into cat in sequence order. Each merge is visible
// to the rows after it. A defect on one row is recorded as that row's error
// and never stops the batch. RunBatch does not persist the catalog.
func RunBatch(
	ctx context.Context,
	candidates iter.Seq[domain.Candidate],
	cat *domain.Catalog,
	mode domain.ImportMode,
) domain.BatchResult {
	result := domain.BatchResult{Details: []domain.RowOutcome{}}

	for c := range candidates {
		outcome, err := applySafely(c, cat, mode)
		if err != nil {
			logger.Warn(ctx, "import row failed", "row", c.Row, "sku", c.SKU, "error", err)
			outcome = domain.RowOutcome{
				Row:     c.Row,
				SKU:     c.SKU,
				Status:  domain.OutcomeError,
				Message: fmt.Sprintf("Error: %v", err),
			}
		}
		result.Record(outcome)
	}

	return result
}

// applySafely converts a panic inside the merge policy into an error
func applySafely(c domain.Candidate, cat *domain.Catalog, mode domain.ImportMode) (outcome domain.RowOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return applyCandidate(c, cat, mode)
}
