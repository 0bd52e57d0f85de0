package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain"
)

func candidate(sku, name, category string, quantity int, price string) domain.Candidate {
	return domain.Candidate{
		Row:      2,
		SKU:      sku,
		Name:     name,
		Category: category,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
}

func TestApplyCandidate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		c       domain.Candidate
		wantSKU string
		wantMsg string
	}{
		{name: "missing category", c: candidate("A1", "Widget", "", 1, "1"), wantSKU: "A1", wantMsg: msgMissingFields},
		{name: "missing sku", c: candidate("", "Widget", "Cat", 1, "1"), wantSKU: "Unknown", wantMsg: msgMissingFields},
		{name: "negative quantity", c: candidate("C3", "Bad", "Cat", -1, "1.00"), wantSKU: "C3", wantMsg: msgNegative},
		{name: "negative price", c: candidate("C3", "Bad", "Cat", 1, "-0.01"), wantSKU: "C3", wantMsg: msgNegative},
	}

	for _, tt := range tests {
		for _, mode := range []domain.ImportMode{domain.ModeUpdate, domain.ModeAdd, domain.ModeReplace} {
			t.Run(tt.name+"/"+mode.String(), func(t *testing.T) {
				existing := product("C3", "Original", "Cat", 4, "2")
				cat := newTestCatalog(t, existing)

				outcome, err := ApplyCandidate(tt.c, cat, mode)
				require.NoError(t, err)

				assert.Equal(t, domain.OutcomeError, outcome.Status)
				assert.Equal(t, domain.ActionNone, outcome.Action)
				assert.Equal(t, tt.wantSKU, outcome.SKU)
				assert.Equal(t, tt.wantMsg, outcome.Message)
				assert.Equal(t, []domain.Product{existing}, cat.Records())
			})
		}
	}
}

func TestApplyCandidate_Update(t *testing.T) {
	t.Run("overwrites found record", func(t *testing.T) {
		existing := product("A1", "Widget", "Old", 5, "1.00")
		existing.MinStock = 3
		existing.Description = "keep me"
		cat := newTestCatalog(t, existing)

		outcome, err := ApplyCandidate(candidate("A1", "Widget X", "Cat", 10, "2.00"), cat, domain.ModeUpdate)
		require.NoError(t, err)

		assert.Equal(t, domain.OutcomeSuccess, outcome.Status)
		assert.Equal(t, domain.ActionUpdated, outcome.Action)
		assert.Equal(t, msgUpdated, outcome.Message)

		got, _ := cat.Get("A1")
		assert.Equal(t, "Widget X", got.Name)
		assert.Equal(t, "Cat", got.Category)
		assert.Equal(t, 10, got.Quantity)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("2")))
		assert.Equal(t, 3, got.MinStock)
		assert.Equal(t, "keep me", got.Description)
	})

	t.Run("supplied min stock and description replace existing", func(t *testing.T) {
		cat := newTestCatalog(t, product("A1", "Widget", "Cat", 5, "1.00"))
		c := candidate("A1", "Widget", "Cat", 5, "1.00")
		c.MinStock = 2
		c.Description = "new"

		_, err := ApplyCandidate(c, cat, domain.ModeUpdate)
		require.NoError(t, err)

		got, _ := cat.Get("A1")
		assert.Equal(t, 2, got.MinStock)
		assert.Equal(t, "new", got.Description)
	})

	t.Run("not found is a warning", func(t *testing.T) {
		cat := newTestCatalog(t)

		outcome, err := ApplyCandidate(candidate("B2", "Gadget", "Cat", 3, "5.00"), cat, domain.ModeUpdate)
		require.NoError(t, err)

		assert.Equal(t, domain.OutcomeWarning, outcome.Status)
		assert.Equal(t, "Product not found - skipped (update mode)", outcome.Message)
		assert.Equal(t, 0, cat.Len())
	})

	t.Run("sku match is case sensitive", func(t *testing.T) {
		cat := newTestCatalog(t, product("A1", "Widget", "Cat", 5, "1.00"))

		outcome, err := ApplyCandidate(candidate("a1", "Widget", "Cat", 5, "1.00"), cat, domain.ModeUpdate)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeWarning, outcome.Status)
	})
}

func TestApplyCandidate_Add(t *testing.T) {
	t.Run("inserts with defaults", func(t *testing.T) {
		cat := newTestCatalog(t, product("A1", "Widget", "Cat", 5, "1.00"))

		outcome, err := ApplyCandidate(candidate("B2", "Gadget", "Cat", 3, "5.00"), cat, domain.ModeAdd)
		require.NoError(t, err)

		assert.Equal(t, domain.OutcomeSuccess, outcome.Status)
		assert.Equal(t, domain.ActionAdded, outcome.Action)
		assert.Equal(t, msgAdded, outcome.Message)
		require.Equal(t, 2, cat.Len())

		got := cat.At(1)
		assert.Equal(t, "B2", got.SKU)
		assert.Equal(t, domain.DefaultMinStock, got.MinStock)
		assert.Equal(t, "", got.Description)
	})

	t.Run("existing record untouched", func(t *testing.T) {
		existing := product("A1", "Widget", "Cat", 5, "1.00")
		cat := newTestCatalog(t, existing)

		outcome, err := ApplyCandidate(candidate("A1", "Widget X", "Other", 99, "9.99"), cat, domain.ModeAdd)
		require.NoError(t, err)

		assert.Equal(t, domain.OutcomeWarning, outcome.Status)
		assert.Equal(t, "Product already exists - skipped (add mode)", outcome.Message)
		assert.Equal(t, []domain.Product{existing}, cat.Records())
	})
}

func TestApplyCandidate_Replace(t *testing.T) {
	cat := newTestCatalog(t, product("A1", "Widget", "Cat", 5, "1.00"))

	updated, err := ApplyCandidate(candidate("A1", "Widget X", "Cat", 10, "2.00"), cat, domain.ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionUpdated, updated.Action)

	added, err := ApplyCandidate(candidate("B2", "Gadget", "Cat", 3, "5.00"), cat, domain.ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionAdded, added.Action)

	assert.Equal(t, 2, cat.Len())
}

func TestApplyCandidate_InvalidMode(t *testing.T) {
	cat := newTestCatalog(t)

	_, err := ApplyCandidate(candidate("A1", "Widget", "Cat", 1, "1"), cat, domain.ImportMode(42))
	assert.ErrorIs(t, err, domain.ErrInvalidImportMode)
}
