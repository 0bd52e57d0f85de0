package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockroom/backend/internal/domain"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &domain.ImportReport{
		Mode:      "update",
		Total:     22,
		Updated:   1,
		Warnings:  21,
		Skipped:   2,
		Details:   []domain.RowOutcome{{Row: 2, SKU: "A1", Status: domain.OutcomeSuccess, Message: "Product updated successfully"}},
		Remaining: 21,
	})

	out := buf.String()
	assert.Contains(t, out, "Import Results (update mode)")
	assert.Contains(t, out, "Total processed: 22")
	assert.Contains(t, out, "Skipped rows:    2")
	assert.Contains(t, out, "Product updated successfully")
	assert.Contains(t, out, "... and 21 more")
}

func TestImportCmd_RejectsBadMode(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"import", "--file", "x.xlsx", "--mode", "merge"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	assert.ErrorIs(t, err, domain.ErrInvalidImportMode)
}

func TestImportCmd_RequiresFile(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"import"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}
