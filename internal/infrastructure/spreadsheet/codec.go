package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/stockroom/backend/internal/domain"
)

// Sheet names
const (
	SheetInventory    = "Inventory"
	SheetTemplate     = "Inventory Template"
	SheetInstructions = "Instructions"
)

// Codec reads and writes .xlsx workbooks
type Codec struct{}

// NewCodec creates an xlsx codec
func NewCodec() *Codec {
	return &Codec{}
}

// Decode returns the raw cell values of the first sheet in data
func (c *Codec) Decode(data []byte) (domain.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptySpreadsheet
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}
	if len(rows) < 2 {
		return nil, domain.ErrEmptySpreadsheet
	}

	return domain.Grid(rows), nil
}

// EncodeInventory writes one row per product under the export headers
func (c *Codec) EncodeInventory(products []domain.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetInventory); err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(products)+1)
	rows = append(rows, []any{"SKU", "Product Name", "Category", "Quantity", "Price", "Min Stock", "Total Value", "Description"})
	for _, p := range products {
		rows = append(rows, []any{
			p.SKU,
			p.Name,
			p.Category,
			p.Quantity,
			p.Price.InexactFloat64(),
			p.MinStock,
			p.TotalValue().InexactFloat64(),
			p.Description,
		})
	}
	if err := writeRows(f, SheetInventory, rows); err != nil {
		return nil, err
	}

	return toBytes(f)
}

// EncodeTemplate writes the import template: sample rows plus an instructions sheet
func (c *Codec) EncodeTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetTemplate); err != nil {
		return nil, err
	}

	header := make([]any, len(domain.Fields))
	for i, field := range domain.Fields {
		header[i] = field.Title()
	}
	rows := [][]any{
		header,
		{"LAP001", "Dell Latitude Laptop", "Electronics", 25, 899.99, 10, "Business laptop with Intel i7 processor"},
		{"PHN001", "iPhone 15 Pro", "Electronics", 8, 999.99, 15, "Latest iPhone with advanced camera system"},
		{"TSH001", "Cotton T-Shirt", "Clothing", 150, 19.99, 50, "Comfortable cotton t-shirt in various sizes"},
	}
	if err := writeRows(f, SheetTemplate, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetInstructions); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetInstructions, instructionRows()); err != nil {
		return nil, err
	}

	return toBytes(f)
}

func instructionRows() [][]any {
	var required, optional []any
	for _, field := range domain.Fields {
		if field.Required() {
			required = append(required, field.Title())
		} else {
			optional = append(optional, field.Title())
		}
	}
	return [][]any{
		{"Instructions for Importing Inventory"},
		{""},
		{"Required Columns:"},
		required,
		{""},
		{"Optional Columns:"},
		optional,
		{""},
		{"Notes:"},
		{"- SKU must be unique for each product"},
		{"- First row should contain column headers"},
		{"- Quantity and Price must be non-negative numbers"},
		{"- Category should match existing categories or will be added"},
		{fmt.Sprintf("- Min Stock defaults to %d if not specified", domain.DefaultMinStock)},
		{"- Description is optional"},
	}
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
