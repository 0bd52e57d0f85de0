package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Grid is a decoded spreadsheet: rows of raw cell values, header row first
type Grid [][]string

// ImportMode selects the merge policy for an import run
type ImportMode int

const (
	ModeUpdate ImportMode = iota + 1
	ModeAdd
	ModeReplace
)

// ParseImportMode accepts exactly "update", "add" or "replace"
func ParseImportMode(s string) (ImportMode, error) {
	switch s {
	case "update":
		return ModeUpdate, nil
	case "add":
		return ModeAdd, nil
	case "replace":
		return ModeReplace, nil
	}
	return 0, ErrInvalidImportMode
}

func (m ImportMode) String() string {
	switch m {
	case ModeUpdate:
		return "update"
	case ModeAdd:
		return "add"
	case ModeReplace:
		return "replace"
	}
	return "unknown"
}

// Field is a canonical spreadsheet column
type Field int

const (
	FieldSKU Field = iota
	FieldName
	FieldCategory
	FieldQuantity
	FieldPrice
	FieldMinStock
	FieldDescription
)

// Fields lists every canonical column in template order
var Fields = []Field{
	FieldSKU, FieldName, FieldCategory, FieldQuantity,
	FieldPrice, FieldMinStock, FieldDescription,
}

// Title is the column heading used in templates and exports
func (f Field) Title() string {
	switch f {
	case FieldSKU:
		return "SKU"
	case FieldName:
		return "Product Name"
	case FieldCategory:
		return "Category"
	case FieldQuantity:
		return "Quantity"
	case FieldPrice:
		return "Price"
	case FieldMinStock:
		return "Min Stock"
	case FieldDescription:
		return "Description"
	}
	return ""
}

// Required reports whether an import file must carry this column
func (f Field) Required() bool {
	switch f {
	case FieldSKU, FieldName, FieldCategory, FieldQuantity, FieldPrice:
		return true
	}
	return false
}

func (f Field) String() string {
	return f.Title()
}

// HeaderResolution maps canonical fields to column positions
type HeaderResolution struct {
	Columns map[Field]int
	Missing []Field
}

// Err returns a MissingHeadersError when required columns are absent
func (r HeaderResolution) Err() error {
	if len(r.Missing) == 0 {
		return nil
	}
	return &MissingHeadersError{Fields: r.Missing}
}

// Candidate is a product parsed from one spreadsheet row, prior to merge.
// MinStock 0 means the file did not supply a usable value.
type Candidate struct {
	Row         int
	SKU         string
	Name        string
	Category    string
	Quantity    int
	Price       decimal.Decimal
	MinStock    int
	Description string
}

// OutcomeStatus is the result class of merging one candidate
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeWarning OutcomeStatus = "warning"
	OutcomeError   OutcomeStatus = "error"
)

// OutcomeAction records what a successful merge did to the catalog
type OutcomeAction string

const (
	ActionNone    OutcomeAction = ""
	ActionAdded   OutcomeAction = "added"
	ActionUpdated OutcomeAction = "updated"
)

// RowOutcome is the per-row result of an import
type RowOutcome struct {
	Row     int           `json:"row,omitempty"`
	SKU     string        `json:"sku"`
	Status  OutcomeStatus `json:"status"`
	Action  OutcomeAction `json:"action,omitempty"`
	Message string        `json:"message"`
}

// BatchResult aggregates the outcomes of one import run
type BatchResult struct {
	Added    int          `json:"added"`
	Updated  int          `json:"updated"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Skipped  int          `json:"skipped"`
	Details  []RowOutcome `json:"details"`
}

// Record folds one outcome into the aggregate counters
func (r *BatchResult) Record(o RowOutcome) {
	r.Details = append(r.Details, o)
	switch o.Status {
	case OutcomeSuccess:
		switch o.Action {
		case ActionAdded:
			r.Added++
		case ActionUpdated:
			r.Updated++
		}
	case OutcomeWarning:
		r.Warnings++
	case OutcomeError:
		r.Errors++
	}
}

// DefaultReportLimit caps the number of row outcomes shown in a report
const DefaultReportLimit = 20

// ImportReport is the user-facing summary of a BatchResult
type ImportReport struct {
	Mode      string       `json:"mode"`
	Total     int          `json:"total"`
	Added     int          `json:"added"`
	Updated   int          `json:"updated"`
	Errors    int          `json:"errors"`
	Warnings  int          `json:"warnings"`
	Skipped   int          `json:"skipped"`
	Details   []RowOutcome `json:"details"`
	Remaining int          `json:"remaining"`
}

// NewImportReport shows at most limit row outcomes, counting the rest
func NewImportReport(mode ImportMode, result BatchResult, limit int) *ImportReport {
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	shown := result.Details
	if len(shown) > limit {
		shown = shown[:limit]
	}
	return &ImportReport{
		Mode:      mode.String(),
		Total:     len(result.Details),
		Added:     result.Added,
		Updated:   result.Updated,
		Errors:    result.Errors,
		Warnings:  result.Warnings,
		Skipped:   result.Skipped,
		Details:   shown,
		Remaining: len(result.Details) - len(shown),
	}
}

// ImportPreview summarizes a file before it is applied
type ImportPreview struct {
	Candidates int        `json:"candidates"`
	Existing   int        `json:"existing"`
	New        int        `json:"new"`
	Rows       [][]string `json:"rows"`
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Title()
	}
	return strings.Join(names, ", ")
}
