package usecase

import (
	"errors"
	"iter"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain"
)

var (
	leadingIntRegex     = regexp.MustCompile(`^[+-]?\d+`)
	leadingDecimalRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d{1,3})?`)
)

// maxDecimalMagnitude is the largest power of ten a parsed decimal may reach,
// the float64 range
const maxDecimalMagnitude = 308

// minDecimalExponent bounds the fractional digits a parsed decimal may carry
const minDecimalExponent = -324

// NormalizeRows yields one candidate per data row of grid, in file order.
// Rows without a SKU or product name are not yielded; dropped, if non-nil,
// is incremented for each of them.
func NormalizeRows(grid domain.Grid, res domain.HeaderResolution, dropped *int) iter.Seq[domain.Candidate] {
	return func(yield func(domain.Candidate) bool) {
		if len(grid) < 2 {
			return
		}
		for i, row := range grid[1:] {
			c := NormalizeRow(row, res)
			c.Row = i + 2
			if c.SKU == "" || c.Name == "" {
				if dropped != nil {
					*dropped++
				}
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// NormalizeRow coerces one raw row into a candidate
func NormalizeRow(row []string, res domain.HeaderResolution) domain.Candidate {
	var c domain.Candidate
	for field, col := range res.Columns {
		value := ""
		if col < len(row) {
			value = strings.TrimSpace(row[col])
		}
		switch field {
		case domain.FieldSKU:
			c.SKU = value
		case domain.FieldName:
			c.Name = value
		case domain.FieldCategory:
			c.Category = value
		case domain.FieldQuantity:
			c.Quantity = parseLeadingInt(value)
		case domain.FieldPrice:
			c.Price = parseLeadingDecimal(value)
		case domain.FieldMinStock:
			c.MinStock = max(parseLeadingInt(value), 0)
		case domain.FieldDescription:
			c.Description = value
		}
	}
	return c
}

// parseLeadingInt parses the integer prefix of s ("12abc" is 12, "1.9" is 1).
// Anything without a numeric prefix is 0; prefixes beyond the int range clamp
// to math.MaxInt or math.MinInt.
func parseLeadingInt(s string) int {
	m := leadingIntRegex.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(m, "-") {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}

// parseLeadingDecimal parses the decimal prefix of s. It is 0 when there is
// no prefix or the value falls outside the float64 range.
func parseLeadingDecimal(s string) decimal.Decimal {
	m := leadingDecimalRegex.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil || d.IsZero() {
		return decimal.Zero
	}
	if d.NumDigits()+int(d.Exponent()) > maxDecimalMagnitude+1 || d.Exponent() < minDecimalExponent {
		return decimal.Zero
	}
	return d
}
