package usecase

import (
	"strings"

	"github.com/stockroom/backend/internal/domain"
)

// headerSynonyms binds exact lowercase header text to a canonical field
var headerSynonyms = map[string]domain.Field{
	"sku":          domain.FieldSKU,
	"product name": domain.FieldName,
	"productname":  domain.FieldName,
	"category":     domain.FieldCategory,
	"quantity":     domain.FieldQuantity,
	"price":        domain.FieldPrice,
	"min stock":    domain.FieldMinStock,
	"minstock":     domain.FieldMinStock,
	"description":  domain.FieldDescription,
}

// ResolveHeaders maps a header row to canonical fields.
//
// Cells whose trimmed lowercase text is a known synonym bind first; when a
// synonym repeats, the rightmost column wins. A field left unbound then takes
// the first unclaimed cell containing its title case-insensitively, so
// "Product SKU" binds SKU. Required fields that end up unbound are reported
// together in Missing.
func ResolveHeaders(header []string) domain.HeaderResolution {
	res := domain.HeaderResolution{Columns: make(map[domain.Field]int)}

	lowered := make([]string, len(header))
	claimed := make([]bool, len(header))
	for i, cell := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(cell))
		if field, ok := headerSynonyms[lowered[i]]; ok {
			if prev, bound := res.Columns[field]; bound {
				claimed[prev] = false
			}
			res.Columns[field] = i
			claimed[i] = true
		}
	}

	for _, field := range domain.Fields {
		if _, bound := res.Columns[field]; bound {
			continue
		}
		title := strings.ToLower(field.Title())
		for i, cell := range lowered {
			if !claimed[i] && cell != "" && strings.Contains(cell, title) {
				res.Columns[field] = i
				claimed[i] = true
				break
			}
		}
	}

	for _, field := range domain.Fields {
		if _, bound := res.Columns[field]; field.Required() && !bound {
			res.Missing = append(res.Missing, field)
		}
	}

	return res
}
