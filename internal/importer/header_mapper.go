package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// HeaderMapper resolves field values by header name. Lookups are
// case-insensitive and ignore surrounding whitespace.
type HeaderMapper struct {
	index map[string]int
}

// NewHeaderMapper builds the alias table from a sheet's header row.
// Blank headers are skipped; for duplicated headers the leftmost column wins.
func NewHeaderMapper(header []any) *HeaderMapper {
	m := &HeaderMapper{index: make(map[string]int, len(header))}
	for i, cell := range header {
		key := normalizeHeader(cellString(cell))
		if key == "" {
			continue
		}
		if _, exists := m.index[key]; !exists {
			m.index[key] = i
		}
	}
	return m
}

// Has reports whether any of the aliases is a column of the sheet
func (m *HeaderMapper) Has(aliases ...string) bool {
	for _, alias := range aliases {
		if _, ok := m.index[normalizeHeader(alias)]; ok {
			return true
		}
	}
	return false
}

// ValueFor returns the trimmed value of the first alias whose cell is non-empty.
// Alias order is priority order.
func (m *HeaderMapper) ValueFor(row []any, aliases ...string) (string, bool) {
	for _, alias := range aliases {
		idx, ok := m.index[normalizeHeader(alias)]
		if !ok || idx >= len(row) {
			continue
		}
		if v := cellString(row[idx]); v != "" {
			return v, true
		}
	}
	return "", false
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	// the XLSX template marks required columns with a trailing " *"
	return strings.TrimSpace(strings.TrimSuffix(h, "*"))
}

// cellString renders a primitive cell value as trimmed text
func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
