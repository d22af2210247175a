package importer

import (
	"strings"
)

// Record is one data row keyed by normalized header name.
type Record struct {
	RowNumber int
	Values    map[string]string
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Table is the parsed content of one input file: the normalized header row
// plus all data rows in file order.
type Table struct {
	Headers []string
	Records []Record
}

// HasColumn reports whether the header row contains the given column name,
// compared after normalization.
func (t Table) HasColumn(name string) bool {
	normalized := normalizeHeader(name)
	for _, header := range t.Headers {
		if header == normalized {
			return true
		}
	}
	return false
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
