package bulkimport

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldHeader lower-cases and strips diacritics so "Título" matches "titulo".
func foldHeader(s string) string {
	out, _, err := transform.String(foldTransformer, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// MapRows verifies the file's header row against the spec and re-keys every
// data row to logical field names.
//
// The header check is a multiset comparison of folded values, so column order
// does not affect acceptance. The re-keying that follows is purely positional:
// the cell at column i maps to Fields[i] regardless of what the header at
// column i says. Files whose columns are reordered therefore pass the check
// but map values to the wrong fields. This mirrors the behavior of the
// original dialog and is covered by tests; see DESIGN.md before changing it.
//
// A nil Diagnostic means the headers matched.
func MapRows(header []string, rows [][]Cell, spec ColumnSpec) ([]MappedRow, *Diagnostic) {
	expected := make(map[string]int, len(spec.Headers))
	for _, h := range spec.Headers {
		expected[foldHeader(h)]++
	}

	ok := len(header) == len(spec.Headers)
	if ok {
		got := make(map[string]int, len(header))
		for _, h := range header {
			got[foldHeader(h)]++
		}
		for k, n := range expected {
			if got[k] != n {
				ok = false
				break
			}
		}
	}
	if !ok {
		return nil, &Diagnostic{
			Category: CategoryHeader,
			Message:  "file columns must be exactly: " + strings.Join(spec.Headers, ", "),
		}
	}

	mapped := make([]MappedRow, 0, len(rows))
	for _, row := range rows {
		m := make(MappedRow, len(spec.Fields))
		for i, field := range spec.Fields {
			if i < len(row) {
				m[field] = row[i]
			}
		}
		mapped = append(mapped, m)
	}
	return mapped, nil
}
