package bulkimport

import (
	"strings"
)

// normalizeName trims and lower-cases. Unlike the header fold this does NOT
// strip diacritics, matching the original dialog's inconsistent treatment;
// "Comunión" and "Comunion" are considered different names here.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// checkUniqueNames reports names duplicated within the batch and names that
// already exist outside it. Each offending name is reported once.
func checkUniqueNames(rows []MappedRow, existingNames []string, d *Diagnostics) {
	type occurrence struct {
		display string
		count   int
		rows    []int
	}

	order := make([]string, 0, len(rows))
	seen := make(map[string]*occurrence, len(rows))
	for i, row := range rows {
		display := strings.TrimSpace(CellString(row[FieldName]))
		if display == "" {
			continue
		}
		key := normalizeName(display)
		occ, ok := seen[key]
		if !ok {
			occ = &occurrence{display: display}
			seen[key] = occ
			order = append(order, key)
		}
		occ.count++
		occ.rows = append(occ.rows, rowNumber(i))
	}

	var dupNames []string
	var dupRows []int
	for _, key := range order {
		if occ := seen[key]; occ.count > 1 {
			dupNames = append(dupNames, occ.display)
			dupRows = append(dupRows, occ.rows...)
		}
	}
	if len(dupNames) > 0 {
		d.Appendf(CategoryDuplicateName, dupRows,
			"file contains duplicate names: %s", strings.Join(dupNames, ", "))
	}

	existing := make(map[string]bool, len(existingNames))
	for _, name := range existingNames {
		existing[normalizeName(name)] = true
	}
	var clashNames []string
	var clashRows []int
	for _, key := range order {
		if existing[key] {
			occ := seen[key]
			clashNames = append(clashNames, occ.display)
			clashRows = append(clashRows, occ.rows...)
		}
	}
	if len(clashNames) > 0 {
		d.Appendf(CategoryExistingName, clashRows,
			"names already exist: %s", strings.Join(clashNames, ", "))
	}
}
