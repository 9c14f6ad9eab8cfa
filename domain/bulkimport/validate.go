package bulkimport

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// rowNumber converts a 0-based data row index into the 1-based file row
// number used in diagnostics. The header occupies row 1.
func rowNumber(i int) int { return i + 2 }

func joinRows(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ", ")
}

// cellEmpty mirrors the completeness rule: strings must be non-blank after
// trimming, other values must be truthy.
func cellEmpty(v Cell) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case float64:
		return t == 0
	case int:
		return t == 0
	case bool:
		return !t
	case time.Time:
		return t.IsZero()
	default:
		return false
	}
}

// checkCompleteness flags rows with any missing field. One aggregated
// diagnostic is produced; this is always the last category appended.
func checkCompleteness(rows []MappedRow, spec ColumnSpec, d *Diagnostics) {
	var bad []int
	for i, row := range rows {
		for _, field := range spec.Fields {
			if cellEmpty(row[field]) {
				bad = append(bad, rowNumber(i))
				break
			}
		}
	}
	if len(bad) > 0 {
		d.Appendf(CategoryIncomplete, bad, "rows with incomplete fields: %s", joinRows(bad))
	}
}

// parseNumber reads a numeric cell that may arrive as a float or a string.
func parseNumber(v Cell) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// checkCapacity enforces capacity > 0 and, for in-person bookings with a
// known venue ceiling, capacity <= ceiling. Per-row messages are joined into
// one aggregated diagnostic.
func checkCapacity(rows []MappedRow, opts Options, d *Diagnostics) {
	var (
		lines   []string
		badRows []int
	)
	for i, row := range rows {
		n, ok := parseNumber(row[FieldCapacity])
		switch {
		case !ok || n <= 0:
			lines = append(lines, fmt.Sprintf("row %d: capacity must be a number greater than 0", rowNumber(i)))
			badRows = append(badRows, rowNumber(i))
		case opts.InPerson && opts.CapacityCeiling > 0 && n > opts.CapacityCeiling:
			lines = append(lines, fmt.Sprintf("row %d: capacity exceeds the venue capacity of %s",
				rowNumber(i), strconv.FormatFloat(opts.CapacityCeiling, 'f', -1, 64)))
			badRows = append(badRows, rowNumber(i))
		}
	}
	if len(lines) > 0 {
		d.Append(Diagnostic{Category: CategoryCapacity, Rows: badRows, Message: strings.Join(lines, "\n")})
	}
}

// checkHourOrder flags rows whose times fail to parse or whose end does not
// come strictly after its start.
func checkHourOrder(rows []MappedRow, d *Diagnostics) {
	var bad []int
	for i, row := range rows {
		start, okS := MinutesOfDay(NormalizeTime(row[FieldStartTime]))
		end, okE := MinutesOfDay(NormalizeTime(row[FieldEndTime]))
		if !okS || !okE || end <= start {
			bad = append(bad, rowNumber(i))
		}
	}
	if len(bad) > 0 {
		d.Appendf(CategoryHourOrder, bad, "rows with end time before or equal to start time: %s", joinRows(bad))
	}
}
