package bulkimport

import (
	"time"
)

// normalizeIntervals reduces rows to minute intervals on their calendar date.
// Rows whose date or times fail to normalize are skipped: a malformed row is
// reported by the completeness or hour-order checks, never treated as a
// conflict.
func normalizeIntervals(rows []MappedRow) []NormalizedInterval {
	out := make([]NormalizedInterval, 0, len(rows))
	for i, row := range rows {
		date := NormalizeDate(row[FieldDate])
		if date == "" {
			continue
		}
		start, okS := MinutesOfDay(NormalizeTime(row[FieldStartTime]))
		end, okE := MinutesOfDay(NormalizeTime(row[FieldEndTime]))
		if !okS || !okE || end <= start {
			continue
		}
		out = append(out, NormalizedInterval{Date: date, StartMinutes: start, EndMinutes: end, Row: rowNumber(i)})
	}
	return out
}

// minutesOverlap is the closed-open [start, end) intersection test used for
// conflicts inside the batch. Touching endpoints do not overlap.
func minutesOverlap(a, b NormalizedInterval) bool {
	return (a.StartMinutes <= b.StartMinutes && b.StartMinutes < a.EndMinutes) ||
		(b.StartMinutes <= a.StartMinutes && a.StartMinutes < b.EndMinutes) ||
		(a.StartMinutes <= b.StartMinutes && a.EndMinutes >= b.EndMinutes)
}

// checkInternalConflicts reports every overlapping pair of rows on the same
// date, one diagnostic line per pair.
func checkInternalConflicts(rows []MappedRow, d *Diagnostics) {
	intervals := normalizeIntervals(rows)
	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			a, b := intervals[i], intervals[j]
			if a.Date != b.Date {
				continue
			}
			if minutesOverlap(a, b) {
				d.Appendf(CategoryInternalConflict, []int{a.Row, b.Row},
					"rows %d and %d have overlapping schedules", a.Row, b.Row)
			}
		}
	}
}

// instant pins a date plus wall-clock minutes to the reference timezone.
func instant(date string, minutes int, loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(time.Duration(minutes) * time.Minute), true
}

// checkExternalConflicts compares every row against the caller-supplied
// committed intervals using strict open-interval overlap on absolute instants.
// The per-comparison dump goes to the trace logger at debug level; only the
// summary lines reach the diagnostics.
func checkExternalConflicts(rows []MappedRow, opts Options, d *Diagnostics) {
	existing := opts.ExistingIntervals
	if len(existing) == 0 {
		return
	}
	loc := opts.location()
	for _, iv := range normalizeIntervals(rows) {
		start, ok := instant(iv.Date, iv.StartMinutes, loc)
		if !ok {
			continue
		}
		end, _ := instant(iv.Date, iv.EndMinutes, loc)

		conflicted := false
		for _, ex := range existing {
			opts.Trace.Debug().
				Int("row", iv.Row).
				Str("date", iv.Date).
				Time("row_start", start).
				Time("row_end", end).
				Str("existing_date", ex.Date).
				Time("existing_start", ex.Start).
				Time("existing_end", ex.End).
				Msg("external conflict comparison")
			if iv.Date == ex.Date && start.Before(ex.End) && end.After(ex.Start) {
				conflicted = true
			}
		}
		if conflicted {
			d.Appendf(CategoryExternalConflict, []int{iv.Row},
				"row %d overlaps an existing session", iv.Row)
		}
	}
}
