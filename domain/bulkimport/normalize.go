package bulkimport

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	meridiemPattern  = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*([ap])\.?\s*m\.?\s*$`)
	basicTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d`)
	wallClockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// NormalizeDate converts a heterogeneous date cell into YYYY-MM-DD.
// Unrecognized input degrades to an empty string or passes through; this
// function never fails.
func NormalizeDate(v Cell) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format("2006-01-02")
	case string:
		if i := strings.Index(t, "T"); i >= 0 {
			return t[:i]
		}
		if strings.Contains(t, "/") {
			// Slash dates arrive as DD/MM/YYYY.
			parts := strings.Split(t, "/")
			if len(parts) == 3 {
				return fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[1]), pad2(parts[0]))
			}
			return t
		}
		// Assumed already YYYY-MM-DD.
		return t
	default:
		return ""
	}
}

// NormalizeTime converts a heterogeneous time cell into zero-padded HH:MM.
// Numeric cells are Excel-style day fractions (0.5 is noon). Strings with an
// am/pm marker are shifted to 24-hour form. Anything else that is a string
// falls back to its first five characters: a malformed value yields garbage
// that later fails the hour-order check instead of crashing the import here.
func NormalizeTime(v Cell) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("15:04")
	case float64:
		total := int(math.Round(t * 1440))
		return fmt.Sprintf("%02d:%02d", total/60, total%60)
	case int:
		return NormalizeTime(float64(t))
	case string:
		if m := meridiemPattern.FindStringSubmatch(t); m != nil {
			hour, _ := strconv.Atoi(m[1])
			minute, _ := strconv.Atoi(m[2])
			pm := strings.EqualFold(m[3], "p")
			if pm && hour < 12 {
				hour += 12
			}
			if !pm && hour == 12 {
				hour = 0
			}
			return fmt.Sprintf("%02d:%02d", hour, minute)
		}
		if basicTimePattern.MatchString(t) {
			return t[:5]
		}
		return firstN(t, 5)
	default:
		return ""
	}
}

// MinutesOfDay parses a normalized HH:MM string into minutes since midnight.
// Single-digit hours are tolerated because the permissive fallback in
// NormalizeTime can emit them.
func MinutesOfDay(s string) (int, bool) {
	m := wallClockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// CellString renders any cell as the string the creation API receives.
func CellString(v Cell) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func firstN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
