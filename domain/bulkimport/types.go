package bulkimport

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Cell is a single spreadsheet cell value. Depending on how the source file
// types its cells this is a string, a float64 (plain numbers and Excel
// fractional-day times) or a time.Time (native date cells).
type Cell any

// MappedRow is one data row re-keyed from display headers to logical field names.
type MappedRow map[string]Cell

// Entity modules that activate entity-specific validation rules.
const (
	EntitySessions    = "sessions"
	EntityCommunities = "communities"
)

// Logical field names the entity-specific rules look for.
const (
	FieldName      = "name"
	FieldDate      = "date"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldCapacity  = "capacity"
)

// ColumnSpec pairs human-readable column titles with logical field names.
// Index i of Headers corresponds to index i of Fields.
type ColumnSpec struct {
	Headers []string
	Fields  []string
}

// Validate checks the structural invariants of the spec itself.
func (s ColumnSpec) Validate() error {
	if len(s.Headers) == 0 {
		return fmt.Errorf("column spec has no columns")
	}
	if len(s.Headers) != len(s.Fields) {
		return fmt.Errorf("column spec mismatch: %d headers, %d fields", len(s.Headers), len(s.Fields))
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if seen[f] {
			return fmt.Errorf("column spec has duplicate field %q", f)
		}
		seen[f] = true
	}
	return nil
}

// HasFields reports whether every named field is part of the spec.
func (s ColumnSpec) HasFields(fields ...string) bool {
	present := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		present[f] = true
	}
	for _, f := range fields {
		if !present[f] {
			return false
		}
	}
	return true
}

// Category classifies a diagnostic for programmatic consumers. The
// user-facing text in Message is what the original dialog displayed.
type Category string

const (
	CategoryPrecondition     Category = "precondition"
	CategoryHeader           Category = "header"
	CategoryCapacity         Category = "capacity"
	CategoryHourOrder        Category = "hour_order"
	CategoryInternalConflict Category = "internal_conflict"
	CategoryExternalConflict Category = "external_conflict"
	CategoryDuplicateName    Category = "duplicate_name"
	CategoryExistingName     Category = "existing_name"
	CategoryIncomplete       Category = "incomplete"
)

// Diagnostic is one human-readable validation failure, optionally referencing
// 1-based row numbers (the header row counts as row 1).
type Diagnostic struct {
	Category Category `json:"category"`
	Rows     []int    `json:"rows,omitempty"`
	Message  string   `json:"message"`
}

// Diagnostics is an ordered, append-only collection of validation failures.
// Each pipeline stage appends to it; it is never shared between imports.
type Diagnostics struct {
	items []Diagnostic
}

// Append adds one diagnostic preserving insertion order.
func (d *Diagnostics) Append(diag Diagnostic) {
	d.items = append(d.items, diag)
}

// Appendf formats and appends a diagnostic in one step.
func (d *Diagnostics) Appendf(cat Category, rows []int, format string, args ...any) {
	d.Append(Diagnostic{Category: cat, Rows: rows, Message: fmt.Sprintf(format, args...)})
}

// Empty reports whether any diagnostic has been collected.
func (d *Diagnostics) Empty() bool { return len(d.items) == 0 }

// Items returns the collected diagnostics in insertion order.
func (d *Diagnostics) Items() []Diagnostic { return d.items }

// Join renders every message on its own line, the shape the dialog shows verbatim.
func (d *Diagnostics) Join() string {
	msgs := make([]string, len(d.items))
	for i, diag := range d.items {
		msgs[i] = diag.Message
	}
	return strings.Join(msgs, "\n")
}

// NormalizedInterval is a row's schedule reduced to wall-clock minutes on a
// calendar date. Invariant: 0 <= StartMinutes < EndMinutes <= 1440 for rows
// that participate in conflict detection; rows that fail to normalize are
// simply left out (best-effort, never an error).
type NormalizedInterval struct {
	Date         string
	StartMinutes int
	EndMinutes   int
	Row          int // 1-based file row number
}

// ExistingInterval is an already-committed session supplied by the caller.
// Read-only input to the conflict detector.
type ExistingInterval struct {
	Date  string    `json:"date"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Options selects which validation stages run and feeds them external state.
type Options struct {
	// Entity activates entity-specific rule sets; unknown values run only
	// the generic completeness check.
	Entity string

	// Precondition is evaluated before anything else. A non-empty return
	// value becomes the sole diagnostic and no rows are processed.
	Precondition func() string

	// ValidateUniqueNames enables the duplicate-name checks over FieldName.
	ValidateUniqueNames bool
	ExistingNames       []string

	// ExistingIntervals are compared against session rows for overlaps.
	ExistingIntervals []ExistingInterval

	// CapacityCeiling caps FieldCapacity for in-person bookings. Zero means
	// unbounded.
	CapacityCeiling float64
	InPerson        bool

	// Location is the reference timezone used to turn a row's date and time
	// into absolute instants for external-conflict comparison.
	Location *time.Location

	// Trace receives the verbose per-row conflict dump at debug level. It is
	// kept out of the user-facing diagnostics on purpose.
	Trace zerolog.Logger
}

// DefaultLocation is the platform's reference timezone (Lima, UTC-5, no DST).
var DefaultLocation = time.FixedZone("America/Lima", -5*60*60)

func (o Options) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return DefaultLocation
}

// Result is the outcome of one reconciliation run. Rows are only meaningful
// when Diagnostics is empty: the import is strictly all-or-nothing.
type Result struct {
	Rows        []MappedRow
	Diagnostics Diagnostics
}

// Accepted reports whether every row passed and may be forwarded downstream.
func (r Result) Accepted() bool { return r.Diagnostics.Empty() }
