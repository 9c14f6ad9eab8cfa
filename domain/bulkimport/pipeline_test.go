package bulkimport

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionHeader = []string{"Título", "Fecha", "Hora de inicio", "Hora de fin", "Vacantes"}

func sessionOpts() Options {
	return Options{Entity: EntitySessions, InPerson: true, Trace: zerolog.Nop()}
}

func TestRun_CleanBatchAccepted(t *testing.T) {
	rows := [][]Cell{
		{"Yoga", "15/03/2024", "7:00 a.m.", 0.375, 10.0},
		{"Box", "2024-03-15T00:00:00", "10:00", "11:00", 12.0},
	}
	result, err := Run(sessionHeader, rows, testSpec, sessionOpts())
	require.NoError(t, err)
	require.True(t, result.Accepted(), "diagnostics: %s", result.Diagnostics.Join())

	// Date and time fields come back normalized, ready for the creation API.
	assert.Equal(t, "2024-03-15", result.Rows[0][FieldDate])
	assert.Equal(t, "07:00", result.Rows[0][FieldStartTime])
	assert.Equal(t, "09:00", result.Rows[0][FieldEndTime])
	assert.Equal(t, "2024-03-15", result.Rows[1][FieldDate])
}

func TestRun_Precondition(t *testing.T) {
	result, err := Run(sessionHeader, nil, testSpec, Options{
		Entity:       EntitySessions,
		Trace:        zerolog.Nop(),
		Precondition: func() string { return "select a professional first" },
	})
	require.NoError(t, err)
	items := result.Diagnostics.Items()
	require.Len(t, items, 1)
	assert.Equal(t, CategoryPrecondition, items[0].Category)
	assert.Equal(t, "select a professional first", items[0].Message)
}

func TestRun_HeaderMismatchFailsFast(t *testing.T) {
	rows := [][]Cell{{"Yoga", "banana", "nope", "nope", -3.0}}
	result, err := Run([]string{"Wrong"}, rows, testSpec, sessionOpts())
	require.NoError(t, err)
	items := result.Diagnostics.Items()
	require.Len(t, items, 1, "no row validation runs after a header mismatch")
	assert.Equal(t, CategoryHeader, items[0].Category)
}

func TestRun_CategoryOrder(t *testing.T) {
	lima := time.FixedZone("America/Lima", -5*60*60)
	opts := sessionOpts()
	opts.CapacityCeiling = 20
	opts.Location = lima
	opts.ExistingIntervals = []ExistingInterval{{
		Date:  "2024-03-15",
		Start: time.Date(2024, 3, 15, 13, 0, 0, 0, lima),
		End:   time.Date(2024, 3, 15, 14, 0, 0, 0, lima),
	}}

	rows := [][]Cell{
		{"Over", "15/03/2024", "09:00", "10:00", 25.0},        // capacity
		{"Backwards", "15/03/2024", "11:00", "10:30", 10.0},   // hour order
		{"ClashA", "15/03/2024", "15:00", "16:00", 10.0},      // internal pair
		{"ClashB", "15/03/2024", "15:30", "16:30", 10.0},      // internal pair
		{"Busy", "15/03/2024", "13:30", "14:30", 10.0},        // external
		{"", "15/03/2024", "17:00", "18:00", 10.0},            // incomplete
	}
	result, err := Run(sessionHeader, rows, testSpec, opts)
	require.NoError(t, err)

	var cats []Category
	for _, diag := range result.Diagnostics.Items() {
		cats = append(cats, diag.Category)
	}
	assert.Equal(t, []Category{
		CategoryCapacity,
		CategoryHourOrder,
		CategoryInternalConflict,
		CategoryExternalConflict,
		CategoryIncomplete,
	}, cats)
	assert.False(t, result.Accepted())
}

func TestRun_UniqueNamesForCommunities(t *testing.T) {
	spec := ColumnSpec{Headers: []string{"Nombre", "Propósito"}, Fields: []string{"name", "purpose"}}
	rows := [][]Cell{
		{"Runners", "morning runs"},
		{"runners", "evening runs"},
	}
	result, err := Run([]string{"Nombre", "Propósito"}, rows, spec, Options{
		Entity:              EntityCommunities,
		ValidateUniqueNames: true,
		ExistingNames:       []string{"Lifters"},
		Trace:               zerolog.Nop(),
	})
	require.NoError(t, err)
	items := result.Diagnostics.Items()
	require.Len(t, items, 1)
	assert.Equal(t, CategoryDuplicateName, items[0].Category)
}

func TestRun_UnknownEntityOnlyCompleteness(t *testing.T) {
	rows := [][]Cell{
		{"Yoga", "15/03/2024", "10:00", "09:00", -1.0}, // would trip every session rule
		{"", "", "", "", nil},
	}
	result, err := Run(sessionHeader, rows, testSpec, Options{Entity: "unknown", Trace: zerolog.Nop()})
	require.NoError(t, err)
	items := result.Diagnostics.Items()
	require.Len(t, items, 1)
	assert.Equal(t, CategoryIncomplete, items[0].Category)
}

func TestRun_InvalidSpec(t *testing.T) {
	_, err := Run(nil, nil, ColumnSpec{Headers: []string{"A"}, Fields: []string{"x", "y"}}, Options{})
	require.Error(t, err)
}
