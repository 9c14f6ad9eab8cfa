package bulkimport

import (
	"testing"
)

var testSpec = ColumnSpec{
	Headers: []string{"Título", "Fecha", "Hora de inicio", "Hora de fin", "Vacantes"},
	Fields:  []string{"title", "date", "start_time", "end_time", "capacity"},
}

func TestMapRows_HeaderValidation(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		wantOK bool
	}{
		{
			name:   "exact headers",
			header: []string{"Título", "Fecha", "Hora de inicio", "Hora de fin", "Vacantes"},
			wantOK: true,
		},
		{
			name:   "permuted headers still accepted",
			header: []string{"Vacantes", "Fecha", "Título", "Hora de fin", "Hora de inicio"},
			wantOK: true,
		},
		{
			name:   "case and diacritics ignored",
			header: []string{"titulo", "FECHA", "hora de inicio", "HORA DE FIN", "vacantes"},
			wantOK: true,
		},
		{
			name:   "substituted header rejected",
			header: []string{"Título", "Fecha", "Hora de inicio", "Hora de fin", "Aforo"},
			wantOK: false,
		},
		{
			name:   "missing header rejected",
			header: []string{"Título", "Fecha", "Hora de inicio", "Hora de fin"},
			wantOK: false,
		},
		{
			name:   "extra header rejected",
			header: []string{"Título", "Fecha", "Hora de inicio", "Hora de fin", "Vacantes", "Extra"},
			wantOK: false,
		},
		{
			name:   "duplicate of one header rejected",
			header: []string{"Título", "Título", "Hora de inicio", "Hora de fin", "Vacantes"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diag := MapRows(tt.header, nil, testSpec)
			if tt.wantOK && diag != nil {
				t.Fatalf("expected headers to pass, got diagnostic: %s", diag.Message)
			}
			if !tt.wantOK {
				if diag == nil {
					t.Fatal("expected a header diagnostic, got none")
				}
				if diag.Category != CategoryHeader {
					t.Fatalf("expected header category, got %s", diag.Category)
				}
			}
		})
	}
}

// Mapping stays positional after the order-insensitive header check. A file
// with reordered columns passes validation but maps cells by position, not by
// header text. This pins the inherited behavior described in DESIGN.md.
func TestMapRows_PositionalReKeying(t *testing.T) {
	spec := ColumnSpec{Headers: []string{"A", "B"}, Fields: []string{"x", "y"}}
	rows, diag := MapRows([]string{"B", "A"}, [][]Cell{{1, 2}}, spec)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %s", diag.Message)
	}
	if rows[0]["x"] != 1 || rows[0]["y"] != 2 {
		t.Fatalf("expected positional mapping {x:1 y:2}, got %v", rows[0])
	}
}

func TestMapRows_ShortRows(t *testing.T) {
	spec := ColumnSpec{Headers: []string{"A", "B"}, Fields: []string{"x", "y"}}
	rows, diag := MapRows([]string{"A", "B"}, [][]Cell{{"only"}}, spec)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %s", diag.Message)
	}
	if rows[0]["x"] != "only" {
		t.Fatalf("expected x=only, got %v", rows[0]["x"])
	}
	if _, present := rows[0]["y"]; present {
		t.Fatal("missing trailing cell should not be mapped")
	}
}
