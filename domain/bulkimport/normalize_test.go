package bulkimport

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   Cell
		want string
	}{
		{"native date uses UTC calendar day", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "2024-03-15"},
		{"iso datetime keeps date part", "2024-03-15T10:00:00", "2024-03-15"},
		{"slash date is DD/MM/YYYY", "15/03/2024", "2024-03-15"},
		{"slash date zero-pads", "5/3/2024", "2024-03-05"},
		{"plain string passes through", "2024-03-15", "2024-03-15"},
		{"malformed slash string passes through", "15/03", "15/03"},
		{"number degrades to empty", 3.5, ""},
		{"nil degrades to empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.in); got != tt.want {
				t.Errorf("NormalizeDate(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name string
		in   Cell
		want string
	}{
		{"half day fraction is noon", 0.5, "12:00"},
		{"quarter day fraction", 0.25, "06:00"},
		{"fraction rounds to nearest minute", 0.4999, "12:00"},
		{"native time uses local clock", time.Date(2024, 3, 15, 9, 15, 0, 0, time.Local), "09:15"},
		{"am marker with dots", "7:00 a.m.", "07:00"},
		{"am marker without dots", "7:00 am", "07:00"},
		{"am marker partial dots", "7:00 a.m", "07:00"},
		{"pm marker adds twelve", "7:30 p.m.", "19:30"},
		{"pm marker no space", "7:30pm", "19:30"},
		{"noon pm unchanged", "12:00 p.m.", "12:00"},
		{"midnight am zeroed", "12:00 a.m.", "00:00"},
		{"already 24h passes", "19:30", "19:30"},
		{"24h with seconds truncated", "19:30:45", "19:30"},
		{"garbage keeps first five characters", "whenever", "whene"},
		{"short garbage kept whole", "9h", "9h"},
		{"nil degrades to empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTime(tt.in); got != tt.want {
				t.Errorf("NormalizeTime(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"09:30", 570, true},
		{"9:30", 570, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"09:60", 0, false},
		{"whene", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := MinutesOfDay(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("MinutesOfDay(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
