package models

import (
	"strconv"

	"zencat/domain/bulkimport"
)

// SessionColumns is the canonical import template for session batches.
// Display headers are what the spreadsheet shows; fields are the logical
// names the pipeline and the creation API use.
var SessionColumns = bulkimport.ColumnSpec{
	Headers: []string{"Título", "Fecha", "Hora de inicio", "Hora de fin", "Vacantes"},
	Fields:  []string{"title", "date", "start_time", "end_time", "capacity"},
}

// Session is one row of a session batch, normalized and ready for bulk
// creation. Professional, local and link come from the upload request, not
// from the spreadsheet.
type Session struct {
	Title          string `json:"title" db:"title"`
	Date           string `json:"date" db:"date"`
	StartTime      string `json:"start_time" db:"start_time"`
	EndTime        string `json:"end_time" db:"end_time"`
	Capacity       int    `json:"capacity" db:"capacity"`
	ProfessionalID string `json:"professional_id" db:"professional_id"`
	LocalID        string `json:"local_id,omitempty" db:"local_id"`
	SessionLink    string `json:"session_link,omitempty" db:"session_link"`
}

// SessionFromRow builds a Session from a normalized MappedRow.
func SessionFromRow(row bulkimport.MappedRow) Session {
	capacity, _ := strconv.Atoi(bulkimport.CellString(row["capacity"]))
	if capacity == 0 {
		if f, err := strconv.ParseFloat(bulkimport.CellString(row["capacity"]), 64); err == nil {
			capacity = int(f)
		}
	}
	return Session{
		Title:     bulkimport.CellString(row["title"]),
		Date:      bulkimport.CellString(row[bulkimport.FieldDate]),
		StartTime: bulkimport.CellString(row[bulkimport.FieldStartTime]),
		EndTime:   bulkimport.CellString(row[bulkimport.FieldEndTime]),
		Capacity:  capacity,
	}
}
