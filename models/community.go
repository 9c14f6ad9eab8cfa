package models

import (
	"zencat/domain/bulkimport"
)

// CommunityColumns is the canonical import template for community batches.
var CommunityColumns = bulkimport.ColumnSpec{
	Headers: []string{"Nombre", "Propósito"},
	Fields:  []string{"name", "purpose"},
}

// Community is one row of a community batch.
type Community struct {
	Name    string `json:"name" db:"name"`
	Purpose string `json:"purpose" db:"purpose"`
}

// CommunityFromRow builds a Community from a mapped row.
func CommunityFromRow(row bulkimport.MappedRow) Community {
	return Community{
		Name:    bulkimport.CellString(row[bulkimport.FieldName]),
		Purpose: bulkimport.CellString(row["purpose"]),
	}
}

// ColumnsFor returns the template for an entity module, if one exists.
func ColumnsFor(entity string) (bulkimport.ColumnSpec, bool) {
	switch entity {
	case bulkimport.EntitySessions:
		return SessionColumns, true
	case bulkimport.EntityCommunities:
		return CommunityColumns, true
	default:
		return bulkimport.ColumnSpec{}, false
	}
}
