package excel

import (
	"bytes"
	"fmt"

	"zencat/domain/bulkimport"

	"github.com/xuri/excelize/v2"
)

// BuildTemplate produces a downloadable xlsx with the spec's display headers
// on row 1 so uploads round-trip through the column mapper.
func BuildTemplate(spec bulkimport.ColumnSpec) (*bytes.Buffer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, header := range spec.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address column %d: %w", i+1, err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", header, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(spec.Headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize template: %w", err)
	}
	return buf, nil
}
