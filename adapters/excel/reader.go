package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"zencat/domain/bulkimport"

	"github.com/xuri/excelize/v2"
)

// Table is the parsed contents of one uploaded file: the raw header row and
// typed data cells. Excel cells keep their native typing (numbers as float64,
// date cells as time.Time); CSV cells are always strings.
type Table struct {
	Headers []string
	Rows    [][]bulkimport.Cell
}

// Reader parses uploaded spreadsheet files.
type Reader struct{}

// NewReader creates a spreadsheet reader for xlsx and csv uploads.
func NewReader() *Reader { return &Reader{} }

// Parse reads the upload into a Table. The format is chosen by the uploaded
// filename's extension; anything that is not .csv is treated as xlsx.
func (r *Reader) Parse(src io.Reader, filename string) (*Table, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		return r.parseCSV(src)
	}
	return r.parseExcel(src)
}

func (r *Reader) parseCSV(src io.Reader) (*Table, error) {
	rows, err := csv.NewReader(src).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	table := &Table{Headers: trimAll(rows[0])}
	for _, row := range rows[1:] {
		cells := make([]bulkimport.Cell, len(row))
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

func (r *Reader) parseExcel(src io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	sheet := sheets[0]

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(formatted) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	table := &Table{Headers: trimAll(formatted[0])}
	for i := 1; i < len(formatted); i++ {
		fmtRow := formatted[i]
		var rawRow []string
		if i < len(raw) {
			rawRow = raw[i]
		}
		cells := make([]bulkimport.Cell, len(fmtRow))
		for j, formattedCell := range fmtRow {
			rawCell := ""
			if j < len(rawRow) {
				rawCell = rawRow[j]
			}
			cells[j] = typedCell(rawCell, strings.TrimSpace(formattedCell))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

var (
	timeFormatted = regexp.MustCompile(`^\d{1,2}:\d{2}`)
	dateFormatted = regexp.MustCompile(`^\d{1,4}[-/]\d{1,2}[-/]\d{1,4}`)
)

// typedCell reconstructs a cell's native type from its raw stored value and
// the rendered form excelize produced from the cell's number format. Excel
// stores both dates and clock times as day serials; the applied format is the
// only way to tell them apart.
func typedCell(raw, formatted string) bulkimport.Cell {
	if raw == "" || raw == formatted {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
		return formatted
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return formatted
	}
	switch {
	case timeFormatted.MatchString(formatted):
		// Time-formatted serial: keep only the fractional day.
		return v - float64(int64(v))
	case dateFormatted.MatchString(formatted):
		t, convErr := excelize.ExcelDateToTime(v, false)
		if convErr != nil {
			return formatted
		}
		return t
	default:
		return v
	}
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, s := range row {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
