// Package excel ingests tabular files into frames. It reads .xlsx workbooks
// (always Sheet1, first row as header) and .csv files, inferring per column
// whether the values are numeric or labels.
package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"regviz/frame"
)

var (
	// ErrNoDataRows reports a file without at least a header row and one
	// data row.
	ErrNoDataRows = errors.New("file must have at least a header row and one data row")

	// ErrUnsupportedFormat reports a file extension the reader cannot parse.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Reader loads one tabular file. The format is picked from the extension:
// .csv parses as CSV, anything else is treated as an xlsx workbook.
type Reader struct {
	path string
	kind string // "xlsx" or "csv"
}

// NewReader builds a reader for the given file path.
func NewReader(path string) *Reader {
	kind := "xlsx"
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		kind = "csv"
	}
	return &Reader{path: path, kind: kind}
}

// Read loads the file into a frame. Columns where every non-blank cell
// parses as a number become numeric columns with blanks stored as NaN;
// every other column keeps its cells as trimmed strings.
func (r *Reader) Read() (*frame.Frame, error) {
	log.Printf("[excel] reading %s file: %s", r.kind, r.path)

	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.kind), r.path)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.kind {
	case "csv":
		rows, err = r.readCSV()
	case "xlsx":
		rows, err = r.readWorkbook()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, r.kind)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrNoDataRows, r.path)
	}
	return r.buildFrame(rows)
}

// ReadFile is a convenience wrapper for one-shot loads.
func ReadFile(path string) (*frame.Frame, error) {
	return NewReader(path).Read()
}

func (r *Reader) readWorkbook() ([][]string, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return rows, nil
}

func (r *Reader) readCSV() ([][]string, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// buildFrame trims every cell, infers a kind per column, and assembles the
// frame. Short rows are padded with blanks so ragged input still loads.
func (r *Reader) buildFrame(rows [][]string) (*frame.Frame, error) {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	cells := make([][]string, len(headers))
	for j := range cells {
		cells[j] = make([]string, len(rows)-1)
	}
	for i := 1; i < len(rows); i++ {
		for j := range headers {
			if j < len(rows[i]) {
				cells[j][i-1] = strings.TrimSpace(rows[i][j])
			}
		}
	}

	cols := make([]frame.Column, 0, len(headers))
	numericCount := 0
	for j, name := range headers {
		if vals, ok := numericColumn(cells[j]); ok {
			cols = append(cols, frame.NumericColumn(name, vals))
			numericCount++
			continue
		}
		cols = append(cols, frame.StringColumn(name, cells[j]))
	}

	log.Printf("[excel] %s file processed (%d columns, %d numeric, %d rows)",
		strings.ToUpper(r.kind), len(headers), numericCount, len(rows)-1)
	return frame.New(cols...)
}

// numericColumn parses a column as numbers. It succeeds when at least one
// cell is non-blank and every non-blank cell parses; blanks come back as NaN.
func numericColumn(cells []string) ([]float64, bool) {
	vals := make([]float64, len(cells))
	parsed := 0
	for i, cell := range cells {
		if cell == "" {
			vals[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
		parsed++
	}
	return vals, parsed > 0
}
