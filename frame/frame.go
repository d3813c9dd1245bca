// Package frame provides the tabular dataset value handed to every chart
// function: ordered, equal-length, uniquely named columns holding either
// float64 or string data. A Frame is immutable once built; accessors return
// copies so no chart call can observe another call's work.
package frame

import (
	"fmt"
	"math"
	"strconv"
)

// Kind tags the storage type of a column.
type Kind int

const (
	Numeric Kind = iota
	String
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "string"
}

// Column is one named series. Numeric columns use NaN for missing cells.
type Column struct {
	name   string
	kind   Kind
	floats []float64
	labels []string
}

// NumericColumn builds a float64 column. The input slice is copied.
func NumericColumn(name string, values []float64) Column {
	c := Column{name: name, kind: Numeric, floats: make([]float64, len(values))}
	copy(c.floats, values)
	return c
}

// StringColumn builds a string column. The input slice is copied.
func StringColumn(name string, values []string) Column {
	c := Column{name: name, kind: String, labels: make([]string, len(values))}
	copy(c.labels, values)
	return c
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Kind returns the column storage kind.
func (c Column) Kind() Kind { return c.kind }

// Len returns the number of cells.
func (c Column) Len() int {
	if c.kind == Numeric {
		return len(c.floats)
	}
	return len(c.labels)
}

// Frame is an ordered, column-addressable table.
type Frame struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New assembles a frame, rejecting duplicate names and ragged columns.
// A frame with zero rows is legal; row minimums are enforced by the chart
// functions that consume it.
func New(cols ...Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if c.name == "" {
			return nil, fmt.Errorf("%w: column %d is unnamed", ErrColumnType, i)
		}
		if _, dup := f.index[c.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, expected %d", ErrLengthMismatch, c.name, c.Len(), f.rows)
		}
		f.index[c.name] = i
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// Rows returns the row count.
func (f *Frame) Rows() int { return f.rows }

// Columns returns column names in declaration order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.name
	}
	return names
}

// NumericColumns returns the names of numeric columns in declaration order.
func (f *Frame) NumericColumns() []string {
	var names []string
	for _, c := range f.cols {
		if c.kind == Numeric {
			names = append(names, c.name)
		}
	}
	return names
}

// Has reports whether a column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// KindOf returns the kind of a column and whether it exists.
func (f *Frame) KindOf(name string) (Kind, bool) {
	i, ok := f.index[name]
	if !ok {
		return Numeric, false
	}
	return f.cols[i].kind, true
}

// Numeric returns a copy of a numeric column's values.
func (f *Frame) Numeric(name string) ([]float64, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, NewColumnNotFoundError(name)
	}
	c := f.cols[i]
	if c.kind != Numeric {
		return nil, NewColumnTypeError(name, Numeric)
	}
	out := make([]float64, len(c.floats))
	copy(out, c.floats)
	return out, nil
}

// Labels returns a column as strings: string columns verbatim, numeric
// columns formatted. Charts use this for id axes and hover text.
func (f *Frame) Labels(name string) ([]string, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, NewColumnNotFoundError(name)
	}
	c := f.cols[i]
	if c.kind == String {
		out := make([]string, len(c.labels))
		copy(out, c.labels)
		return out, nil
	}
	out := make([]string, len(c.floats))
	for j, v := range c.floats {
		out[j] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out, nil
}

// Select returns a new frame holding only the named columns, in the order
// given. The underlying column storage is shared; frames never mutate it.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		i, ok := f.index[name]
		if !ok {
			return nil, NewColumnNotFoundError(name)
		}
		cols = append(cols, f.cols[i])
	}
	return New(cols...)
}

// WithNumeric returns a copy of the frame with one numeric column's values
// replaced. Used by sweeps that re-predict over a synthetic grid.
func (f *Frame) WithNumeric(name string, values []float64) (*Frame, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, NewColumnNotFoundError(name)
	}
	if f.cols[i].kind != Numeric {
		return nil, NewColumnTypeError(name, Numeric)
	}
	if len(values) != f.rows {
		return nil, fmt.Errorf("%w: %q replacement has %d rows, expected %d", ErrLengthMismatch, name, len(values), f.rows)
	}
	cols := make([]Column, len(f.cols))
	copy(cols, f.cols)
	cols[i] = NumericColumn(name, values)
	return New(cols...)
}

// Matrix returns the named numeric columns as row-major [][]float64.
func (f *Frame) Matrix(names ...string) ([][]float64, error) {
	series := make([][]float64, len(names))
	for j, name := range names {
		col, err := f.Numeric(name)
		if err != nil {
			return nil, err
		}
		series[j] = col
	}
	rows := make([][]float64, f.rows)
	for i := range rows {
		rows[i] = make([]float64, len(names))
		for j := range names {
			rows[i][j] = series[j][i]
		}
	}
	return rows, nil
}

// RequireRows fails when the frame holds fewer than min rows.
func (f *Frame) RequireRows(min int) error {
	if f.rows < min {
		return NewInsufficientRowsError(min, f.rows)
	}
	return nil
}

// DropNaN returns a frame keeping only rows where every named numeric column
// is a real number. With no names it checks every numeric column.
func (f *Frame) DropNaN(names ...string) (*Frame, error) {
	if len(names) == 0 {
		names = f.NumericColumns()
	}
	checked := make([][]float64, len(names))
	for j, name := range names {
		col, err := f.Numeric(name)
		if err != nil {
			return nil, err
		}
		checked[j] = col
	}
	keep := make([]bool, f.rows)
	kept := 0
	for i := 0; i < f.rows; i++ {
		keep[i] = true
		for j := range checked {
			if math.IsNaN(checked[j][i]) {
				keep[i] = false
				break
			}
		}
		if keep[i] {
			kept++
		}
	}
	cols := make([]Column, len(f.cols))
	for ci, c := range f.cols {
		if c.kind == Numeric {
			vals := make([]float64, 0, kept)
			for i, v := range c.floats {
				if keep[i] {
					vals = append(vals, v)
				}
			}
			cols[ci] = Column{name: c.name, kind: Numeric, floats: vals}
			continue
		}
		vals := make([]string, 0, kept)
		for i, v := range c.labels {
			if keep[i] {
				vals = append(vals, v)
			}
		}
		cols[ci] = Column{name: c.name, kind: String, labels: vals}
	}
	return New(cols...)
}
