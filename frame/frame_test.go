package frame

import (
	"math"
	"testing"
)

func TestNew_RejectsRaggedColumns(t *testing.T) {
	_, err := New(
		NumericColumn("a", []float64{1, 2, 3}),
		NumericColumn("b", []float64{1, 2}),
	)
	if err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestNew_RejectsDuplicateNames(t *testing.T) {
	_, err := New(
		NumericColumn("a", []float64{1}),
		StringColumn("a", []string{"x"}),
	)
	if err == nil {
		t.Fatal("expected duplicate column error")
	}
}

func TestNumeric_CopiesValues(t *testing.T) {
	f, err := New(NumericColumn("a", []float64{1, 2, 3}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := f.Numeric("a")
	if err != nil {
		t.Fatalf("Numeric: %v", err)
	}
	got[0] = 99
	again, _ := f.Numeric("a")
	if again[0] != 1 {
		t.Errorf("frame storage mutated through accessor copy: got %v", again[0])
	}
}

func TestNumeric_Errors(t *testing.T) {
	f, _ := New(StringColumn("id", []string{"a", "b"}))

	if _, err := f.Numeric("missing"); !IsColumnNotFound(err) {
		t.Errorf("missing column: expected ErrColumnNotFound, got %v", err)
	}
	if _, err := f.Numeric("id"); err == nil {
		t.Error("string column via Numeric: expected type error")
	}
}

func TestLabels_FormatsNumeric(t *testing.T) {
	f, _ := New(NumericColumn("heat", []float64{101, 102.5}))
	got, err := f.Labels("heat")
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}
	if got[0] != "101" || got[1] != "102.5" {
		t.Errorf("unexpected labels: %v", got)
	}
}

func TestWithNumeric_DoesNotTouchOriginal(t *testing.T) {
	f, _ := New(
		NumericColumn("x", []float64{1, 2}),
		NumericColumn("y", []float64{3, 4}),
	)
	g, err := f.WithNumeric("x", []float64{7, 7})
	if err != nil {
		t.Fatalf("WithNumeric: %v", err)
	}
	orig, _ := f.Numeric("x")
	repl, _ := g.Numeric("x")
	if orig[0] != 1 || repl[0] != 7 {
		t.Errorf("copy-on-write broken: orig=%v repl=%v", orig, repl)
	}
	if _, err := f.WithNumeric("x", []float64{1}); err == nil {
		t.Error("expected length mismatch for short replacement")
	}
}

func TestMatrix_RowMajor(t *testing.T) {
	f, _ := New(
		NumericColumn("a", []float64{1, 2}),
		NumericColumn("b", []float64{10, 20}),
	)
	m, err := f.Matrix("b", "a")
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	if m[0][0] != 10 || m[0][1] != 1 || m[1][0] != 20 || m[1][1] != 2 {
		t.Errorf("unexpected matrix: %v", m)
	}
}

func TestDropNaN(t *testing.T) {
	f, _ := New(
		NumericColumn("x", []float64{1, math.NaN(), 3}),
		StringColumn("id", []string{"a", "b", "c"}),
	)
	g, err := f.DropNaN()
	if err != nil {
		t.Fatalf("DropNaN: %v", err)
	}
	if g.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", g.Rows())
	}
	ids, _ := g.Labels("id")
	if ids[0] != "a" || ids[1] != "c" {
		t.Errorf("wrong rows kept: %v", ids)
	}
}

func TestRequireRows(t *testing.T) {
	f, _ := New(NumericColumn("x", []float64{1, 2}))
	if err := f.RequireRows(2); err != nil {
		t.Errorf("RequireRows(2): %v", err)
	}
	if err := f.RequireRows(3); !IsInsufficientRows(err) {
		t.Errorf("RequireRows(3): expected ErrInsufficientRows, got %v", err)
	}
}
