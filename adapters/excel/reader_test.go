package excel

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"regviz/frame"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_CSVInference(t *testing.T) {
	path := writeCSV(t, "heat_id,furnace_temp,note\nHEAT-1,1550.5,ok\nHEAT-2,,cold\nHEAT-3,1491,ok\n")

	df, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 3, df.Rows())

	kind, ok := df.KindOf("furnace_temp")
	require.True(t, ok)
	assert.Equal(t, frame.Numeric, kind)
	temps, err := df.Numeric("furnace_temp")
	require.NoError(t, err)
	assert.Equal(t, 1550.5, temps[0])
	assert.True(t, math.IsNaN(temps[1]))
	assert.Equal(t, 1491.0, temps[2])

	kind, ok = df.KindOf("heat_id")
	require.True(t, ok)
	assert.Equal(t, frame.String, kind)
	ids, err := df.Labels("heat_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"HEAT-1", "HEAT-2", "HEAT-3"}, ids)
}

func TestRead_CSVRaggedAndBlankColumns(t *testing.T) {
	path := writeCSV(t, "a,b\n 1 ,\n2\n")

	df, err := ReadFile(path)
	require.NoError(t, err)

	vals, err := df.Numeric("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vals)

	// A column with no non-blank cells stays a string column.
	kind, ok := df.KindOf("b")
	require.True(t, ok)
	assert.Equal(t, frame.String, kind)
	labels, err := df.Labels("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"", ""}, labels)
}

func TestRead_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "grade"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 1.5))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "low"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 2.5))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", "high"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	df, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, df.Rows())

	xs, err := df.Numeric("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, xs)
	grades, err := df.Labels("grade")
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "high"}, grades)
}

func TestRead_Failures(t *testing.T) {
	_, err := ReadFile(writeCSV(t, "a,b\n"))
	assert.ErrorIs(t, err, ErrNoDataRows)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
