package obsdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	s, err := ReadCSV(strings.NewReader("Time (min),DD (m)\n1,0.10\n2, 0.25\n\n5,0.4\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{60., 120., 300.}, s.T)
	assert.Equal(t, []float64{.1, .25, .4}, s.V)

	s, err = ReadCSV(strings.NewReader("drawdown,time\n0.1,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{60.}, s.T)
	assert.Equal(t, []float64{.1}, s.V)

	s, err = ReadCSV(strings.NewReader("1,0.1\n2,0.2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestReadCSVErrors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":      "",
		"header":     "well,depth\n1,2\n",
		"bad value":  "Time,DD\n1,x\n",
		"no records": "Time,DD\n",
	} {
		_, err := ReadCSV(strings.NewReader(in))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "ow1.csv")
	require.NoError(t, os.WriteFile(fp, []byte("Time,DD\n1,0.1\n2,0.2\n"), 0o644))
	s, err := Load(fp)
	require.NoError(t, err)
	assert.Equal(t, []float64{60., 120.}, s.T)

	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "ow2.xlsx")
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Time")
	f.SetCellValue("Sheet1", "B1", "DD")
	f.SetCellValue("Sheet1", "A2", 1.5)
	f.SetCellValue("Sheet1", "B2", .12)
	f.SetCellValue("Sheet1", "A3", 3)
	f.SetCellValue("Sheet1", "B3", .2)
	require.NoError(t, f.SaveAs(fp))
	require.NoError(t, f.Close())

	s, err := Load(fp)
	require.NoError(t, err)
	assert.Equal(t, []float64{90., 180.}, s.T)
	assert.Equal(t, []float64{.12, .2}, s.V)
}
