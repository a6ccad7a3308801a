// Package obsdata reads observed drawdown series of monitoring wells from
// delimited text or spreadsheet files. Times are read in minutes and returned
// in seconds; drawdown is in metres.
package obsdata

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/maseology/pumptest/drawdown"
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

const secPerMin = 60.

// Load reads a series by file extension: .xlsx (first sheet) or delimited text.
func Load(fp string) (drawdown.Series, error) {
	if _, err := os.Stat(fp); err != nil {
		return drawdown.Series{}, eris.Wrapf(err, "obsdata: file %s", fp)
	}
	if strings.EqualFold(filepath.Ext(fp), ".xlsx") {
		return LoadXLSX(fp, "")
	}
	f, err := os.Open(fp)
	if err != nil {
		return drawdown.Series{}, eris.Wrapf(err, "obsdata: open %s", fp)
	}
	defer f.Close()
	s, err := ReadCSV(f)
	return s, eris.Wrapf(err, "obsdata: %s", fp)
}

// ReadCSV reads a comma separated series with an optional header naming the
// time and drawdown columns.
func ReadCSV(r io.Reader) (drawdown.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return drawdown.Series{}, eris.Wrap(err, "read csv")
	}
	return parse(rows)
}

// LoadXLSX reads a series from sheet of a workbook, the first sheet when
// sheet is empty.
func LoadXLSX(fp, sheet string) (drawdown.Series, error) {
	f, err := excelize.OpenFile(fp)
	if err != nil {
		return drawdown.Series{}, eris.Wrapf(err, "obsdata: open %s", fp)
	}
	defer f.Close()
	if sheet == "" {
		sl := f.GetSheetList()
		if len(sl) == 0 {
			return drawdown.Series{}, eris.Errorf("obsdata: %s has no sheets", fp)
		}
		sheet = sl[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return drawdown.Series{}, eris.Wrapf(err, "obsdata: %s sheet %s", fp, sheet)
	}
	s, err := parse(rows)
	return s, eris.Wrapf(err, "obsdata: %s sheet %s", fp, sheet)
}

// columns finds the time and drawdown columns of a header row.
func columns(hdr []string) (it, id int, ok bool) {
	it, id = -1, -1
	for i, h := range hdr {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case it < 0 && strings.HasPrefix(h, "time"):
			it = i
		case id < 0 && (h == "dd" || strings.HasPrefix(h, "dd ") || strings.HasPrefix(h, "dd(") || strings.Contains(h, "drawdown")):
			id = i
		}
	}
	return it, id, it >= 0 && id >= 0
}

func parse(rows [][]string) (drawdown.Series, error) {
	var s drawdown.Series
	if len(rows) == 0 {
		return s, eris.New("no rows")
	}
	it, id, ok := columns(rows[0])
	if ok {
		rows = rows[1:]
	} else {
		if _, err := strconv.ParseFloat(strings.TrimSpace(at(rows[0], 0)), 64); err != nil {
			return s, eris.Errorf("header %v names no time and drawdown columns", rows[0])
		}
		it, id = 0, 1
	}
	for i, rec := range rows {
		ts, ds := strings.TrimSpace(at(rec, it)), strings.TrimSpace(at(rec, id))
		if ts == "" && ds == "" {
			continue
		}
		t, err := strconv.ParseFloat(ts, 64)
		if err != nil {
			return drawdown.Series{}, eris.Wrapf(err, "row %d time", i+1)
		}
		d, err := strconv.ParseFloat(ds, 64)
		if err != nil {
			return drawdown.Series{}, eris.Wrapf(err, "row %d drawdown", i+1)
		}
		s.T = append(s.T, t*secPerMin)
		s.V = append(s.V, d)
	}
	if s.Len() == 0 {
		return s, eris.New("no observations")
	}
	return s, nil
}

func at(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
