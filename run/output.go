package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/maseology/pumptest/model"
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

func writeJSON(dir, name string, v interface{}) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "create %s", dir)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "encode %s", name)
	}
	fp := filepath.Join(dir, name+".json")
	if err := os.WriteFile(fp, b, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", fp)
	}
	return nil
}

// writeResult writes r as JSON, and as a workbook when asked to.
func writeResult(dir, name string, r *model.Result) error {
	if err := writeJSON(dir, name, r); err != nil {
		return err
	}
	if !xlsx {
		return nil
	}
	return saveWorkbook(filepath.Join(dir, name+".xlsx"), r)
}

// saveWorkbook writes a summary sheet, the average head against distance of
// every well and one drawdown sheet per well.
func saveWorkbook(fp string, r *model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)
	for i, kv := range [][2]interface{}{
		{"Run", r.Metadata.RunID},
		{"Mode", r.Metadata.Mode},
		{"Analysis period", r.Metadata.SimulationType.String()},
		{"Pumping length (s)", r.Metadata.PumpingLength},
		{"Radius of influence (m)", r.Summary.RadiusOfInfluence},
		{"Wells", r.Summary.Wells},
		{"Wells compared", r.Summary.Compared},
	} {
		f.SetCellValue(summary, fmt.Sprintf("A%d", i+1), kv[0])
		f.SetCellValue(summary, fmt.Sprintf("B%d", i+1), kv[1])
	}
	row := 9
	f.SetCellValue(summary, fmt.Sprintf("A%d", row), "Well")
	f.SetCellValue(summary, fmt.Sprintf("B%d", row), "RMSE")
	f.SetCellValue(summary, fmt.Sprintf("C%d", row), "Total residual")
	for _, w := range r.Wells {
		row++
		f.SetCellValue(summary, fmt.Sprintf("A%d", row), w.ID)
		if w.Comparison == nil {
			f.SetCellValue(summary, fmt.Sprintf("B%d", row), w.Error)
			continue
		}
		f.SetCellValue(summary, fmt.Sprintf("B%d", row), w.Comparison.RMSE)
		f.SetCellValue(summary, fmt.Sprintf("C%d", row), w.Comparison.TotalResidual)
	}

	column := func(sheet string, col int, title string, v []float64) {
		cell, _ := excelize.CoordinatesToCellName(col, 1)
		f.SetCellValue(sheet, cell, title)
		for i, x := range v {
			if math.IsNaN(x) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col, i+2)
			f.SetCellValue(sheet, cell, x)
		}
	}

	heads := "AvgHead"
	f.NewSheet(heads)
	column(heads, 1, "Distance from well (m)", r.Distances)
	for i, w := range r.Wells {
		column(heads, i+2, w.ID+" average head (m)", w.Simulation.AvgHead)
	}

	for _, w := range r.Wells {
		sheet := "DD_" + w.ID
		f.NewSheet(sheet)
		column(sheet, 1, "Simulated time (s)", w.Simulation.SimulatedTimes)
		column(sheet, 2, "Simulated drawdown (m)", w.Simulation.Simulated)
		column(sheet, 3, "Observed time (s)", w.Simulation.ObservedTimes)
		column(sheet, 4, "Observed drawdown (m)", w.Simulation.Observed)
	}

	return eris.Wrapf(f.SaveAs(fp), "write %s", fp)
}
