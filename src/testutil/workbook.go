// Package testutil builds small indicator workbooks for tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Countries are the rows of the sample sheets. Poland is outside the default
// selection.
var Countries = []string{"China", "Singapore", "Germany", "Canada", "Australia", "Poland"}

// SheetNames are the default sheet names of an indicator workbook.
var SheetNames = []string{"Education", "Health", "Exports", "GDP Growth", "Current GDP"}

// Sheet is a header row followed by data rows.
type Sheet [][]interface{}

// WriteWorkbook saves sheets to a temp xlsx file and returns its path.
func WriteWorkbook(t testing.TB, sheets map[string]Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}

	path := filepath.Join(t.TempDir(), "indicators.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// YearSheet builds a sheet with a year column per year in [start, end] and a
// row per country. value gives each cell; returning nil leaves it blank.
func YearSheet(start, end int, value func(country string, year int) interface{}) Sheet {
	header := []interface{}{"Country Name"}
	for y := start; y <= end; y++ {
		header = append(header, fmt.Sprintf("%d", y))
	}
	sheet := Sheet{header}
	for _, c := range Countries {
		row := []interface{}{c}
		for y := start; y <= end; y++ {
			row = append(row, value(c, y))
		}
		sheet = append(sheet, row)
	}
	return sheet
}

// SampleWorkbook writes a complete five sheet workbook covering 2000-2020.
// China's Current GDP grows from 1000 to 1613 between 2000 and 2020.
func SampleWorkbook(t testing.TB) string {
	t.Helper()

	linear := func(base float64) func(string, int) interface{} {
		return func(country string, year int) interface{} {
			for i, c := range Countries {
				if c == country {
					return base + float64(i) + float64(year-2000)*0.01
				}
			}
			return nil
		}
	}
	gdp := func(country string, year int) interface{} {
		start := map[string]float64{
			"China": 1000, "Singapore": 100, "Germany": 2000, "Canada": 700, "Australia": 400, "Poland": 170,
		}[country]
		end := map[string]float64{
			"China": 1613, "Singapore": 145, "Germany": 2290, "Canada": 900, "Australia": 436, "Poland": 600,
		}[country]
		return start + (end-start)*float64(year-2000)/20
	}

	return WriteWorkbook(t, map[string]Sheet{
		"Education":   YearSheet(2000, 2020, linear(0.6)),
		"Health":      YearSheet(2000, 2020, linear(0.8)),
		"Exports":     YearSheet(2000, 2020, linear(20)),
		"GDP Growth":  YearSheet(2000, 2020, linear(2)),
		"Current GDP": YearSheet(2000, 2020, gdp),
	})
}
