package utils

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeYearLabel turns a year header into its canonical label.
// Numeric headers that spreadsheets store as floats ("2000.0") become "2000";
// anything else is returned trimmed.
func NormalizeYearLabel(raw string) string {
	label := strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(label, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return label
	}
	if f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return label
}

// ParseCellValue reads a numeric indicator cell. Empty cells, the ".."
// placeholder and non-numeric text are reported as missing.
func ParseCellValue(raw string) (float64, bool) {
	cell := strings.TrimSpace(raw)
	if cell == "" || cell == ".." {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
