package schemas

import (
	"encoding/json"
	"math"
)

type Indicator string

const (
	Education  Indicator = "education"
	Health     Indicator = "health"
	Exports    Indicator = "exports"
	GDPGrowth  Indicator = "gdp-growth"
	CurrentGDP Indicator = "current-gdp"
)

// TimeSeriesIndicators are the indicators drawn as year series, in dashboard order.
var TimeSeriesIndicators = []Indicator{Education, Health, Exports, GDPGrowth}

// IndicatorLabels are the value column names attached to each reshaped indicator.
var IndicatorLabels = map[Indicator]string{
	Education:  "Education Index",
	Health:     "Health Index",
	Exports:    "Exports",
	GDPGrowth:  "GDP Growth",
	CurrentGDP: "Current GDP",
}

// IndicatorTable is one sheet in wide format: a row per country and a value
// per year column. Values[i] belongs to Years[i]; nil marks a missing cell.
type IndicatorTable struct {
	Indicator Indicator
	Sheet     string
	Years     []string
	Rows      []IndicatorRow
}

type IndicatorRow struct {
	Country string
	Values  []*float64
}

// YearIndex returns the position of year in the table's columns, or -1.
func (t *IndicatorTable) YearIndex(year string) int {
	for i, y := range t.Years {
		if y == year {
			return i
		}
	}
	return -1
}

type Workbook struct {
	Path   string
	Tables map[Indicator]*IndicatorTable
}

// LongRecord is one (country, year) observation of an indicator.
type LongRecord struct {
	Country string   `json:"country"`
	Year    string   `json:"year"`
	Label   string   `json:"label"`
	Value   *float64 `json:"value"`
}

// Selection is the cohort and year sample the preparer filters to.
// Country order is significant: it drives legend order and colors.
type Selection struct {
	Countries []string
	Years     []string
}

func (s Selection) HasCountry(country string) bool {
	for _, c := range s.Countries {
		if c == country {
			return true
		}
	}
	return false
}

func (s Selection) HasYear(year string) bool {
	for _, y := range s.Years {
		if y == year {
			return true
		}
	}
	return false
}

// GrowthShare is a country's percentage change in GDP level between two years.
// Percentage is NaN when the change is undefined.
type GrowthShare struct {
	Country    string
	Percentage float64
}

func (g GrowthShare) MarshalJSON() ([]byte, error) {
	var pct *float64
	if !math.IsNaN(g.Percentage) && !math.IsInf(g.Percentage, 0) {
		pct = &g.Percentage
	}
	return json.Marshal(struct {
		Country    string   `json:"country"`
		Percentage *float64 `json:"percentage"`
	}{g.Country, pct})
}

type PreparedIndicators struct {
	Selection Selection
	Series    map[Indicator][]LongRecord
	Growth    []GrowthShare
	BaseYear  string
	EndYear   string
}
