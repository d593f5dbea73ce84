package services

import (
	"context"
	"fmt"
	"math"

	"macrodash/src/schemas"
	"macrodash/src/utils"
)

type PreparerServiceI interface {
	FilterAndReshape(table *schemas.IndicatorTable, label string) ([]schemas.LongRecord, error)
	FilterYearsOfInterest(records []schemas.LongRecord) []schemas.LongRecord
	ComputeGrowthRatio(table *schemas.IndicatorTable, baseYear, endYear string) ([]schemas.GrowthShare, error)
	Prepare(ctx context.Context, workbook *schemas.Workbook, baseYear, endYear string) (*schemas.PreparedIndicators, error)
}

// PreparerService filters indicator tables to a country/year selection and
// reshapes them into long records. It never mutates its inputs.
type PreparerService struct {
	selection schemas.Selection
}

func NewPreparerService(selection schemas.Selection) *PreparerService {
	years := make([]string, len(selection.Years))
	for i, y := range selection.Years {
		years[i] = utils.NormalizeYearLabel(y)
	}
	return &PreparerService{
		selection: schemas.Selection{
			Countries: append([]string(nil), selection.Countries...),
			Years:     years,
		},
	}
}

func (ps *PreparerService) Selection() schemas.Selection {
	return ps.selection
}

// FilterAndReshape keeps the selected countries and melts the year columns
// into one record per (country, year), in source row order then column order.
func (ps *PreparerService) FilterAndReshape(table *schemas.IndicatorTable, label string) ([]schemas.LongRecord, error) {
	if len(table.Rows) == 0 {
		return []schemas.LongRecord{}, nil
	}
	df := utils.TableToDataFrame(table)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to build frame for sheet %s: %w", table.Sheet, df.Err)
	}
	filtered, err := utils.FilterByColumnValues(df, utils.CountryColumn, ps.selection.Countries)
	if err != nil {
		return nil, fmt.Errorf("failed to filter sheet %s: %w", table.Sheet, err)
	}

	countries := filtered.Col(utils.CountryColumn)
	records := make([]schemas.LongRecord, 0, filtered.Nrow()*len(table.Years))
	for i := 0; i < filtered.Nrow(); i++ {
		country := countries.Elem(i).String()
		for _, year := range table.Years {
			rec := schemas.LongRecord{Country: country, Year: year, Label: label}
			if elem := filtered.Col(year).Elem(i); !elem.IsNA() {
				v := elem.Float()
				rec.Value = &v
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// FilterYearsOfInterest normalizes each record's year label and keeps the
// records whose year is in the selection.
func (ps *PreparerService) FilterYearsOfInterest(records []schemas.LongRecord) []schemas.LongRecord {
	filtered := make([]schemas.LongRecord, 0, len(records))
	for _, rec := range records {
		rec.Year = utils.NormalizeYearLabel(rec.Year)
		if ps.selection.HasYear(rec.Year) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// ComputeGrowthRatio returns (end-base)/base*100 for every selected country in
// the table, in selection order. A zero or missing base, or a missing end value,
// yields NaN for that country.
func (ps *PreparerService) ComputeGrowthRatio(table *schemas.IndicatorTable, baseYear, endYear string) ([]schemas.GrowthShare, error) {
	baseYear = utils.NormalizeYearLabel(baseYear)
	endYear = utils.NormalizeYearLabel(endYear)
	baseIdx := table.YearIndex(baseYear)
	if baseIdx < 0 {
		return nil, fmt.Errorf("sheet %s has no %s column", table.Sheet, baseYear)
	}
	endIdx := table.YearIndex(endYear)
	if endIdx < 0 {
		return nil, fmt.Errorf("sheet %s has no %s column", table.Sheet, endYear)
	}

	rowsByCountry := make(map[string]schemas.IndicatorRow, len(table.Rows))
	for _, row := range table.Rows {
		if _, ok := rowsByCountry[row.Country]; !ok {
			rowsByCountry[row.Country] = row
		}
	}

	shares := make([]schemas.GrowthShare, 0, len(ps.selection.Countries))
	for _, country := range ps.selection.Countries {
		row, ok := rowsByCountry[country]
		if !ok {
			continue
		}
		shares = append(shares, schemas.GrowthShare{
			Country:    country,
			Percentage: growthPercentage(valueAt(row, baseIdx), valueAt(row, endIdx)),
		})
	}
	return shares, nil
}

// Prepare runs the full pipeline over a loaded workbook.
func (ps *PreparerService) Prepare(ctx context.Context, workbook *schemas.Workbook, baseYear, endYear string) (*schemas.PreparedIndicators, error) {
	logger := utils.LoggerFromContext(ctx)

	prepared := &schemas.PreparedIndicators{
		Selection: ps.selection,
		Series:    make(map[schemas.Indicator][]schemas.LongRecord, len(schemas.TimeSeriesIndicators)),
		BaseYear:  utils.NormalizeYearLabel(baseYear),
		EndYear:   utils.NormalizeYearLabel(endYear),
	}
	for _, indicator := range schemas.TimeSeriesIndicators {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, ok := workbook.Tables[indicator]
		if !ok {
			return nil, fmt.Errorf("workbook has no %s table", indicator)
		}
		reshaped, err := ps.FilterAndReshape(table, schemas.IndicatorLabels[indicator])
		if err != nil {
			return nil, err
		}
		prepared.Series[indicator] = ps.FilterYearsOfInterest(reshaped)
		logger.WithField("indicator", indicator).
			WithField("records", len(prepared.Series[indicator])).
			Debug("prepared indicator series")
	}

	gdp, ok := workbook.Tables[schemas.CurrentGDP]
	if !ok {
		return nil, fmt.Errorf("workbook has no %s table", schemas.CurrentGDP)
	}
	growth, err := ps.ComputeGrowthRatio(gdp, baseYear, endYear)
	if err != nil {
		return nil, err
	}
	for _, share := range growth {
		if math.IsNaN(share.Percentage) {
			logger.WithField("country", share.Country).Warn("GDP growth undefined for country, zero or missing base value")
		}
	}
	prepared.Growth = growth
	return prepared, nil
}

func valueAt(row schemas.IndicatorRow, idx int) *float64 {
	if idx >= len(row.Values) {
		return nil
	}
	return row.Values[idx]
}

func growthPercentage(base, end *float64) float64 {
	if base == nil || end == nil || *base == 0 {
		return math.NaN()
	}
	return (*end - *base) / *base * 100
}
