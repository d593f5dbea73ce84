package utils

//nolint:depguard
import (
	"fmt"

	"macrodash/src/schemas"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// TableToDataFrame builds a wide frame from an indicator table: a string
// country column followed by one float column per year. Missing cells are NA.
func TableToDataFrame(table *schemas.IndicatorTable) dataframe.DataFrame {
	countries := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		countries[i] = row.Country
	}

	cols := make([]series.Series, 0, len(table.Years)+1)
	cols = append(cols, series.New(countries, series.String, CountryColumn))
	for j, year := range table.Years {
		values := make([]interface{}, len(table.Rows))
		for i, row := range table.Rows {
			if j < len(row.Values) && row.Values[j] != nil {
				values[i] = *row.Values[j]
			}
		}
		cols = append(cols, series.New(values, series.Float, year))
	}
	return dataframe.New(cols...)
}

// FilterByColumnValues keeps the rows whose column value is one of values,
// preserving row order.
func FilterByColumnValues(df dataframe.DataFrame, column string, values []string) (dataframe.DataFrame, error) {
	if !hasCol(df, column) {
		return df, fmt.Errorf("column %q not found", column)
	}
	filtered := df.Filter(dataframe.F{
		Colname:    column,
		Comparator: series.In,
		Comparando: values,
	})
	if filtered.Err != nil {
		return filtered, filtered.Err
	}
	return filtered, nil
}

// LongRecordsToDataFrame builds a long frame (country, year, value) whose value
// column is named after label.
func LongRecordsToDataFrame(records []schemas.LongRecord, label string) dataframe.DataFrame {
	countries := make([]string, len(records))
	years := make([]string, len(records))
	values := make([]interface{}, len(records))
	for i, rec := range records {
		countries[i] = rec.Country
		years[i] = rec.Year
		if rec.Value != nil {
			values[i] = *rec.Value
		}
	}
	return dataframe.New(
		series.New(countries, series.String, CountryColumn),
		series.New(years, series.String, YearColumn),
		series.New(values, series.Float, label),
	)
}

// hasCol checks whether a DataFrame contains a given column
func hasCol(df dataframe.DataFrame, colName string) bool {
	for _, name := range df.Names() {
		if name == colName {
			return true
		}
	}
	return false
}
