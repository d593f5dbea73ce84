package services

import (
	"context"
	"fmt"
	"strings"

	"macrodash/src/config"
	"macrodash/src/schemas"
	"macrodash/src/utils"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type WorkbookServiceI interface {
	LoadWorkbook(ctx context.Context, path string) (*schemas.Workbook, error)
}

type WorkbookService struct {
	sheets        map[schemas.Indicator]string
	countryColumn string
}

func NewWorkbookService(cfg config.WorkbookConfig) *WorkbookService {
	countryColumn := cfg.CountryColumn
	if countryColumn == "" {
		countryColumn = utils.CountryColumn
	}
	return &WorkbookService{
		sheets: map[schemas.Indicator]string{
			schemas.Education:  cfg.Sheets.Education,
			schemas.Health:     cfg.Sheets.Health,
			schemas.Exports:    cfg.Sheets.Exports,
			schemas.GDPGrowth:  cfg.Sheets.GDPGrowth,
			schemas.CurrentGDP: cfg.Sheets.CurrentGDP,
		},
		countryColumn: countryColumn,
	}
}

// LoadWorkbook reads every indicator sheet into a wide table. A missing sheet
// or a sheet without the country column fails the whole load.
func (ws *WorkbookService) LoadWorkbook(ctx context.Context, path string) (*schemas.Workbook, error) {
	logger := utils.LoggerFromContext(ctx)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	workbook := &schemas.Workbook{
		Path:   path,
		Tables: make(map[schemas.Indicator]*schemas.IndicatorTable, len(ws.sheets)),
	}
	for _, indicator := range append(append([]schemas.Indicator{}, schemas.TimeSeriesIndicators...), schemas.CurrentGDP) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sheet := ws.sheets[indicator]
		table, err := ws.readSheet(f, indicator, sheet)
		if err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"sheet":     sheet,
			"countries": len(table.Rows),
			"years":     len(table.Years),
		}).Debug("loaded indicator sheet")
		workbook.Tables[indicator] = table
	}
	return workbook, nil
}

func (ws *WorkbookService) readSheet(f *excelize.File, indicator schemas.Indicator, sheet string) (*schemas.IndicatorTable, error) {
	if sheet == "" {
		return nil, fmt.Errorf("no sheet configured for indicator %s", indicator)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in workbook", sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s has no header row", sheet)
	}

	header := rows[0]
	countryIdx := -1
	var yearCols []int
	var years []string
	seen := make(map[string]bool)
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		if name == ws.countryColumn {
			if countryIdx < 0 {
				countryIdx = i
			}
			continue
		}
		label := utils.NormalizeYearLabel(name)
		if seen[label] {
			return nil, fmt.Errorf("sheet %s has duplicate column %q", sheet, label)
		}
		seen[label] = true
		yearCols = append(yearCols, i)
		years = append(years, label)
	}
	if countryIdx < 0 {
		return nil, fmt.Errorf("sheet %s has no %q column", sheet, ws.countryColumn)
	}

	table := &schemas.IndicatorTable{
		Indicator: indicator,
		Sheet:     sheet,
		Years:     years,
	}
	for _, row := range rows[1:] {
		if countryIdx >= len(row) {
			continue
		}
		country := strings.TrimSpace(row[countryIdx])
		if country == "" {
			continue
		}
		values := make([]*float64, len(yearCols))
		for j, col := range yearCols {
			// GetRows drops trailing empty cells, so short rows are missing values.
			if col >= len(row) {
				continue
			}
			if v, ok := utils.ParseCellValue(row[col]); ok {
				values[j] = &v
			}
		}
		table.Rows = append(table.Rows, schemas.IndicatorRow{Country: country, Values: values})
	}
	return table, nil
}
