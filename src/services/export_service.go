package services

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"macrodash/src/schemas"
	"macrodash/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

const growthSheetName = "Growth Share"

type ExportServiceI interface {
	BuildWorkbook(ctx context.Context, prepared *schemas.PreparedIndicators) (*excelize.File, error)
	SaveWorkbook(ctx context.Context, prepared *schemas.PreparedIndicators, path string) error
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildWorkbook writes every prepared series in long format, followed by the
// growth shares and a pie chart over them.
func (es *ExportService) BuildWorkbook(ctx context.Context, prepared *schemas.PreparedIndicators) (*excelize.File, error) {
	var f *excelize.File
	var err error
	for _, indicator := range schemas.TimeSeriesIndicators {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		label := schemas.IndicatorLabels[indicator]
		df := utils.LongRecordsToDataFrame(prepared.Series[indicator], label)
		if df.Err != nil {
			return nil, fmt.Errorf("failed to build %s frame: %w", indicator, df.Err)
		}
		f, err = es.writeLongFrame(f, df, label)
		if err != nil {
			return nil, err
		}
	}

	if err = es.writeGrowthShares(f, prepared); err != nil {
		return nil, err
	}
	if err = es.addGrowthPieChart(f, len(prepared.Growth)); err != nil {
		return nil, err
	}
	if err = es.applyHeaderStyle(f); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func (es *ExportService) SaveWorkbook(ctx context.Context, prepared *schemas.PreparedIndicators, path string) error {
	f, err := es.BuildWorkbook(ctx, prepared)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save export %s: %w", path, err)
	}
	utils.LoggerFromContext(ctx).WithField("path", path).Info("indicator workbook exported")
	return nil
}

// writeLongFrame adds a sheet named after the frame's value column. The first
// sheet reuses the default one of a new file.
func (es *ExportService) writeLongFrame(f *excelize.File, df dataframe.DataFrame, sheetName string) (*excelize.File, error) {
	if f == nil {
		f = excelize.NewFile()
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return nil, err
		}
	} else if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	names := df.Names()
	if err := f.SetSheetRow(sheetName, "A1", &names); err != nil {
		return nil, err
	}

	countries := df.Col(utils.CountryColumn)
	years := df.Col(utils.YearColumn)
	values := df.Col(sheetName)
	for i := 0; i < df.Nrow(); i++ {
		row := []interface{}{countries.Elem(i).String(), years.Elem(i).String(), nil}
		if elem := values.Elem(i); !elem.IsNA() {
			row[2] = elem.Float()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// writeGrowthShares lists each country's growth. Undefined growth is left blank.
func (es *ExportService) writeGrowthShares(f *excelize.File, prepared *schemas.PreparedIndicators) error {
	if _, err := f.NewSheet(growthSheetName); err != nil {
		return err
	}
	header := fmt.Sprintf("Growth %s-%s (%%)", prepared.BaseYear, prepared.EndYear)
	if err := f.SetSheetRow(growthSheetName, "A1", &[]interface{}{utils.CountryColumn, header}); err != nil {
		return err
	}
	for i, share := range prepared.Growth {
		row := []interface{}{share.Country, nil}
		if !math.IsNaN(share.Percentage) && !math.IsInf(share.Percentage, 0) {
			row[1] = share.Percentage
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(growthSheetName, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// addGrowthPieChart adds a sheet with a native pie chart over the growth rows.
func (es *ExportService) addGrowthPieChart(f *excelize.File, rows int) error {
	if rows == 0 {
		return nil
	}
	lastRow := rows + 1
	categories := fmt.Sprintf("'%s'!$A$2:$A$%d", growthSheetName, lastRow)
	values := fmt.Sprintf("'%s'!$B$2:$B$%d", growthSheetName, lastRow)

	titleFont := excelize.Font{
		Bold: true,
		Size: 18,
	}
	chart := excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$B$1", growthSheetName),
				Categories: categories,
				Values:     values,
			},
		},
		Title: []excelize.RichTextRun{
			{
				Text: "GDP Growth %",
				Font: &titleFont,
			},
		},
		Legend: excelize.ChartLegend{
			Position: "right",
		},
		Dimension: excelize.ChartDimension{
			Width:  800,
			Height: 500,
		},
		PlotArea: excelize.ChartPlotArea{
			ShowCatName: true,
			ShowPercent: true,
		},
	}

	chartSheet := growthSheetName + " - Pie Chart"
	if _, err := f.NewSheet(chartSheet); err != nil {
		return err
	}
	if err := f.AddChart(chartSheet, "A1", &chart); err != nil {
		return fmt.Errorf("failed to add pie chart to sheet %s: %w", chartSheet, err)
	}
	return nil
}

// applyHeaderStyle bolds and shades the header row of every data sheet.
func (es *ExportService) applyHeaderStyle(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6E6"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			continue
		}
		lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
		if err != nil {
			return err
		}
		if err = f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
			return err
		}
		if err = f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
			return err
		}
	}
	return nil
}
