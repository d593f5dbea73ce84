package services_test

import (
	"context"
	"math"
	"path/filepath"
	"strconv"
	"testing"

	"macrodash/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook(t *testing.T) {
	es := services.NewExportService()

	t.Run("writes a long sheet per indicator plus growth and chart sheets", func(t *testing.T) {
		f, err := es.BuildWorkbook(context.Background(), samplePrepared(t))
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{
			"Education Index", "Health Index", "Exports", "GDP Growth",
			"Growth Share", "Growth Share - Pie Chart",
		}, f.GetSheetList())

		rows, err := f.GetRows("Education Index")
		require.NoError(t, err)
		require.Len(t, rows, 1+5*6)
		assert.Equal(t, []string{"Country Name", "Year", "Education Index"}, rows[0])
		assert.Equal(t, "China", rows[1][0])
		assert.Equal(t, "2000", rows[1][1])

		growth, err := f.GetRows("Growth Share")
		require.NoError(t, err)
		require.Len(t, growth, 6)
		assert.Equal(t, "Growth 2000-2020 (%)", growth[0][1])
		assert.Equal(t, "China", growth[1][0])

		value, err := f.GetCellValue("Growth Share", "B2", excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		pct, err := strconv.ParseFloat(value, 64)
		require.NoError(t, err)
		assert.InDelta(t, 61.3, pct, 1e-6)
	})

	t.Run("undefined growth is left blank", func(t *testing.T) {
		prepared := samplePrepared(t)
		prepared.Growth[0].Percentage = math.NaN()

		f, err := es.BuildWorkbook(context.Background(), prepared)
		require.NoError(t, err)
		defer f.Close()

		value, err := f.GetCellValue("Growth Share", "B2")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("saves to disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "indicators.xlsx")
		require.NoError(t, es.SaveWorkbook(context.Background(), samplePrepared(t), path))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
		idx, err := f.GetSheetIndex("Growth Share")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, idx, 0)
	})
}
