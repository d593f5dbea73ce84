package services_test

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"testing"

	"macrodash/src/config"
	"macrodash/src/schemas"
	"macrodash/src/services"
	"macrodash/src/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallDashboard = config.DashboardConfig{
	Title:        "GDP Growth and their Factors(2000 - 2015)",
	Subtitle:     "test",
	WidthInches:  6,
	HeightInches: 6,
	DPI:          40,
}

func samplePrepared(t *testing.T) *schemas.PreparedIndicators {
	t.Helper()
	workbook, err := services.NewWorkbookService(defaultWorkbookConfig).LoadWorkbook(context.Background(), testutil.SampleWorkbook(t))
	require.NoError(t, err)
	prepared, err := services.NewPreparerService(defaultSelection).Prepare(context.Background(), workbook, "2000", "2020")
	require.NoError(t, err)
	return prepared
}

func TestDashboardRender(t *testing.T) {
	ds := services.NewDashboardService(smallDashboard)

	t.Run("renders a PNG of the configured size", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ds.Render(context.Background(), samplePrepared(t), &buf))

		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 240, img.Bounds().Dx())
		assert.Equal(t, 240, img.Bounds().Dy())
	})

	t.Run("undefined growth still renders", func(t *testing.T) {
		prepared := samplePrepared(t)
		for i := range prepared.Growth {
			prepared.Growth[i].Percentage = math.NaN()
		}

		var buf bytes.Buffer
		require.NoError(t, ds.Render(context.Background(), prepared, &buf))
		_, err := png.Decode(&buf)
		assert.NoError(t, err)
	})

	t.Run("empty series still render", func(t *testing.T) {
		prepared := &schemas.PreparedIndicators{
			Selection: defaultSelection,
			Series:    map[schemas.Indicator][]schemas.LongRecord{},
		}

		var buf bytes.Buffer
		assert.NoError(t, ds.Render(context.Background(), prepared, &buf))
	})

	t.Run("cancelled context stops rendering", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var buf bytes.Buffer
		err := ds.Render(ctx, samplePrepared(t), &buf)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, buf.Len())
	})
}
