package controllers

import (
	"bytes"
	"context"
	"fmt"

	"macrodash/src/schemas"
	"macrodash/src/utils"
)

// LoadPrepared reads the configured workbook and runs the preparation pipeline.
func (c *Controller) LoadPrepared(ctx context.Context) (*schemas.PreparedIndicators, error) {
	workbook, err := c.WorkbookService.LoadWorkbook(ctx, c.Config.Workbook.Path)
	if err != nil {
		return nil, err
	}
	return c.PreparerService.Prepare(ctx, workbook, c.Config.Growth.BaseYear, c.Config.Growth.EndYear)
}

func (c *Controller) RenderPNG(ctx context.Context, prepared *schemas.PreparedIndicators) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.DashboardService.Render(ctx, prepared, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderToFile runs the whole pipeline once and writes the dashboard to path.
func (c *Controller) RenderToFile(ctx context.Context, path string) error {
	prepared, err := c.LoadPrepared(ctx)
	if err != nil {
		return err
	}
	png, err := c.RenderPNG(ctx, prepared)
	if err != nil {
		return err
	}
	if err := utils.SaveBytesToFile(png, path); err != nil {
		return fmt.Errorf("failed to write dashboard %s: %w", path, err)
	}
	utils.LoggerFromContext(ctx).WithField("path", path).Info("dashboard saved")
	return nil
}

// Export writes the prepared indicators as XLSX, reusing cached data when the
// server already holds some.
func (c *Controller) Export(ctx context.Context, path string) error {
	prepared, ok := c.preparedCache.Get()
	if !ok {
		var err error
		if prepared, err = c.LoadPrepared(ctx); err != nil {
			return err
		}
	}
	return c.ExportService.SaveWorkbook(ctx, prepared, path)
}

// Refresh reloads the workbook and replaces both cached artifacts. On failure
// the previous artifacts stay in place.
func (c *Controller) Refresh(ctx context.Context) error {
	c.refreshMutex.Lock()
	defer c.refreshMutex.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Controller) refreshLocked(ctx context.Context) error {
	prepared, err := c.LoadPrepared(ctx)
	if err != nil {
		return err
	}
	png, err := c.RenderPNG(ctx, prepared)
	if err != nil {
		return err
	}
	c.preparedCache.Set(prepared, 0)
	c.pngCache.Set(png, 0)
	utils.LoggerFromContext(ctx).WithField("bytes", len(png)).Info("dashboard cache refreshed")
	return nil
}

// ensureCached fills the caches on first use.
func (c *Controller) ensureCached(ctx context.Context) error {
	if _, ok := c.pngCache.Get(); ok {
		return nil
	}
	c.refreshMutex.Lock()
	defer c.refreshMutex.Unlock()
	if _, ok := c.pngCache.Get(); ok {
		return nil
	}
	return c.refreshLocked(ctx)
}

func (c *Controller) cachedPrepared(ctx context.Context) (*schemas.PreparedIndicators, error) {
	if err := c.ensureCached(ctx); err != nil {
		return nil, err
	}
	prepared, ok := c.preparedCache.Get()
	if !ok {
		return nil, utils.ServiceUnavailable("dashboard data is not available")
	}
	return prepared, nil
}

func (c *Controller) DashboardPNG(ctx context.Context) ([]byte, error) {
	if err := c.ensureCached(ctx); err != nil {
		return nil, err
	}
	png, ok := c.pngCache.Get()
	if !ok {
		return nil, utils.ServiceUnavailable("dashboard image is not available")
	}
	return png, nil
}

func (c *Controller) IndicatorSeries(ctx context.Context, indicator schemas.Indicator) ([]schemas.LongRecord, error) {
	if !isTimeSeries(indicator) {
		return nil, utils.NotFound("unknown indicator %q", indicator)
	}
	prepared, err := c.cachedPrepared(ctx)
	if err != nil {
		return nil, err
	}
	records := prepared.Series[indicator]
	if records == nil {
		records = []schemas.LongRecord{}
	}
	return records, nil
}

func (c *Controller) GrowthShares(ctx context.Context) ([]schemas.GrowthShare, error) {
	prepared, err := c.cachedPrepared(ctx)
	if err != nil {
		return nil, err
	}
	return prepared.Growth, nil
}

func isTimeSeries(indicator schemas.Indicator) bool {
	for _, ind := range schemas.TimeSeriesIndicators {
		if ind == indicator {
			return true
		}
	}
	return false
}
