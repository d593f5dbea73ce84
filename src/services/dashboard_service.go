package services

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"macrodash/src/config"
	"macrodash/src/schemas"
	"macrodash/src/utils"

	"github.com/sirupsen/logrus"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Layout constants are relative to a 20 inch wide figure and scale with it.
const (
	referenceWidthInches = 20.0
	titleFontSize        = 26
	titleBandFraction    = 0.08
	tilePadFraction      = 0.025
	gridRows             = 3
	gridCols             = 3
)

type DashboardServiceI interface {
	Render(ctx context.Context, prepared *schemas.PreparedIndicators, w io.Writer) error
}

type DashboardService struct {
	cfg config.DashboardConfig
}

func NewDashboardService(cfg config.DashboardConfig) *DashboardService {
	return &DashboardService{cfg: cfg}
}

// panel is a chart tile of the dashboard grid.
type panel struct {
	row, col int
	build    func(barWidth vg.Length) (*plot.Plot, error)
}

// Render draws the titled 3x3 dashboard and writes it to w as PNG.
func (ds *DashboardService) Render(ctx context.Context, prepared *schemas.PreparedIndicators, w io.Writer) error {
	logger := utils.LoggerFromContext(ctx)

	width := vg.Length(ds.cfg.WidthInches) * vg.Inch
	height := vg.Length(ds.cfg.HeightInches) * vg.Inch
	scale := ds.cfg.WidthInches / referenceWidthInches

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(ds.cfg.DPI))
	dc := draw.New(img)

	titleBand := height * titleBandFraction
	ds.drawTitle(dc, titleBand, scale)

	grid := draw.Crop(dc, 0, 0, 0, -titleBand)
	tiles := draw.Tiles{
		Rows:      gridRows,
		Cols:      gridCols,
		PadX:      width * tilePadFraction,
		PadY:      height * tilePadFraction,
		PadLeft:   width * tilePadFraction / 2,
		PadRight:  width * tilePadFraction / 2,
		PadBottom: height * tilePadFraction / 2,
	}

	sel := prepared.Selection
	tileWidth := (width - tiles.PadLeft - tiles.PadRight - tiles.PadX*(gridCols-1)) / gridCols
	barWidth := tileWidth * 0.7 / vg.Length(max(1, len(sel.Years)*(len(sel.Countries)+1)))

	series := func(ind schemas.Indicator) []schemas.LongRecord { return prepared.Series[ind] }
	panels := []panel{
		{row: 0, col: 0, build: func(vg.Length) (*plot.Plot, error) {
			return linePanel(seriesTitle(schemas.IndicatorLabels[schemas.Education], sel.Years), series(schemas.Education), sel)
		}},
		{row: 0, col: 2, build: func(vg.Length) (*plot.Plot, error) {
			return linePanel(seriesTitle(schemas.IndicatorLabels[schemas.Health], sel.Years), series(schemas.Health), sel)
		}},
		{row: 2, col: 0, build: func(bw vg.Length) (*plot.Plot, error) {
			return groupedBarPanel(seriesTitle(schemas.IndicatorLabels[schemas.Exports], sel.Years), series(schemas.Exports), sel, bw, true)
		}},
		{row: 2, col: 2, build: func(bw vg.Length) (*plot.Plot, error) {
			return groupedBarPanel(seriesTitle(schemas.IndicatorLabels[schemas.GDPGrowth], sel.Years), series(schemas.GDPGrowth), sel, bw, false)
		}},
	}
	for _, pn := range panels {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := pn.build(barWidth)
		if err != nil {
			return err
		}
		p.Draw(tiles.At(grid, pn.col, pn.row))
	}

	wedges := pieSlices(prepared.Growth, sel)
	if len(wedges) == 0 {
		logger.Warn("no positive GDP growth values, pie chart left empty")
	} else if err := renderPie(tiles.At(grid, 1, 1), "GDP Growth %", wedges, ds.cfg.DPI); err != nil {
		return err
	}

	for _, block := range dashboardCommentary {
		ds.drawCommentary(tiles.At(grid, block.col, block.row), block.text, block.fontSize*scale)
	}

	pngCanvas := vgimg.PngCanvas{Canvas: img}
	if _, err := pngCanvas.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"width_px":  int(width.Dots(float64(ds.cfg.DPI))),
		"height_px": int(height.Dots(float64(ds.cfg.DPI))),
	}).Info("dashboard rendered")
	return nil
}

func (ds *DashboardService) drawTitle(dc draw.Canvas, band vg.Length, scale float64) {
	titleFont := plot.DefaultFont
	titleFont.Weight = xfont.WeightBold
	titleFont.Size = vg.Points(titleFontSize * scale)

	sty := text.Style{
		Color:   color.Black,
		Font:    titleFont,
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	}
	title := ds.cfg.Title
	if ds.cfg.Subtitle != "" {
		title += "\n" + ds.cfg.Subtitle
	}
	center := vg.Point{
		X: (dc.Min.X + dc.Max.X) / 2,
		Y: dc.Max.Y - band/2,
	}
	dc.FillText(sty, center, title)
}

func (ds *DashboardService) drawCommentary(c draw.Canvas, body string, size float64) {
	textFont := plot.DefaultFont
	textFont.Size = vg.Points(size)

	sty := text.Style{
		Color:   color.Black,
		Font:    textFont,
		XAlign:  text.XLeft,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	}
	c.FillText(sty, vg.Point{X: c.Min.X, Y: (c.Min.Y + c.Max.Y) / 2}, body)
}
