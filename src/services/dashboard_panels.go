package services

import (
	"bytes"
	"fmt"
	"image/png"
	"math"

	"macrodash/src/schemas"
	"macrodash/src/utils"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const legendFontSize = 8

// seriesTitle renders "<label> (<first>-<last>)" over the sampled years.
func seriesTitle(label string, years []string) string {
	if len(years) == 0 {
		return label
	}
	return fmt.Sprintf("%s (%s-%s)", label, years[0], years[len(years)-1])
}

// countryValues lines a country's records up with the selection years.
// The bool slice marks which positions hold a value.
func countryValues(records []schemas.LongRecord, country string, years []string) ([]float64, []bool, bool) {
	values := make([]float64, len(years))
	present := make([]bool, len(years))
	found := false
	for _, rec := range records {
		if rec.Country != country {
			continue
		}
		found = true
		for i, y := range years {
			if y == rec.Year && rec.Value != nil {
				values[i] = *rec.Value
				present[i] = true
			}
		}
	}
	return values, present, found
}

func newPanel(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(legendFontSize)
	p.Add(plotter.NewGrid())
	return p
}

// linePanel draws one marked line per selected country over the year sample.
// Missing observations are left out of the line.
func linePanel(title string, records []schemas.LongRecord, sel schemas.Selection) (*plot.Plot, error) {
	p := newPanel(title)
	for i, country := range sel.Countries {
		values, present, found := countryValues(records, country, sel.Years)
		if !found {
			continue
		}
		xys := make(plotter.XYs, 0, len(values))
		for j, v := range values {
			if present[j] {
				xys = append(xys, plotter.XY{X: float64(j), Y: v})
			}
		}
		if len(xys) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s line for %s: %w", title, country, err)
		}
		c := utils.GetChartRGBA(i)
		line.Color = c
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(country, line, points)
	}
	if len(sel.Years) > 0 {
		p.NominalX(sel.Years...)
		p.X.Min, p.X.Max = -0.5, float64(len(sel.Years))-0.5
	}
	return p, nil
}

// groupedBarPanel draws one bar per country inside each year group.
// Missing observations are drawn as zero-length bars.
func groupedBarPanel(title string, records []schemas.LongRecord, sel schemas.Selection, barWidth vg.Length, horizontal bool) (*plot.Plot, error) {
	p := newPanel(title)
	n := len(sel.Countries)
	for i, country := range sel.Countries {
		values, _, found := countryValues(records, country, sel.Years)
		if !found {
			continue
		}
		bars, err := plotter.NewBarChart(plotter.Values(values), barWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s bars for %s: %w", title, country, err)
		}
		bars.Color = utils.GetChartRGBA(i)
		bars.LineStyle.Width = 0
		bars.Horizontal = horizontal
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * barWidth
		p.Add(bars)
		p.Legend.Add(country, bars)
	}
	if len(sel.Years) > 0 {
		if horizontal {
			p.NominalY(sel.Years...)
			p.Y.Min, p.Y.Max = -0.5, float64(len(sel.Years))-0.5
		} else {
			p.NominalX(sel.Years...)
			p.X.Min, p.X.Max = -0.5, float64(len(sel.Years))-0.5
		}
	}
	return p, nil
}

type pieSlice struct {
	country    string
	value      float64
	share      float64
	colorIndex int
}

// pieSlices keeps the finite positive growth values and expresses each as a
// share of their total.
func pieSlices(shares []schemas.GrowthShare, sel schemas.Selection) []pieSlice {
	var wedges []pieSlice
	total := 0.0
	for _, s := range shares {
		if math.IsNaN(s.Percentage) || math.IsInf(s.Percentage, 0) || s.Percentage <= 0 {
			continue
		}
		colorIndex := 0
		for i, c := range sel.Countries {
			if c == s.Country {
				colorIndex = i
				break
			}
		}
		wedges = append(wedges, pieSlice{country: s.Country, value: s.Percentage, colorIndex: colorIndex})
		total += s.Percentage
	}
	for i := range wedges {
		wedges[i].share = wedges[i].value / total * 100
	}
	return wedges
}

// renderPie draws the growth pie with go-chart and places the bitmap on c.
func renderPie(c draw.Canvas, title string, wedges []pieSlice, dpi int) error {
	size := c.Rectangle.Size()
	width := int(size.X.Dots(float64(dpi)))
	height := int(size.Y.Dots(float64(dpi)))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pie tile has no area")
	}

	values := make([]chart.Value, len(wedges))
	for i, s := range wedges {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.country, s.share),
			Value: s.value,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(utils.GetChartColor(s.colorIndex)[1:]),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		}
	}
	pie := chart.PieChart{
		Title:  title,
		Width:  width,
		Height: height,
		DPI:    float64(dpi),
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("failed to decode pie chart: %w", err)
	}
	c.DrawImage(c.Rectangle, img)
	return nil
}
