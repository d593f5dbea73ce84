package utils

import (
	"image/color"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const CountryColumn = "Country Name"
const YearColumn = "Year"

// ChartColors is the Dark2 qualitative palette. Series take colors by their
// position in the country selection so every panel agrees on a country's color.
var ChartColors = []string{
	"#1b9e77", // Teal
	"#d95f02", // Orange
	"#7570b3", // Purple
	"#e7298a", // Magenta
	"#66a61e", // Green
	"#e6ab02", // Mustard
	"#a6761d", // Brown
	"#666666", // Gray
}

// GetChartColor returns a color from the chart color palette
// If the index exceeds the palette size, it cycles back to the beginning
func GetChartColor(index int) string {
	return ChartColors[index%len(ChartColors)]
}

// GetChartRGBA is GetChartColor parsed for image drawing.
func GetChartRGBA(index int) color.Color {
	return drawing.ColorFromHex(GetChartColor(index)[1:])
}
