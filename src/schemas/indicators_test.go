package schemas_test

import (
	"encoding/json"
	"math"
	"testing"

	"macrodash/src/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthShareJSON(t *testing.T) {
	out, err := json.Marshal([]schemas.GrowthShare{
		{Country: "China", Percentage: 61.3},
		{Country: "Canada", Percentage: math.NaN()},
		{Country: "Germany", Percentage: math.Inf(1)},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"country":"China","percentage":61.3},
		{"country":"Canada","percentage":null},
		{"country":"Germany","percentage":null}
	]`, string(out))
}

func TestYearIndex(t *testing.T) {
	table := &schemas.IndicatorTable{Years: []string{"2000", "2003"}}
	assert.Equal(t, 1, table.YearIndex("2003"))
	assert.Equal(t, -1, table.YearIndex("2020"))
}

func TestSelection(t *testing.T) {
	sel := schemas.Selection{Countries: []string{"China"}, Years: []string{"2000"}}
	assert.True(t, sel.HasCountry("China"))
	assert.False(t, sel.HasCountry("Poland"))
	assert.True(t, sel.HasYear("2000"))
	assert.False(t, sel.HasYear("2001"))
}
