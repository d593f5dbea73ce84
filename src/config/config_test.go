package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"macrodash/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsDir = "../../settings"

func TestLoadConfig(t *testing.T) {
	t.Run("built-in defaults without a settings file", func(t *testing.T) {
		cfg, err := config.LoadConfig(t.TempDir(), "")
		require.NoError(t, err)

		assert.Equal(t, config.RENDER, cfg.Service.Type)
		assert.Equal(t, "8000", cfg.Service.Port)
		assert.Equal(t, []string{"China", "Singapore", "Germany", "Canada", "Australia"}, cfg.Selection.Countries)
		assert.Equal(t, []string{"2000", "2003", "2006", "2009", "2012", "2015"}, cfg.Selection.Years.YearLabels())
		assert.Equal(t, "2000", cfg.Growth.BaseYear)
		assert.Equal(t, "2020", cfg.Growth.EndYear)
		assert.Equal(t, "GDP Growth", cfg.Workbook.Sheets.GDPGrowth)
		assert.Equal(t, 300, cfg.Dashboard.DPI)
		assert.Equal(t, "22087011.png", cfg.Dashboard.OutputPath)
	})

	t.Run("environment overlay is merged", func(t *testing.T) {
		cfg, err := config.LoadConfig(settingsDir, "TESTING")
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, 40, cfg.Dashboard.DPI)
		assert.Equal(t, 6.0, cfg.Dashboard.WidthInches)
		assert.Equal(t, "GDP Growth and their Factors(2000 - 2015)", cfg.Dashboard.Title)
		assert.Equal(t, "Current GDP", cfg.Workbook.Sheets.CurrentGDP)
	})

	t.Run("environment variables win", func(t *testing.T) {
		t.Setenv("MACRODASH_DASHBOARD_DPI", "72")
		t.Setenv("MACRODASH_SERVICE_TYPE", "API")

		cfg, err := config.LoadConfig(settingsDir, "")
		require.NoError(t, err)
		assert.Equal(t, 72, cfg.Dashboard.DPI)
		assert.Equal(t, config.API, cfg.Service.Type)
	})

	t.Run("missing overlay fails", func(t *testing.T) {
		_, err := config.LoadConfig(settingsDir, "NOPE")
		assert.Error(t, err)
	})

	t.Run("invalid settings fail validation", func(t *testing.T) {
		dir := t.TempDir()
		body := "selection:\n  years:\n    step: 0\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "appsettings.yaml"), []byte(body), 0o600))

		_, err := config.LoadConfig(dir, "")
		assert.ErrorContains(t, err, "step")
	})
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Service:   config.ServiceConfig{Type: config.RENDER},
			Selection: config.SelectionConfig{Countries: []string{"China"}, Years: config.YearsConfig{Start: 2000, End: 2015, Step: 3}},
			Dashboard: config.DashboardConfig{WidthInches: 20, HeightInches: 20, DPI: 300},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "unknown service", mutate: func(c *config.Config) { c.Service.Type = "WORKER" }, wantErr: "service type"},
		{name: "no countries", mutate: func(c *config.Config) { c.Selection.Countries = nil }, wantErr: "countries"},
		{name: "end before start", mutate: func(c *config.Config) { c.Selection.Years.End = 1999 }, wantErr: "before start"},
		{name: "zero dpi", mutate: func(c *config.Config) { c.Dashboard.DPI = 0 }, wantErr: "dpi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestYearLabels(t *testing.T) {
	assert.Equal(t, []string{"2000", "2005", "2010"}, config.YearsConfig{Start: 2000, End: 2012, Step: 5}.YearLabels())
	assert.Equal(t, []string{"2015"}, config.YearsConfig{Start: 2015, End: 2015, Step: 3}.YearLabels())
	assert.Nil(t, config.YearsConfig{Start: 2000, End: 2015}.YearLabels())
}
