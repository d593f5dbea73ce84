package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Workbook  WorkbookConfig  `mapstructure:"workbook"`
	Selection SelectionConfig `mapstructure:"selection"`
	Growth    GrowthConfig    `mapstructure:"growth"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Export    ExportConfig    `mapstructure:"export"`
}

type ServiceType string

const (
	RENDER ServiceType = "RENDER"
	API    ServiceType = "API"
)

type ServiceConfig struct {
	Type        ServiceType `mapstructure:"type"`
	Port        string      `mapstructure:"port"`
	RefreshCron string      `mapstructure:"refreshCron"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

type WorkbookConfig struct {
	Path          string      `mapstructure:"path"`
	CountryColumn string      `mapstructure:"countryColumn"`
	Sheets        SheetConfig `mapstructure:"sheets"`
}

// SheetConfig maps each indicator to the sheet that holds it.
type SheetConfig struct {
	Education  string `mapstructure:"education"`
	Health     string `mapstructure:"health"`
	Exports    string `mapstructure:"exports"`
	GDPGrowth  string `mapstructure:"gdpGrowth"`
	CurrentGDP string `mapstructure:"currentGdp"`
}

type SelectionConfig struct {
	Countries []string    `mapstructure:"countries"`
	Years     YearsConfig `mapstructure:"years"`
}

// YearsConfig describes an inclusive stepped range of sample years.
type YearsConfig struct {
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
	Step  int `mapstructure:"step"`
}

type GrowthConfig struct {
	BaseYear string `mapstructure:"baseYear"`
	EndYear  string `mapstructure:"endYear"`
}

type DashboardConfig struct {
	Title        string  `mapstructure:"title"`
	Subtitle     string  `mapstructure:"subtitle"`
	WidthInches  float64 `mapstructure:"widthInches"`
	HeightInches float64 `mapstructure:"heightInches"`
	DPI          int     `mapstructure:"dpi"`
	OutputPath   string  `mapstructure:"outputPath"`
}

type ExportConfig struct {
	Path string `mapstructure:"path"`
}

// LoadConfig reads appsettings.yaml from path and, when env is set, merges
// appsettings.<env>.yaml on top of it. A missing base file falls back to
// the built-in defaults. Environment variables prefixed MACRODASH_ win over
// both files.
func LoadConfig(path string, env string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MACRODASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to merge %s settings: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(RENDER))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.refreshCron", "@every 1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.toFile", false)
	v.SetDefault("logging.filePath", "macrodash.log")

	v.SetDefault("workbook.path", "dataset1.xlsx")
	v.SetDefault("workbook.countryColumn", "Country Name")
	v.SetDefault("workbook.sheets.education", "Education")
	v.SetDefault("workbook.sheets.health", "Health")
	v.SetDefault("workbook.sheets.exports", "Exports")
	v.SetDefault("workbook.sheets.gdpGrowth", "GDP Growth")
	v.SetDefault("workbook.sheets.currentGdp", "Current GDP")

	v.SetDefault("selection.countries", []string{"China", "Singapore", "Germany", "Canada", "Australia"})
	v.SetDefault("selection.years.start", 2000)
	v.SetDefault("selection.years.end", 2015)
	v.SetDefault("selection.years.step", 3)

	v.SetDefault("growth.baseYear", "2000")
	v.SetDefault("growth.endYear", "2020")

	v.SetDefault("dashboard.title", "GDP Growth and their Factors(2000 - 2015)")
	v.SetDefault("dashboard.subtitle", "Name: Zain Shoukat    ID: 22087011")
	v.SetDefault("dashboard.widthInches", 20.0)
	v.SetDefault("dashboard.heightInches", 20.0)
	v.SetDefault("dashboard.dpi", 300)
	v.SetDefault("dashboard.outputPath", "22087011.png")

	v.SetDefault("export.path", "")
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.Service.Type {
	case RENDER, API:
	default:
		return fmt.Errorf("unknown service type %q", c.Service.Type)
	}
	if len(c.Selection.Countries) == 0 {
		return errors.New("selection.countries must not be empty")
	}
	if c.Selection.Years.Step <= 0 {
		return fmt.Errorf("selection.years.step must be positive, got %d", c.Selection.Years.Step)
	}
	if c.Selection.Years.End < c.Selection.Years.Start {
		return fmt.Errorf("selection.years.end (%d) is before start (%d)", c.Selection.Years.End, c.Selection.Years.Start)
	}
	if c.Dashboard.DPI <= 0 || c.Dashboard.WidthInches <= 0 || c.Dashboard.HeightInches <= 0 {
		return errors.New("dashboard size and dpi must be positive")
	}
	return nil
}

// YearLabels expands the configured range into year labels,
// e.g. 2000..2015 step 3 gives 2000, 2003, ..., 2015.
func (y YearsConfig) YearLabels() []string {
	if y.Step <= 0 {
		return nil
	}
	var labels []string
	for year := y.Start; year <= y.End; year += y.Step {
		labels = append(labels, fmt.Sprintf("%d", year))
	}
	return labels
}
