package controllers

import (
	"context"
	"sync"

	"macrodash/src/config"
	"macrodash/src/schemas"
	"macrodash/src/services"
	"macrodash/src/utils"
)

type IController interface {
	LoadPrepared(ctx context.Context) (*schemas.PreparedIndicators, error)
	RenderPNG(ctx context.Context, prepared *schemas.PreparedIndicators) ([]byte, error)
	RenderToFile(ctx context.Context, path string) error
	Export(ctx context.Context, path string) error
	Refresh(ctx context.Context) error
	DashboardPNG(ctx context.Context) ([]byte, error)
	IndicatorSeries(ctx context.Context, indicator schemas.Indicator) ([]schemas.LongRecord, error)
	GrowthShares(ctx context.Context) ([]schemas.GrowthShare, error)
}

type Controller struct {
	Config           *config.Config
	WorkbookService  services.WorkbookServiceI
	PreparerService  services.PreparerServiceI
	DashboardService services.DashboardServiceI
	ExportService    services.ExportServiceI

	// refreshMutex serializes workbook reloads so concurrent misses render once.
	refreshMutex  sync.Mutex
	preparedCache *utils.Cache[*schemas.PreparedIndicators]
	pngCache      *utils.Cache[[]byte]
}

func NewController(cfg *config.Config) *Controller {
	selection := schemas.Selection{
		Countries: cfg.Selection.Countries,
		Years:     cfg.Selection.Years.YearLabels(),
	}
	return &Controller{
		Config:           cfg,
		WorkbookService:  services.NewWorkbookService(cfg.Workbook),
		PreparerService:  services.NewPreparerService(selection),
		DashboardService: services.NewDashboardService(cfg.Dashboard),
		ExportService:    services.NewExportService(),
		preparedCache:    utils.NewCache[*schemas.PreparedIndicators](),
		pngCache:         utils.NewCache[[]byte](),
	}
}
