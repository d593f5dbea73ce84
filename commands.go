package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"macrodash/src/api"
	"macrodash/src/config"
	"macrodash/src/controllers"
	"macrodash/src/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds what every command needs once flags and settings are resolved.
type app struct {
	settingsDir string
	env         string
	workbook    string
	output      string
	export      string
	port        string

	cfg    *config.Config
	logger *logrus.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "macrodash",
		Short:         "Render the macroeconomic indicator dashboard",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.settingsDir, "settings", "./settings", "directory holding appsettings.yaml")
	flags.StringVar(&a.env, "env", os.Getenv("ENV"), "settings overlay to merge, e.g. TESTING")
	flags.StringVar(&a.workbook, "workbook", "", "input workbook, overrides workbook.path")
	flags.StringVar(&a.output, "output", "", "dashboard PNG path, overrides dashboard.outputPath")
	flags.StringVar(&a.export, "export", "", "XLSX export path, overrides export.path")
	flags.StringVar(&a.port, "port", "", "HTTP port, overrides service.port")

	root.AddCommand(
		&cobra.Command{
			Use:   "render",
			Short: "Render the dashboard PNG once and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.render(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the dashboard and indicator data over HTTP",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "export",
			Short: "Write the prepared indicators to an XLSX workbook",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.exportWorkbook(cmd.Context())
			},
		},
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.LoadConfig(a.settingsDir, a.env)
	if err != nil {
		return fmt.Errorf("error while loading config: %w", err)
	}
	if a.workbook != "" {
		cfg.Workbook.Path = a.workbook
	}
	if a.output != "" {
		cfg.Dashboard.OutputPath = a.output
	}
	if a.export != "" {
		cfg.Export.Path = a.export
	}
	if a.port != "" {
		cfg.Service.Port = a.port
	}
	a.cfg = cfg
	a.logger = utils.NewLoggerFromLevel(cfg.Logging.Level, cfg.Logging.ToFile, cfg.Logging.FilePath)
	return nil
}

func (a *app) withLogger(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return utils.WithLogger(ctx, a.logger)
}

// run dispatches on service.type when no subcommand is given.
func (a *app) run(ctx context.Context) error {
	switch a.cfg.Service.Type {
	case config.API:
		return a.serve(ctx)
	default:
		return a.render(ctx)
	}
}

func (a *app) render(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	controller := controllers.NewController(a.cfg)
	if err := controller.RenderToFile(ctx, a.cfg.Dashboard.OutputPath); err != nil {
		a.logger.WithError(err).Error("dashboard rendering failed")
		return err
	}
	if a.cfg.Export.Path != "" {
		if err := controller.Export(ctx, a.cfg.Export.Path); err != nil {
			a.logger.WithError(err).Error("export failed")
			return err
		}
	}
	return nil
}

func (a *app) exportWorkbook(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	if a.cfg.Export.Path == "" {
		return errors.New("no export path, set --export or export.path")
	}
	if err := controllers.NewController(a.cfg).Export(ctx, a.cfg.Export.Path); err != nil {
		a.logger.WithError(err).Error("export failed")
		return err
	}
	return nil
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(a.withLogger(ctx), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := api.NewServer(a.cfg, controllers.NewController(a.cfg), a.logger)
	if err != nil {
		a.logger.WithError(err).Error("could not set up server")
		return err
	}
	defer server.Close()
	httpServer := api.NewHTTPServer(server)

	errC := make(chan error, 1)
	go func() {
		a.logger.WithField("port", a.cfg.Service.Port).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		if err != nil {
			a.logger.WithError(err).Error("An error raised while setting up server")
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.logger.Info("shutting down server")
	return httpServer.Shutdown(shutdownCtx)
}
