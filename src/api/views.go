package api

import (
	"context"
	"net/http"
	"time"

	"macrodash/src/api/handlers"
	"macrodash/src/config"
	"macrodash/src/controllers"
	"macrodash/src/scheduler"
	"macrodash/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router      *chi.Mux
	Handler     handlers.Handler
	cfg         *config.Config
	refreshTask *scheduler.ScheduledTask
}

func NewServer(cfg *config.Config, controller controllers.IController, logger *logrus.Logger) (*Server, error) {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handlers.NewHandler(controller, logger),
		cfg:     cfg,
	}
	server.InitRoutes()

	if cfg.Service.RefreshCron != "" {
		task, err := scheduler.NewScheduledTask(cfg.Service.RefreshCron, func() {
			ctx := utils.WithLogger(context.Background(), logger)
			if err := controller.Refresh(ctx); err != nil {
				logger.WithError(err).Warn("scheduled dashboard refresh failed")
			}
		})
		if err != nil {
			return nil, err
		}
		server.refreshTask = task
	}
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.Recoverer)
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api", func(r chi.Router) {
		r.Get("/dashboard.png", s.Handler.GetDashboard)
		r.Post("/dashboard/refresh", s.Handler.RefreshDashboard)
		r.Get("/indicators/{indicator}", s.Handler.GetIndicator)
		r.Get("/growth", s.Handler.GetGrowth)
	})
}

// Close stops the background refresh.
func (s *Server) Close() {
	if s.refreshTask != nil {
		s.refreshTask.Cancel()
	}
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + server.cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		Handler:      server,
	}
	return httpServer
}
