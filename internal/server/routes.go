package server

import (
	"net/http"

	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"shortdash/internal/handlers"
	"shortdash/internal/middleware"
	"shortdash/internal/page"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Pages     *page.Registry
	Readiness handlers.Readiness
	Metrics   http.Handler
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(d Deps) {
	// Initialize middleware
	pageMiddleware := middleware.NewPageMiddleware(d.Pages)

	// Partials wait for their fetches a little longer than one backend call.
	wait := s.Cfg.BackendTimeout + s.Cfg.BackendTimeout/2

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(s.Cfg)
	formHandler := handlers.NewFormHandler()
	dashboardHandler := handlers.NewDashboardHandler(wait)
	recentHandler := handlers.NewRecentHandler(wait)
	probeHandler := handlers.NewProbeHandler(d.Readiness)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	if d.Metrics != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(d.Metrics))
	}

	// Full page load always mounts a fresh page
	s.App.Get("/", pageMiddleware.MountPage, pageHandler.Index)

	// Shortening form
	s.App.Post("/shorten", pageMiddleware.RequirePage, formHandler.Shorten)
	s.App.Post("/shorten/rename", pageMiddleware.RequirePage, formHandler.Rename)
	s.App.Post("/shorten/copy", pageMiddleware.RequirePage, formHandler.Copy)
	s.App.Post("/shorten/close", pageMiddleware.RequirePage, formHandler.Close)

	// Dashboard
	s.App.Get("/partials/dashboard", pageMiddleware.RequirePage, dashboardHandler.Show)

	// Recent links
	s.App.Get("/partials/links", pageMiddleware.RequirePage, recentHandler.List)
	s.App.Get("/links/edit", pageMiddleware.RequirePage, recentHandler.Edit)
	s.App.Post("/links/edit", pageMiddleware.RequirePage, recentHandler.Save)
	s.App.Post("/links/edit/close", pageMiddleware.RequirePage, recentHandler.CloseEdit)
	s.App.Post("/links/copy", pageMiddleware.RequirePage, recentHandler.Copy)
}
