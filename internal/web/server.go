// Package web provides the HTTP server and handlers for the records API.
package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/crimebase/crimebase/internal/auth"
	"github.com/crimebase/crimebase/internal/config"
	"github.com/crimebase/crimebase/internal/service"
	"github.com/crimebase/crimebase/internal/storage"
)

// Server is the HTTP server for the records API.
type Server struct {
	svc    *service.Service
	auth   *auth.Manager
	cfg    *config.Config
	failed *storage.Store
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server instance.
func NewServer(svc *service.Service, authMgr *auth.Manager, failed *storage.Store, cfg *config.Config) *Server {
	s := &Server{
		svc:    svc,
		auth:   authMgr,
		cfg:    cfg,
		failed: failed,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Open routes: session bootstrap and activation.
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/forgot-password", s.handleForgotPassword)
		r.Post("/auth/reset-password/{key}", s.handleResetPassword)
		r.Post("/installations", s.handleCreateInstallation)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/logout", s.handleLogout)
			r.Get("/account", s.handleGetProfile)
			r.Put("/account", s.handleUpdateProfile)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/installations", s.handleListInstallations)
			r.Delete("/installations/{id}", s.handleDeleteInstallation)

			r.Route("/criminals", func(r chi.Router) {
				r.Get("/", s.handleListCriminals)
				r.Get("/export", s.handleExportCriminals)
				r.Post("/import", s.handleImportCriminals)
				r.Post("/", s.handleCreateCriminal)
				r.Get("/{id}", s.handleGetCriminal)
				r.Put("/{id}", s.handleUpdateCriminal)
				r.Delete("/{id}", s.handleDeleteCriminal)
			})

			r.Route("/crimes", func(r chi.Router) {
				r.Get("/", s.handleListCrimes)
				r.Get("/export", s.handleExportCrimes)
				r.Post("/import", s.handleImportCrimes)
				r.Post("/", s.handleCreateCrime)
				r.Get("/{id}", s.handleGetCrime)
				r.Put("/{id}", s.handleUpdateCrime)
				r.Delete("/{id}", s.handleDeleteCrime)
			})

			r.Route("/crimes-by-criminals", func(r chi.Router) {
				r.Get("/", s.handleListLinks)
				r.Get("/export", s.handleExportLinks)
				r.Post("/import", s.handleImportLinks)
				r.Post("/", s.handleCreateLink)
				r.Get("/{id}", s.handleGetLink)
				r.Put("/{id}", s.handleUpdateLink)
				r.Delete("/{id}", s.handleDeleteLink)
			})

			r.Route("/courts", func(r chi.Router) {
				r.Get("/", s.handleListCourts)
				r.Get("/export", s.handleExportCourts)
				r.Post("/import", s.handleImportCourts)
				r.Post("/", s.handleCreateCourt)
				r.Get("/{id}", s.handleGetCourt)
				r.Put("/{id}", s.handleUpdateCourt)
				r.Delete("/{id}", s.handleDeleteCourt)
			})

			r.Route("/hearings", func(r chi.Router) {
				r.Get("/", s.handleListHearings)
				r.Get("/export", s.handleExportHearings)
				r.Post("/import", s.handleImportHearings)
				r.Post("/", s.handleCreateHearing)
				r.Get("/{id}", s.handleGetHearing)
				r.Put("/{id}", s.handleUpdateHearing)
				r.Delete("/{id}", s.handleDeleteHearing)
			})

			r.Route("/jails", func(r chi.Router) {
				r.Get("/", s.handleListJails)
				r.Get("/export", s.handleExportJails)
				r.Post("/import", s.handleImportJails)
				r.Post("/", s.handleCreateJail)
				r.Get("/{id}", s.handleGetJail)
				r.Put("/{id}", s.handleUpdateJail)
				r.Delete("/{id}", s.handleDeleteJail)
			})

			r.Route("/visitors", func(r chi.Router) {
				r.Get("/", s.handleListVisitors)
				r.Get("/export", s.handleExportVisitors)
				r.Post("/import", s.handleImportVisitors)
				r.Post("/", s.handleCreateVisitor)
				r.Get("/{id}", s.handleGetVisitor)
				r.Put("/{id}", s.handleUpdateVisitor)
				r.Delete("/{id}", s.handleDeleteVisitor)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.handleListUsers)
				r.Get("/export", s.handleExportUsers)
				r.Post("/import", s.handleImportUsers)
				r.Put("/password/{id}", s.handleUpdateUserPassword)
				r.Post("/", s.handleCreateUser)
				r.Get("/{id}", s.handleGetUser)
				r.Put("/{id}", s.handleUpdateUser)
				r.Delete("/{id}", s.handleDeleteUser)
			})

			r.Get("/pdf/criminals/{id}", s.handleCriminalPdf)
			r.Get("/pdf/crimes/{id}", s.handleCrimePdf)

			r.Get("/uploads/failed-excel/{name}", s.handleFailedReport)
			r.Get("/uploads/images/{name}", s.handleImage)
			r.Get("/uploads/logo", s.handleLogo)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	slog.Info("starting server", slog.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
