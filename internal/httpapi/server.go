package httpapi

import (
	"net/http"

	"daily-diary/server/internal/auth"
	"daily-diary/server/internal/store"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Options struct {
	// Production switches cookies to Secure + SameSite=None and hides the
	// clear-users route.
	Production bool
	// StoreKind names the backing store in /health/db, e.g. "postgres".
	StoreKind string
}

type Server struct {
	opts   Options
	store  store.Store
	auth   *auth.Service
	log    *zap.Logger
	router chi.Router
}

func NewServer(opts Options, st store.Store, authSvc *auth.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		opts:   opts,
		store:  st,
		auth:   authSvc,
		log:    log,
		router: chi.NewRouter(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", s.handleHealth)
	r.Get("/health/db", s.handleHealthDB)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/logout", s.handleLogout)
		r.Get("/check", s.handleCheck)
		if !s.opts.Production {
			r.Delete("/clear-users", s.handleClearUsers)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/todos", s.handleListTodos)
		r.Post("/todos", s.handleCreateTodo)
		r.Patch("/todos", s.handleUpdateTodo)
		r.Delete("/todos", s.handleDeleteTodo)

		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleCreateExpense)
		r.Delete("/expenses", s.handleDeleteExpense)

		r.Get("/notes", s.handleGetNote)
		r.Post("/notes", s.handleSaveNote)
	})
}
