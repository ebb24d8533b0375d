package api

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/lucasreis/polyview/internal/polymarket"
)

// Server represents the relay server.
type Server struct {
	router    *chi.Mux
	handlers  *Handlers
	addr      string
	staticDir string
	server    *http.Server
}

// NewServer creates a new relay server. staticDir holds the UI bundle and
// is served from the root; pass "" to disable static serving.
func NewServer(upstream *polymarket.Client, addr, staticDir string) *Server {
	handlers := NewHandlers(upstream)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)

		r.Route("/markets", func(r chi.Router) {
			r.Get("/", handlers.GetMarkets)
			r.Get("/{id}", handlers.GetMarket)
		})
	})

	if staticDir != "" {
		fs := http.FileServer(http.Dir(staticDir))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(staticDir, "index.html"))
		})
		r.Handle("/*", fs)
	}

	return &Server{
		router:    r,
		handlers:  handlers,
		addr:      addr,
		staticDir: staticDir,
	}
}

// Router exposes the chi mux, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the relay server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("addr", s.addr).Msg("Starting relay server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
