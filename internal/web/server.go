// Package web provides the HTTP server and handlers for the vendor dashboard.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/vendorboard/internal/core"
	vbmw "github.com/JonMunkholm/vendorboard/internal/web/middleware"
)

// Options configures the server. Zero values select defaults.
type Options struct {
	RequestTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration

	RateLimitEnabled  bool
	RequestsPerMinute int
	ExportsPerMinute  int

	TrustedProxies []string
	EnableCSP      bool
	SecureCookies  bool

	DefaultTheme core.Theme
	Now          func() time.Time

	// PreviewTables are the dashboard preview tabs, in order. Keys that are
	// not registered are skipped.
	PreviewTables []string
}

var defaultPreviewTables = []string{"alert_rules", "vendors", "contracts", "accounts", "transactions"}

func (o *Options) applyDefaults() {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = 15 * time.Second
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = 60 * time.Second
	}
	if o.RequestsPerMinute <= 0 {
		o.RequestsPerMinute = 100
	}
	if o.ExportsPerMinute <= 0 {
		o.ExportsPerMinute = 20
	}
	if o.DefaultTheme == "" {
		o.DefaultTheme = core.ThemeLight
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.PreviewTables == nil {
		o.PreviewTables = defaultPreviewTables
	}
}

// Server is the HTTP server for the dashboard.
type Server struct {
	service  *core.Service
	opts     Options
	router   *chi.Mux
	server   *http.Server
	limiters []*rateLimiter
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, opts Options) *Server {
	opts.applyDefaults()
	s := &Server{
		service: service,
		opts:    opts,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(vbmw.TrustedRealIP(s.opts.TrustedProxies))
	s.router.Use(s.viewState)
	s.router.Use(vbmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.opts.RequestTimeout))

	s.router.Use(securityHeaders(s.opts.EnableCSP))

	if s.opts.RateLimitEnabled {
		s.router.Use(s.newLimiter(s.opts.RequestsPerMinute).middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Pages
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/table/{tableKey}", s.handleTableView)
	s.router.Post("/theme", s.handleTheme)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/tables", s.handleListTables)
		r.Get("/table/{tableKey}", s.handleTableData)
		r.Get("/summary", s.handleSummary)

		r.Group(func(r chi.Router) {
			if s.opts.RateLimitEnabled {
				r.Use(s.newLimiter(s.opts.ExportsPerMinute).middleware)
			}
			r.Get("/export/{tableKey}", s.handleExport)
		})

		r.Post("/toggle/{tableKey}/{rowID}", s.handleToggle)
		r.Post("/view/reset", s.handleResetView)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, errNotFound, http.StatusNotFound)
	})
}

func (s *Server) newLimiter(perMinute int) *rateLimiter {
	rl := newRateLimiter(perMinute, time.Minute)
	s.limiters = append(s.limiters, rl)
	return rl
}

// Start begins listening for HTTP requests. It returns http.ErrServerClosed
// after Shutdown, including a Shutdown that ran before Start.
func (s *Server) Start(addr string) error {
	s.server.Addr = addr
	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, rl := range s.limiters {
		rl.stop()
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Pages carry their stylesheet inline and load no scripts.
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'none'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; form-action 'self'")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "path", r.URL.Path, "error", err)
	}
}
