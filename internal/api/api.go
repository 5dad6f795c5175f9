// Package api contains the http.Handler implementations for the api endpoints
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanishbin/vanishbin/internal/observe"
	"github.com/vanishbin/vanishbin/internal/parsers"
	"github.com/vanishbin/vanishbin/internal/services"
	"github.com/vanishbin/vanishbin/internal/views"
)

// Config captures everything the router needs.
type Config struct {
	Store          services.PasteStore
	Clock          services.Clock
	Metrics        *observe.Metrics
	Gatherer       prometheus.Gatherer
	Logger         *slog.Logger
	MaxContentSize int64
	MaxTTLSeconds  int64
	MaxViewsCap    int64
	MaxListLimit   int
	RateLimiter    *RateLimiter
	TrustProxy     bool
}

// NewRouter wires the api endpoints onto a chi router.
func NewRouter(cfg Config) chi.Router {
	if cfg.Clock == nil {
		cfg.Clock = services.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		reg := prometheus.NewRegistry()
		cfg.Metrics = observe.NewMetrics(reg)
		cfg.Gatherer = reg
	}

	createHandler := NewCreateHandler(
		cfg.MaxContentSize,
		parsers.NewCreatePasteParser(cfg.MaxTTLSeconds, cfg.MaxViewsCap),
		cfg.Store,
		views.NewPasteCreateView(),
		cfg.Metrics,
		cfg.Logger,
	)
	readHandler := NewReadHandler(
		parsers.NewGetPasteParser(),
		cfg.Store,
		views.NewPasteReadView(),
		cfg.Clock,
		cfg.Metrics,
		cfg.Logger,
	)
	statsHandler := NewStatsHandler(
		parsers.NewGetPasteParser(),
		cfg.Store,
		views.NewPasteStatsView(),
		cfg.Logger,
	)
	deleteHandler := NewDeleteHandler(
		parsers.NewGetPasteParser(),
		cfg.Store,
		views.NewPasteDeleteView(),
		cfg.Metrics,
		cfg.Logger,
	)
	listHandler := NewListHandler(
		parsers.NewListPastesParser(cfg.MaxListLimit),
		cfg.Store,
		views.NewPasteListView(),
		cfg.Logger,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RateLimitMiddleware(cfg.RateLimiter, cfg.Metrics, func(req *http.Request) string {
		return ClientIP(req, cfg.TrustProxy)
	}))
	r.Use(middleware.Recoverer)

	r.Route("/api/pastes", func(pr chi.Router) {
		pr.Post("/", createHandler.Handle)
		pr.Get("/", listHandler.Handle)
		pr.Get("/{id}", readHandler.Handle)
		pr.Get("/{id}/stats", statsHandler.Handle)
		pr.Delete("/{id}", deleteHandler.Handle)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
