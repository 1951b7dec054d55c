package products

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ProductAPI/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

// NewHandler wires the middleware chain, metrics and the product routes.
// When a Registry is given the server's store is wrapped with instrumentation.
func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if s.Log == nil {
		s.Log = deps.Log
	}

	r := chi.NewRouter()
	r.NotFound(kit.NotFound)
	r.MethodNotAllowed(kit.MethodNotAllowed)

	metrics := setupStoreMetrics(s, deps)
	setupMiddleware(r, deps, metrics)
	mountMetrics(r, deps)

	r.Mount("/", s.Routes())
	return r
}

// setupMiddleware keeps the recoverer innermost so the access log and the
// request metrics observe the 500 it writes for a panic.
func setupMiddleware(r *chi.Mux, deps HTTPDeps, metrics *kit.Metrics) {
	r.Use(kit.RequestID)
	r.Use(kit.Logging(deps.Log))
	if metrics != nil {
		r.Use(metrics.Middleware(deps.Service))
	}
	r.Use(kit.Recoverer(deps.Log))
}

func setupStoreMetrics(s *Server, deps HTTPDeps) *kit.Metrics {
	if deps.Registry == nil {
		return nil
	}
	s.Store = NewInstrumentedStore(s.Store, deps.Registry)
	return kit.NewMetrics(deps.Registry)
}

func mountMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil || !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}
