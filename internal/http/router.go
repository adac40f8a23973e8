// Package httpapi assembles the HTTP surface: feature routes, the health and
// metrics endpoints, and the shared middleware chain. It delegates to the
// feature handlers without embedding business logic so transport concerns
// remain isolated.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"singate/internal/platform/metrics"
	"singate/internal/platform/middleware"
	"singate/internal/ratelimit"
	"singate/pkg/platform/httputil"
)

// HealthChecker reports backend reachability for the health endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router wires together.
type Deps struct {
	Logger     *slog.Logger
	Validation interface{ Register(chi.Router) }
	RateLimit  *ratelimit.Middleware
	// Metrics is optional; nil skips transport metric collection.
	Metrics *metrics.Metrics
	// Checks maps a component name to its health check. A failing check
	// degrades /healthz to 503 with the component named.
	Checks map[string]HealthChecker
}

// NewRouter builds the full route tree.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", handleHealth(deps.Checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.PerIP)
		}
		deps.Validation.Register(r)
	})

	return r
}

// healthResponse is the /healthz body.
type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func handleHealth(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK

		if len(checks) > 0 {
			resp.Components = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check.Health(r.Context()); err != nil {
				resp.Components[name] = "unreachable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Components[name] = "ok"
		}

		httputil.WriteJSON(w, status, resp)
	}
}
