// Package httpx implements the JSON API surface: the visitor counter, the
// renewal trigger and status endpoints, and the health checks.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/cloudfolio/siteops/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Counter *service.CounterService
	Renewal *service.RenewalTriggerService
	// Health lists the dependency probes aggregated by GET /health. Typically
	// the counter store ping and the renewal compute describe.
	Health []HealthChecker
	CORS   CORSConfig
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP handler.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	if services.Counter != nil {
		counterHandlers := &CounterHandlers{Svc: services.Counter}
		mux.Handle("GET /counter", http.HandlerFunc(counterHandlers.Get))
		mux.Handle("POST /counter", http.HandlerFunc(counterHandlers.Hit))
	}

	if services.Renewal != nil {
		renewalHandlers := &RenewalHandlers{Svc: services.Renewal}
		mux.Handle("POST /ssl/renew", http.HandlerFunc(renewalHandlers.Trigger))
		mux.Handle("GET /ssl/status", http.HandlerFunc(renewalHandlers.Status))
		mux.Handle("GET /ssl/health", http.HandlerFunc(renewalHandlers.Health))
	}

	healthHandlers := &HealthHandlers{Checkers: services.Health}
	mux.Handle("GET /health", http.HandlerFunc(healthHandlers.Combined))
	mux.Handle("GET /healthz", http.HandlerFunc(healthzHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthzHandler))

	return Chain(mux,
		Recover(logger),
		Logging(logger),
		SecurityHeaders(),
		CORS(services.CORS),
	)
}
