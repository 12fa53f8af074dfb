package httpx

import (
	"context"
	"io"
	"net/http"
)

const healthResponse = `{"status":"ok"}`

// healthzHandler returns a simple 200 OK status for readiness/liveness checks.
// It checks nothing: a process that can answer is alive.
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// HealthChecker is one named dependency probe for the combined health view.
type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandlers serves the combined GET /health endpoint, aggregating every
// registered dependency probe.
type HealthHandlers struct {
	Checkers []HealthChecker
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Combined reports the status of every dependency. Any failing check degrades
// the aggregate to 503 while still reporting the rest.
func (h *HealthHandlers) Combined(w http.ResponseWriter, r *http.Request) {
	report := healthReport{
		Status: "ok",
		Checks: make(map[string]string, len(h.Checkers)),
	}

	for _, c := range h.Checkers {
		if err := c.Check(r.Context()); err != nil {
			report.Status = "degraded"
			report.Checks[c.Name] = err.Error()
			continue
		}
		report.Checks[c.Name] = "ok"
	}

	code := http.StatusOK
	if report.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	WriteJSON(w, code, report)
}
