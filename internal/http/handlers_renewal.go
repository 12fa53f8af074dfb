package httpx

import (
	"net/http"

	"github.com/cloudfolio/siteops/internal/service"
)

// RenewalHandlers serves the certificate renewal control endpoints.
type RenewalHandlers struct {
	Svc *service.RenewalTriggerService
}

type renewalTriggerResponse struct {
	Message    string `json:"message"`
	InstanceID string `json:"instance_id,omitempty"`
}

// Trigger handles POST /ssl/renew. A duplicate trigger while a renewal is in
// flight is reported as success with a distinct message, never as an error.
func (h *RenewalHandlers) Trigger(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.Trigger(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	resp := renewalTriggerResponse{Message: "renewal started", InstanceID: result.InstanceID}
	if result.AlreadyRunning {
		resp.Message = "renewal already in progress"
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Status handles GET /ssl/status.
func (h *RenewalHandlers) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.Svc.Status(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}

// Health handles GET /ssl/health.
func (h *RenewalHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health(r.Context()); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"detail": err.Error(),
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
