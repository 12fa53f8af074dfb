package httpx

import (
	"net/http"

	"github.com/cloudfolio/siteops/internal/service"
)

// CounterHandlers serves the visitor counter endpoints.
type CounterHandlers struct {
	Svc *service.CounterService
}

type counterResponse struct {
	Count int64 `json:"count"`
}

// Get handles GET /counter. Reads never modify the count.
func (h *CounterHandlers) Get(w http.ResponseWriter, r *http.Request) {
	count, err := h.Svc.Current(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, counterResponse{Count: count})
}

// Hit handles POST /counter. Each call records one visit and returns the new
// count so the page can render it without a second request.
func (h *CounterHandlers) Hit(w http.ResponseWriter, r *http.Request) {
	count, err := h.Svc.Hit(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, counterResponse{Count: count})
}
