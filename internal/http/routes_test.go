package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cloudfolio/siteops/internal/domain/model"
	apperrors "github.com/cloudfolio/siteops/internal/errors"
	"github.com/cloudfolio/siteops/internal/mocks"
	"github.com/cloudfolio/siteops/internal/service"
)

type routerFixture struct {
	counterRepo *mocks.MockCounterRepository
	compute     *mocks.MockComputeController
	runs        *mocks.MockRenewalRunRepository
	handler     http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &routerFixture{
		counterRepo: mocks.NewMockCounterRepository(ctrl),
		compute:     mocks.NewMockComputeController(ctrl),
		runs:        mocks.NewMockRenewalRunRepository(ctrl),
	}

	counterSvc, err := service.NewCounterService(service.CounterServiceOptions{Repo: f.counterRepo})
	require.NoError(t, err)

	renewalSvc, err := service.NewRenewalTriggerService(service.RenewalTriggerServiceOptions{
		Compute: f.compute,
		Runs:    f.runs,
		Config:  service.RenewalTriggerConfig{Domain: "example.com"},
	})
	require.NoError(t, err)

	f.handler = NewRouter(RouterServices{
		Counter: counterSvc,
		Renewal: renewalSvc,
		Health: []HealthChecker{
			{Name: "counter_store", Check: counterSvc.Health},
			{Name: "renewal_compute", Check: renewalSvc.Health},
		},
		CORS: CORSConfig{AllowedOrigin: "https://example.com"},
	})
	return f
}

func (f *routerFixture) do(method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestCounterGet(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.counterRepo.EXPECT().Get(gomock.Any()).Return(int64(7), nil)

	rec := f.do(http.MethodGet, "/counter")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body["count"])
}

func TestCounterHit(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.counterRepo.EXPECT().Increment(gomock.Any()).Return(int64(8), nil)

	rec := f.do(http.MethodPost, "/counter")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(8), body["count"])
}

func TestCounterThrottled(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.counterRepo.EXPECT().Increment(gomock.Any()).
		Return(int64(0), apperrors.Throttled("store busy"))

	rec := f.do(http.MethodPost, "/counter")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "throttled", body["error"])
}

func TestRenewalTrigger(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.compute.EXPECT().Start(gomock.Any()).Return("i-0abc123", nil)

	rec := f.do(http.MethodPost, "/ssl/renew")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "renewal started", body["message"])
	assert.Equal(t, "i-0abc123", body["instance_id"])
}

func TestRenewalTriggerAlreadyRunning(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.compute.EXPECT().Start(gomock.Any()).
		Return("", apperrors.StateConflict("renewal instance already running"))

	rec := f.do(http.MethodPost, "/ssl/renew")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "renewal already in progress", body["message"])
}

func TestRenewalStatus(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.compute.EXPECT().Status(gomock.Any()).Return(&model.ComputeStatus{
		InstanceID: "i-0abc123",
		State:      model.ComputeStateStopped,
	}, nil)
	f.runs.EXPECT().Latest(gomock.Any(), "example.com").Return(&model.RenewalRun{
		ID:      "run-1",
		Domain:  "example.com",
		Outcome: model.RenewalOutcomeSuccess,
	}, nil)

	rec := f.do(http.MethodGet, "/ssl/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status model.RenewalStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, model.ComputeStateStopped, status.Compute.State)
	require.NotNil(t, status.LastRun)
	assert.Equal(t, model.RenewalOutcomeSuccess, status.LastRun.Outcome)
}

func TestRenewalHealthDegraded(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.compute.EXPECT().Status(gomock.Any()).Return(nil, apperrors.Internal("api down"))

	rec := f.do(http.MethodGet, "/ssl/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCombinedHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pingErr  error
		wantCode int
		wantTag  string
	}{
		{name: "all healthy", pingErr: nil, wantCode: http.StatusOK, wantTag: "ok"},
		{name: "counter degraded", pingErr: apperrors.Internal("connection refused"), wantCode: http.StatusServiceUnavailable, wantTag: "degraded"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newRouterFixture(t)
			f.counterRepo.EXPECT().Ping(gomock.Any()).Return(tc.pingErr)
			f.compute.EXPECT().Status(gomock.Any()).
				Return(&model.ComputeStatus{State: model.ComputeStateStopped}, nil)

			rec := f.do(http.MethodGet, "/health")
			assert.Equal(t, tc.wantCode, rec.Code)

			var report struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
			assert.Equal(t, tc.wantTag, report.Status)
			assert.Equal(t, "ok", report.Checks["renewal_compute"])
		})
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/healthz")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(http.MethodOptions, "/counter")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestUnknownRouteIs404(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
