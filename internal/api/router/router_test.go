package router

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-management-api/internal/application"
	"github.com/sanosuguru/go-event-management-api/internal/config"
	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/infrastructure/memory"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/metrics"
)

func newTestRouter(t *testing.T, auth *config.MetricsConfig) (http.Handler, *memory.EventStore) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	store := memory.NewEventStore()
	svc := application.NewEventService(metrics.InstrumentStore(store, m))
	return New(Options{EventService: svc, Metrics: m, Gatherer: reg, MetricsAuth: auth}), store
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	h, store := newTestRouter(t, nil)
	body := `{"eventId":"r1","title":"T","description":"","date":"2025-01-01","location":"L","capacity":1,"organizer":"O","status":"active"}`

	tests := []struct {
		method, target, body string
		want                 int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/events", body, http.StatusCreated},
		{http.MethodGet, "/events", "", http.StatusOK},
		{http.MethodGet, "/events/r1", "", http.StatusOK},
		{http.MethodPut, "/events/r1", `{"title":"U"}`, http.StatusOK},
		{http.MethodPatch, "/events/r1", `{"capacity":2}`, http.StatusOK},
		{http.MethodDelete, "/events/r1", "", http.StatusOK},
		{http.MethodGet, "/events/r1", "", http.StatusNotFound},
		{http.MethodGet, "/metrics", "", http.StatusOK},
	}
	for _, tt := range tests {
		rec := do(h, tt.method, tt.target, tt.body)
		assert.Equal(t, tt.want, rec.Code, "%s %s: %s", tt.method, tt.target, rec.Body.String())
	}
	assert.Equal(t, 0, store.Len())
}

func TestMetricsEndpoint(t *testing.T) {
	h, store := newTestRouter(t, nil)
	require.NoError(t, store.Put(context.Background(), &event.Event{
		EventID: "seed", Title: "T", Date: "2025-01-01", Location: "L", Capacity: 1, Organizer: "O", Status: "active",
	}))

	do(h, http.MethodGet, "/events/seed", "")
	rec := do(h, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `event_store_operations_total{operation="get",status="success"} 1`)
}

func TestMetricsEndpoint_BasicAuth(t *testing.T) {
	h, _ := newTestRouter(t, &config.MetricsConfig{User: "prom", Password: "secret"})

	rec := do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("prom:secret")))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint_DisabledWithoutMetrics(t *testing.T) {
	svc := application.NewEventService(memory.NewEventStore())
	h := New(Options{EventService: svc})

	rec := do(h, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
