package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartwatch/heartwatch/internal/model"
	"github.com/heartwatch/heartwatch/internal/store"
)

func newTestServer(t *testing.T, alerts ...model.Alert) *httptest.Server {
	t.Helper()
	s := store.NewMemoryStore(100, 1000)
	s.AddBatch(alerts)

	mux := http.NewServeMux()
	NewHTTPAPI(s).SetupRoutes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string) map[string]any {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandleAlerts(t *testing.T) {
	at := time.Date(2025, 8, 4, 10, 4, 0, 0, time.UTC)
	server := newTestServer(t,
		model.Alert{ID: "1", Service: "email", AlertAt: at},
		model.Alert{ID: "2", Service: "sms", AlertAt: at.Add(time.Minute)},
	)

	body := getJSON(t, server.URL+"/alerts")
	assert.Equal(t, float64(2), body["count"])

	body = getJSON(t, server.URL+"/alerts?service=email")
	assert.Equal(t, float64(1), body["count"])

	body = getJSON(t, server.URL+"/alerts?limit=1")
	assert.Equal(t, float64(1), body["count"])
}

func TestHandleAlerts_MethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/alerts", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthAndReady(t *testing.T) {
	server := newTestServer(t)

	body := getJSON(t, server.URL+"/healthz")
	assert.Equal(t, "healthy", body["status"])

	body = getJSON(t, server.URL+"/readyz")
	assert.Equal(t, "ready", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
