package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartwatch/heartwatch/internal/model"
	"github.com/heartwatch/heartwatch/internal/store"
)

// HTTPAPI is the read side of a finished run: it serves the collected
// alerts and the Prometheus metrics. It never feeds the pipeline.
type HTTPAPI struct {
	store *store.MemoryStore
}

// NewHTTPAPI creates an HTTP API over an alert store.
func NewHTTPAPI(store *store.MemoryStore) *HTTPAPI {
	return &HTTPAPI{store: store}
}

// SetupRoutes configures HTTP routes on the given mux.
func (api *HTTPAPI) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/alerts", api.handleAlerts)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", api.handleHealth)
	mux.HandleFunc("/readyz", api.handleReady)
}

// handleAlerts handles GET /alerts with optional service and limit
// query parameters.
func (api *HTTPAPI) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var alerts []*model.Alert
	if service := r.URL.Query().Get("service"); service != "" {
		alerts = api.store.AlertsByService(service)
	} else {
		alerts = api.store.Alerts()
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(alerts) {
			alerts = alerts[:limit]
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(map[string]any{
		"alerts":    alerts,
		"count":     len(alerts),
		"timestamp": time.Now().UTC(),
	}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// handleHealth handles GET /healthz.
func (api *HTTPAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// handleReady handles GET /readyz. The store is populated before the
// listener starts, so readiness tracks liveness here.
func (api *HTTPAPI) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ready",
		"stats":     api.store.Stats(),
		"timestamp": time.Now().UTC(),
	})
}
