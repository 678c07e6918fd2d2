package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/heartwatch/heartwatch/internal/api"
	"github.com/heartwatch/heartwatch/internal/config"
	"github.com/heartwatch/heartwatch/internal/metrics"
	"github.com/heartwatch/heartwatch/internal/model"
	"github.com/heartwatch/heartwatch/internal/monitor"
	"github.com/heartwatch/heartwatch/internal/publish"
	"github.com/heartwatch/heartwatch/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	eventsFile := flag.String("events-file", getEnv("HW_EVENTS_FILE", "events.json"), "JSON file containing heartbeat events")
	outputFile := flag.String("output-file", getEnv("HW_OUTPUT_FILE", "alerts.json"), "file to store alerts output")
	interval := flag.Int("interval", getEnvInt("HW_INTERVAL_SEC", config.DefaultIntervalSeconds), "expected interval between heartbeats in seconds")
	allowedMisses := flag.Int("allowed-misses", getEnvInt("HW_ALLOWED_MISSES", config.DefaultAllowedMisses), "number of consecutive misses before alert")
	configFile := flag.String("config", getEnv("HW_CONFIG_FILE", ""), "optional YAML configuration file (overrides interval flags)")
	natsURL := flag.String("nats-url", getEnv("HW_NATS_URL", ""), "optional NATS URL; alerts are also published to "+publish.Subject)
	listenAddr := flag.String("listen", getEnv("HW_HTTP_ADDR", ""), "optional address to serve alerts and metrics after the run")
	flag.Parse()

	cfg := config.Config{IntervalSeconds: *interval, AllowedMisses: *allowedMisses}
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			logger.Error("Failed to load configuration", "file", *configFile, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting heartwatch run",
		"events_file", *eventsFile,
		"interval_seconds", cfg.IntervalSeconds,
		"allowed_misses", cfg.AllowedMisses)

	records, err := loadEvents(*eventsFile)
	if err != nil {
		logger.Error("Failed to load events", "file", *eventsFile, "error", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.Info("No events found", "file", *eventsFile)
		return
	}

	promMetrics := metrics.NewMetrics()

	mon, err := monitor.New(cfg, promMetrics, logger)
	if err != nil {
		logger.Error("Failed to create monitor", "error", err)
		os.Exit(1)
	}

	result := mon.Run(records)

	logger.Info("Batch processed",
		"valid_events", result.Valid,
		"dropped_events", result.Dropped.Total(),
		"services", result.Services,
		"alerts", len(result.Alerts))

	if len(result.Alerts) == 0 {
		logger.Info("No alerts triggered")
	}
	for _, alert := range result.Alerts {
		logger.Info("Alert triggered",
			"service", alert.Service,
			"alert_at", alert.AlertAt.UTC().Format(time.RFC3339))
	}

	if err := saveAlerts(*outputFile, result.Alerts); err != nil {
		logger.Error("Failed to save alerts", "file", *outputFile, "error", err)
		os.Exit(1)
	}
	logger.Info("Alerts saved", "file", *outputFile, "count", len(result.Alerts))

	if *natsURL != "" {
		nc, err := nats.Connect(*natsURL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "url", *natsURL, "error", err)
			os.Exit(1)
		}
		defer nc.Close()

		publisher := publish.NewAlertPublisher(nc, logger)
		if err := publisher.PublishAlerts(result.Alerts); err != nil {
			logger.Error("Failed to publish alerts", "error", err)
			os.Exit(1)
		}
	}

	if *listenAddr != "" {
		serveResults(*listenAddr, result.Alerts, logger)
	}
}

// loadEvents reads and decodes the top-level JSON array of raw event
// records. A missing file or a top level that is not an array is a
// user-facing failure; individual malformed records are the
// validator's business, not ours.
func loadEvents(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	var records []any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}
	return records, nil
}

// saveAlerts writes the alert list as indented JSON. An empty run
// writes an empty array, not null.
func saveAlerts(path string, alerts []model.Alert) error {
	if alerts == nil {
		alerts = []model.Alert{}
	}
	data, err := json.MarshalIndent(alerts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal alerts: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write alerts: %w", err)
	}
	return nil
}

// serveResults keeps the process alive serving the run's alerts and
// metrics until interrupted.
func serveResults(addr string, alerts []model.Alert, logger *slog.Logger) {
	alertStore := store.NewMemoryStore(10000, 100000)
	alertStore.AddBatch(alerts)

	mux := http.NewServeMux()
	httpAPI := api.NewHTTPAPI(alertStore)
	httpAPI.SetupRoutes(mux)

	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
