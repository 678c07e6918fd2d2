package publish

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/heartwatch/heartwatch/internal/model"
)

// Subject is the NATS subject alerts are published on.
const Subject = "heartwatch.alerts"

// AlertPublisher pushes finished alerts to NATS for downstream
// consumers. Publishing is an output concern only; nothing is ever
// ingested back from the bus.
type AlertPublisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// NewAlertPublisher creates a publisher over an existing connection.
func NewAlertPublisher(nc *nats.Conn, logger *slog.Logger) *AlertPublisher {
	return &AlertPublisher{nc: nc, logger: logger}
}

// PublishAlert publishes a single alert to the alerts subject.
func (p *AlertPublisher) PublishAlert(alert *model.Alert) error {
	if p.nc == nil || !p.nc.IsConnected() {
		return fmt.Errorf("NATS connection not available")
	}

	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	headers := nats.Header{}
	headers.Set("x-alert-id", alert.ID)
	headers.Set("x-service", alert.Service)
	headers.Set("x-alert-at", alert.AlertAt.UTC().Format(time.RFC3339))

	msg := &nats.Msg{
		Subject: Subject,
		Data:    data,
		Header:  headers,
	}
	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}

	p.logger.Info("Published alert",
		"alert_id", alert.ID,
		"service", alert.Service,
		"alert_at", alert.AlertAt,
		"subject", Subject)

	return nil
}

// PublishAlerts publishes a run's alerts, continuing past individual
// failures and reporting them together at the end.
func (p *AlertPublisher) PublishAlerts(alerts []model.Alert) error {
	var errs []error
	published := 0

	for i := range alerts {
		if err := p.PublishAlert(&alerts[i]); err != nil {
			errs = append(errs, fmt.Errorf("alert %s: %w", alerts[i].ID, err))
		} else {
			published++
		}
	}

	p.logger.Info("Published alert batch",
		"total", len(alerts),
		"published", published,
		"failed", len(errs))

	if len(errs) > 0 {
		return fmt.Errorf("failed to publish %d alerts: %v", len(errs), errs)
	}
	return nil
}
