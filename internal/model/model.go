package model

import (
	"time"
)

// Event is a validated heartbeat observation for one service.
// Everything downstream of validation can rely on Service being
// non-empty and Timestamp being a real instant, normalized to UTC.
type Event struct {
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// Alert marks the instant at which a service's consecutive-miss count
// reached the configured threshold. Immutable once created.
type Alert struct {
	ID      string    `json:"id"`
	Service string    `json:"service"`
	AlertAt time.Time `json:"alert_at"`
}

// zonelessLayout covers ISO-8601 timestamps without a zone designator;
// those are read as UTC.
const zonelessLayout = "2006-01-02T15:04:05"

// ParseTimestamp parses an ISO-8601 heartbeat timestamp and normalizes
// it to UTC. The second return value reports whether the string was a
// usable instant; a parse failure is an expected outcome during
// validation, not an error.
func ParseTimestamp(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(zonelessLayout, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
