package monitor

import (
	"strings"

	"github.com/heartwatch/heartwatch/internal/model"
)

// DropReason tags why a raw record was excluded from detection.
type DropReason string

const (
	DropNotObject        DropReason = "not_object"
	DropMissingService   DropReason = "missing_service"
	DropBadService       DropReason = "bad_service"
	DropMissingTimestamp DropReason = "missing_timestamp"
	DropBadTimestamp     DropReason = "bad_timestamp"
)

// DropStats counts excluded records per reason. Informational only: a
// drop never fails the run.
type DropStats struct {
	ByReason map[DropReason]int
}

// Total returns the number of records dropped across all reasons.
func (s DropStats) Total() int {
	total := 0
	for _, n := range s.ByReason {
		total += n
	}
	return total
}

// Validate filters raw decoded records into well-formed events.
// Malformed records are skipped silently; an input of nothing but
// garbage still produces a result, just an empty one.
func Validate(records []any) ([]model.Event, DropStats) {
	stats := DropStats{ByReason: make(map[DropReason]int)}
	events := make([]model.Event, 0, len(records))

	for _, rec := range records {
		ev, reason, ok := classify(rec)
		if !ok {
			stats.ByReason[reason]++
			continue
		}
		events = append(events, ev)
	}

	return events, stats
}

// classify turns one raw record into either a well-formed event or a
// drop reason. Returning the reason as a value keeps validation total:
// nothing here can halt the batch.
func classify(rec any) (model.Event, DropReason, bool) {
	obj, ok := rec.(map[string]any)
	if !ok {
		return model.Event{}, DropNotObject, false
	}

	rawService, present := obj["service"]
	if !present {
		return model.Event{}, DropMissingService, false
	}
	service, ok := rawService.(string)
	if !ok || strings.TrimSpace(service) == "" {
		return model.Event{}, DropBadService, false
	}

	rawTimestamp, present := obj["timestamp"]
	if !present {
		return model.Event{}, DropMissingTimestamp, false
	}
	tsString, ok := rawTimestamp.(string)
	if !ok {
		return model.Event{}, DropBadTimestamp, false
	}
	ts, ok := model.ParseTimestamp(tsString)
	if !ok {
		return model.Event{}, DropBadTimestamp, false
	}

	return model.Event{Service: service, Timestamp: ts}, "", true
}
