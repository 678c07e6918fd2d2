package monitor

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartwatch/heartwatch/internal/config"
	"github.com/heartwatch/heartwatch/internal/model"
)

// Detector evaluates one service's sorted timeline against the
// expected heartbeat cadence. It carries no per-service state; all
// detection state lives on the stack of a single DetectMisses call,
// which is what makes per-service fan-out safe without locks.
type Detector struct {
	interval      time.Duration
	allowedMisses int
}

// NewDetector builds a detector from a validated configuration.
func NewDetector(cfg config.Config) *Detector {
	return &Detector{
		interval:      cfg.Interval(),
		allowedMisses: cfg.AllowedMisses,
	}
}

// DetectMisses walks a sorted timeline and reports every instant at
// which the consecutive-miss count reached the threshold.
//
// The rules it implements:
//   - No synthetic beats are invented before the first observation; an
//     empty or single-event timeline produces no alerts.
//   - Between two observed heartbeats, each whole expected-interval
//     slot with no heartbeat counts as one miss. An exactly on-time
//     beat contributes zero misses.
//   - When the running count reaches the threshold, one alert fires at
//     the instant of the crossing slot, the count resets, and any
//     further misses in the same gap are discarded: an unbroken streak
//     produces at most one alert.
//   - A heartbeat moves the gap-reference point but does not clear the
//     miss count; only an alert does.
//   - The silence after the final heartbeat is never judged. Without a
//     later observation there is nothing to bound it, so the batch
//     ends the streak unresolved. This is a boundary policy, not an
//     omission.
func (d *Detector) DetectMisses(service string, timeline []model.Event) []model.Alert {
	if len(timeline) == 0 {
		return nil
	}

	var alerts []model.Alert
	lastSeen := timeline[0].Timestamp
	consecutiveMisses := 0

	for _, ev := range timeline[1:] {
		// Whole expected intervals elapsed since the last confirmed
		// beat, minus the slot this beat itself fills. Negative only
		// for sub-interval arrivals, which contribute nothing.
		gaps := int(ev.Timestamp.Sub(lastSeen)/d.interval) - 1

		for slot := 1; slot <= gaps; slot++ {
			consecutiveMisses++
			if consecutiveMisses >= d.allowedMisses {
				alerts = append(alerts, model.Alert{
					ID:      uuid.NewString(),
					Service: service,
					AlertAt: lastSeen.Add(time.Duration(slot) * d.interval),
				})
				consecutiveMisses = 0
				break
			}
		}

		lastSeen = ev.Timestamp
	}

	return alerts
}
