package monitor

import (
	"github.com/heartwatch/heartwatch/internal/model"
)

// GroupByService partitions events into per-service buckets, keyed by
// the exact service string (case-sensitive). Each event lands in
// exactly one bucket; bucket iteration order carries no meaning.
func GroupByService(events []model.Event) map[string][]model.Event {
	buckets := make(map[string][]model.Event)
	for _, ev := range events {
		buckets[ev.Service] = append(buckets[ev.Service], ev)
	}
	return buckets
}
