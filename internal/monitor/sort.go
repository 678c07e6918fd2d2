package monitor

import (
	"sort"

	"github.com/heartwatch/heartwatch/internal/model"
)

// SortTimeline returns a fresh copy of events ordered ascending by
// timestamp. The sort is stable, so simultaneous heartbeats keep their
// input order. The input slice is never mutated.
func SortTimeline(events []model.Event) []model.Event {
	timeline := make([]model.Event, len(events))
	copy(timeline, events)
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.Before(timeline[j].Timestamp)
	})
	return timeline
}
