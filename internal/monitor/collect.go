package monitor

import (
	"sort"

	"github.com/heartwatch/heartwatch/internal/model"
)

// Collect merges per-service alert slices into one list with a
// canonical order: AlertAt ascending, ties broken by service name.
// The canonical order makes output reproducible regardless of map
// iteration or goroutine scheduling; within one service it coincides
// with chronological order.
func Collect(perService [][]model.Alert) []model.Alert {
	alerts := make([]model.Alert, 0)
	for _, batch := range perService {
		alerts = append(alerts, batch...)
	}

	sort.Slice(alerts, func(i, j int) bool {
		if !alerts[i].AlertAt.Equal(alerts[j].AlertAt) {
			return alerts[i].AlertAt.Before(alerts[j].AlertAt)
		}
		return alerts[i].Service < alerts[j].Service
	})

	return alerts
}
