package store

import (
	"container/ring"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartwatch/heartwatch/internal/model"
)

// MemoryStore holds the alerts of recent runs behind the HTTP API. A
// ring buffer bounds memory, and an LRU cache suppresses re-insertion
// of the same alert when a batch is replayed.
type MemoryStore struct {
	mu        sync.RWMutex
	alerts    *ring.Ring
	dedupe    *lru.Cache[string, bool]
	maxAlerts int
}

// NewMemoryStore creates a store that retains at most maxAlerts alerts
// and remembers up to dedupeCap dedupe keys.
func NewMemoryStore(maxAlerts, dedupeCap int) *MemoryStore {
	dedupeCache, _ := lru.New[string, bool](dedupeCap)

	return &MemoryStore{
		alerts:    ring.New(maxAlerts),
		dedupe:    dedupeCache,
		maxAlerts: maxAlerts,
	}
}

// Add inserts an alert unless an identical one (same service, same
// instant) is already remembered. It reports whether the alert was
// stored.
func (s *MemoryStore) Add(alert *model.Alert) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dedupeKey(alert)
	if _, seen := s.dedupe.Get(key); seen {
		return false
	}
	s.dedupe.Add(key, true)

	s.alerts.Value = alert
	s.alerts = s.alerts.Next()
	return true
}

// AddBatch inserts a run's alerts and returns how many were new.
func (s *MemoryStore) AddBatch(alerts []model.Alert) int {
	added := 0
	for i := range alerts {
		if s.Add(&alerts[i]) {
			added++
		}
	}
	return added
}

// Alerts returns the stored alerts, oldest first.
func (s *MemoryStore) Alerts() []*model.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var alerts []*model.Alert
	s.alerts.Do(func(value any) {
		if alert, ok := value.(*model.Alert); ok {
			alerts = append(alerts, alert)
		}
	})
	return alerts
}

// AlertsByService returns the stored alerts for one service.
func (s *MemoryStore) AlertsByService(service string) []*model.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var alerts []*model.Alert
	s.alerts.Do(func(value any) {
		if alert, ok := value.(*model.Alert); ok && alert.Service == service {
			alerts = append(alerts, alert)
		}
	})
	return alerts
}

// Clear drops all stored alerts and the dedupe history.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < s.alerts.Len(); i++ {
		s.alerts.Value = nil
		s.alerts = s.alerts.Next()
	}
	s.dedupe.Purge()
}

// Stats returns store occupancy counters.
func (s *MemoryStore) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	s.alerts.Do(func(value any) {
		if value != nil {
			count++
		}
	})

	return map[string]any{
		"alerts":      count,
		"max_alerts":  s.maxAlerts,
		"dedupe_size": s.dedupe.Len(),
	}
}

func dedupeKey(alert *model.Alert) string {
	return alert.Service + ":" + alert.AlertAt.UTC().Format(time.RFC3339)
}
