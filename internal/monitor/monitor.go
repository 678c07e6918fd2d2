package monitor

import (
	"log/slog"
	"sync"

	"github.com/heartwatch/heartwatch/internal/config"
	"github.com/heartwatch/heartwatch/internal/metrics"
	"github.com/heartwatch/heartwatch/internal/model"
)

// Monitor runs the full detection pipeline over one closed batch of
// raw records: validation, per-service grouping, chronological
// sorting, miss detection, and collection into one canonical alert
// list.
type Monitor struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a monitor for the given configuration. The configuration
// is validated here, before any event is processed; metrics may be nil.
func New(cfg config.Config, m *metrics.Metrics, logger *slog.Logger) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{cfg: cfg, logger: logger, metrics: m}, nil
}

// Result is the outcome of one batch run.
type Result struct {
	Alerts   []model.Alert
	Valid    int
	Services int
	Dropped  DropStats
}

// Run processes one batch of raw decoded records and returns every
// alert the batch justifies. Each service's timeline is detected on
// its own goroutine; detection state is local to each timeline walk,
// so the fan-out needs no locking, only the WaitGroup fan-in. The
// result is identical to processing services sequentially.
func (m *Monitor) Run(records []any) Result {
	events, dropped := Validate(records)
	buckets := GroupByService(events)

	m.logger.Debug("Batch validated",
		"records", len(records),
		"valid_events", len(events),
		"dropped_events", dropped.Total(),
		"services", len(buckets))

	if m.metrics != nil {
		m.metrics.AddValidEvents(len(events))
		for reason, n := range dropped.ByReason {
			m.metrics.AddDroppedEvents(string(reason), n)
		}
		m.metrics.SetServices(len(buckets))
	}

	detector := NewDetector(m.cfg)

	type serviceRun struct {
		service string
		events  []model.Event
	}
	runs := make([]serviceRun, 0, len(buckets))
	for service, evs := range buckets {
		runs = append(runs, serviceRun{service: service, events: evs})
	}

	perService := make([][]model.Alert, len(runs))
	var wg sync.WaitGroup
	for i, run := range runs {
		wg.Add(1)
		go func(i int, run serviceRun) {
			defer wg.Done()
			perService[i] = detector.DetectMisses(run.service, SortTimeline(run.events))
		}(i, run)
	}
	wg.Wait()

	alerts := Collect(perService)

	if m.metrics != nil {
		m.metrics.AddAlerts(len(alerts))
	}

	return Result{
		Alerts:   alerts,
		Valid:    len(events),
		Services: len(buckets),
		Dropped:  dropped,
	}
}
