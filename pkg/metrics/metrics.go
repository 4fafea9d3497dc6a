// Package metrics records download progress as Prometheus metrics. The registry is
// written to a file in the format of the node exporter textfile collector.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/glorpus-work/tilegrab/pkg/download"
	"github.com/glorpus-work/tilegrab/pkg/errutils"
	"github.com/glorpus-work/tilegrab/pkg/fsutil"
)

const namespace = "tilegrab"

// Tile outcomes used as the "outcome" label.
const (
	OutcomeStored  = "stored"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Recorder turns orchestrator events into metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	planned  prometheus.Gauge
	tiles    *prometheus.CounterVec
	duration prometheus.Histogram
	lastRun  prometheus.Gauge

	mu      sync.Mutex
	started time.Time
	now     func() time.Time
}

// NewRecorder creates a Recorder with all series registered and zeroed.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Recorder{
		registry: reg,
		planned: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tiles_planned",
			Help:      "Number of tiles in the current run.",
		}),
		tiles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiles_total",
			Help:      "Tiles processed by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tile_fetch_duration_seconds",
			Help:      "Time from request start until the tile was stored or given up.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time at which the last run finished.",
		}),
		now: time.Now,
	}
	for _, outcome := range []string{OutcomeStored, OutcomeFailed, OutcomeSkipped} {
		r.tiles.WithLabelValues(outcome)
	}
	return r
}

// Registry exposes the underlying registry, e.g. for tests or a push gateway.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Hooks returns orchestrator hooks feeding this recorder.
func (r *Recorder) Hooks() download.Hooks {
	return download.Hooks{OnEvent: r.OnEvent}
}

// OnEvent records one orchestrator event.
func (r *Recorder) OnEvent(e download.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.planned.Set(float64(e.Total))
	switch e.Phase {
	case "fetching":
		r.started = r.now()
	case "stored":
		r.observe()
		r.tiles.WithLabelValues(OutcomeStored).Inc()
	case "failed":
		r.observe()
		r.tiles.WithLabelValues(OutcomeFailed).Inc()
	case "skipped":
		r.tiles.WithLabelValues(OutcomeSkipped).Inc()
	case "done":
		r.lastRun.Set(float64(r.now().Unix()))
	}
}

func (r *Recorder) observe() {
	if r.started.IsZero() {
		return
	}
	r.duration.Observe(r.now().Sub(r.started).Seconds())
	r.started = time.Time{}
}

// WriteTextfile writes all metrics in the text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return errutils.ErrInvalidPath
	}
	if err := fsutil.EnsureFileDir(path); err != nil {
		return errutils.Wrapf(err, "failed to create metrics directory for %s", path)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errutils.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
