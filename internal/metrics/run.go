// Package metrics records per-run statistics for the node_exporter textfile
// collector. A single-shot batch job has nothing to scrape, so the registry
// is flushed to a .prom file at the end of the run instead.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Set label values for the entries gauge.
const (
	SetGSN          = "gsn"
	SetAD           = "ad"
	SetMissingInAD  = "missing_in_ad"
	SetMissingInGSN = "missing_in_gsn"
)

// Run owns a private registry of per-run gauges. No init() registration.
type Run struct {
	registry *prometheus.Registry

	timestamp prometheus.Gauge
	duration  prometheus.Gauge
	entries   *prometheus.GaugeVec
	degraded  prometheus.Gauge
}

// NewRun creates and registers the run metrics.
func NewRun() *Run {
	m := &Run{
		registry: prometheus.NewRegistry(),
		timestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "adrecon",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "adrecon",
			Name:      "last_run_duration_seconds",
			Help:      "Wall-clock duration of the last run",
		}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "adrecon",
			Name:      "entries",
			Help:      "Entry counts per name set in the last run",
		}, []string{"set"}),
		degraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "adrecon",
			Name:      "run_degraded",
			Help:      "1 when the directory query failed and an empty result was substituted",
		}),
	}
	m.registry.MustRegister(m.timestamp, m.duration, m.entries, m.degraded)
	return m
}

// ObserveRun records the overall run outcome.
func (m *Run) ObserveRun(elapsed time.Duration, degraded bool) {
	m.timestamp.SetToCurrentTime()
	m.duration.Set(elapsed.Seconds())
	if degraded {
		m.degraded.Set(1)
	} else {
		m.degraded.Set(0)
	}
}

// SetEntries records the size of one name set (see the Set* constants).
func (m *Run) SetEntries(set string, n int) {
	m.entries.WithLabelValues(set).Set(float64(n))
}

// WriteTextfile renders the registry in the text exposition format and
// renames it into place, as the textfile collector requires.
func (m *Run) WriteTextfile(path string) error {
	mfs, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			tmp.Close()
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
