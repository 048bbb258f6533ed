// Package metrics records resolution counters and timings with the
// Prometheus client, on a registry owned by the caller so that every App
// instance keeps its own numbers.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Asset kinds used as the "kind" label.
const (
	KindAssembly = "assembly"
	KindNative   = "native"
	KindScript   = "script"
)

// Recorder holds the resolution metrics. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry

	librariesResolved prometheus.Counter
	assetsResolved    *prometheus.CounterVec
	assetsNotFound    *prometheus.CounterVec
	placeholders      prometheus.Counter
	noCompatibleGroup *prometheus.CounterVec
	duration          prometheus.Histogram
}

// New creates a Recorder registered on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		librariesResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rtdeps_libraries_resolved_total",
			Help: "Number of library nodes resolved into runtime dependency records.",
		}),
		assetsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtdeps_assets_resolved_total",
			Help: "Number of asset files resolved to an absolute path, by kind.",
		}, []string{"kind"}),
		assetsNotFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtdeps_assets_not_found_total",
			Help: "Number of declared asset files missing from every package folder, by kind.",
		}, []string{"kind"}),
		placeholders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rtdeps_placeholder_assets_skipped_total",
			Help: "Number of placeholder asset entries skipped.",
		}),
		noCompatibleGroup: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rtdeps_no_compatible_group_total",
			Help: "Number of libraries with no asset group applying to the current runtime, by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rtdeps_resolution_duration_seconds",
			Help:    "Time taken to resolve a whole dependency graph.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(
		r.librariesResolved,
		r.assetsResolved,
		r.assetsNotFound,
		r.placeholders,
		r.noCompatibleGroup,
		r.duration,
	)
	return r
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// LibraryResolved counts one library turned into a dependency record.
func (r *Recorder) LibraryResolved() {
	if r != nil {
		r.librariesResolved.Inc()
	}
}

// AssetResolved counts one asset of kind found under a package folder.
func (r *Recorder) AssetResolved(kind string) {
	if r != nil {
		r.assetsResolved.WithLabelValues(kind).Inc()
	}
}

// AssetNotFound counts one asset of kind missing from every package folder.
func (r *Recorder) AssetNotFound(kind string) {
	if r != nil {
		r.assetsNotFound.WithLabelValues(kind).Inc()
	}
}

// PlaceholderSkipped counts one placeholder entry left unresolved.
func (r *Recorder) PlaceholderSkipped() {
	if r != nil {
		r.placeholders.Inc()
	}
}

// NoCompatibleGroup counts one library whose groups of kind all target
// other runtimes.
func (r *Recorder) NoCompatibleGroup(kind string) {
	if r != nil {
		r.noCompatibleGroup.WithLabelValues(kind).Inc()
	}
}

// ObserveResolution records the duration of one graph resolution.
func (r *Recorder) ObserveResolution(d time.Duration) {
	if r != nil {
		r.duration.Observe(d.Seconds())
	}
}

// WriteTextfile writes all metrics in the Prometheus text format to path, in
// the layout expected by node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
