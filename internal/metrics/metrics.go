// Package metrics tracks the counters and a query-latency histogram
// mentioned in passing by vjache-cie's cmd/cie/index.go (--metrics-addr
// flag, prometheus/client_golang, promhttp.Handler) but, unlike that
// command's metrics endpoint, codegraph has no long-running server to
// scrape by default — it's a single CLI invocation per command. So the
// registry here is private rather than the package-global
// prometheus.DefaultRegisterer, and Snapshot reads the current values
// back out via the registry's own Gather rather than over HTTP, for
// `codegraph stats --json` to fold into its output. No command serves
// the registry over /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Registry is the process-wide collector set. It is never registered
// against prometheus.DefaultRegisterer, so embedding codegraph into a
// larger process never collides with that process's own metrics.
type Registry struct {
	reg *prometheus.Registry

	FilesIndexed  prometheus.Counter
	ParseErrors   prometheus.Counter
	EdgesResolved prometheus.Counter
	QueryLatency  *prometheus.HistogramVec
}

// New builds a fresh Registry with all collectors registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	m := &Registry{
		reg: reg,
		FilesIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "codegraph",
			Name:      "files_indexed_total",
			Help:      "Files successfully parsed and written to the store.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "codegraph",
			Name:      "parse_errors_total",
			Help:      "Files skipped because their adapter failed to parse them.",
		}),
		EdgesResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "codegraph",
			Name:      "edges_resolved_total",
			Help:      "Unresolved edges linked to a target symbol by the resolver.",
		}),
		QueryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "codegraph",
			Name:      "query_latency_seconds",
			Help:      "Wall-clock latency of a query-engine operation, by operation name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.FilesIndexed, m.ParseErrors, m.EdgesResolved, m.QueryLatency)
	return m
}

// Registerer and Gatherer expose the private registry to a caller that
// wants to register or read collectors without the global one.
func (m *Registry) Registerer() prometheus.Registerer { return m.reg }
func (m *Registry) Gatherer() prometheus.Gatherer      { return m.reg }

// Snapshot is a flattened, JSON-friendly read of the current counter
// values, the shape `stats --json` embeds under "metrics".
type Snapshot struct {
	FilesIndexedTotal  float64            `json:"files_indexed_total"`
	ParseErrorsTotal   float64            `json:"parse_errors_total"`
	EdgesResolvedTotal float64            `json:"edges_resolved_total"`
	QueryLatencyCount  map[string]uint64  `json:"query_latency_count,omitempty"`
	QueryLatencySumSec map[string]float64 `json:"query_latency_sum_seconds,omitempty"`
}

// Snapshot gathers the registry and reduces it to plain numbers. Gather
// errors are swallowed to a zero-value snapshot — metrics reporting
// never fails a command that would otherwise have succeeded.
func (m *Registry) Snapshot() Snapshot {
	var snap Snapshot
	snap.QueryLatencyCount = map[string]uint64{}
	snap.QueryLatencySumSec = map[string]float64{}

	families, err := m.reg.Gather()
	if err != nil {
		return snap
	}
	for _, fam := range families {
		switch fam.GetName() {
		case "codegraph_files_indexed_total":
			snap.FilesIndexedTotal = counterValue(fam)
		case "codegraph_parse_errors_total":
			snap.ParseErrorsTotal = counterValue(fam)
		case "codegraph_edges_resolved_total":
			snap.EdgesResolvedTotal = counterValue(fam)
		case "codegraph_query_latency_seconds":
			for _, metric := range fam.GetMetric() {
				op := labelValue(metric, "operation")
				h := metric.GetHistogram()
				snap.QueryLatencyCount[op] = h.GetSampleCount()
				snap.QueryLatencySumSec[op] = h.GetSampleSum()
			}
		}
	}
	return snap
}

func counterValue(fam *dto.MetricFamily) float64 {
	for _, metric := range fam.GetMetric() {
		return metric.GetCounter().GetValue()
	}
	return 0
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
