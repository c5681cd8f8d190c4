package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics defines the counters and histograms recorded by the core
type Metrics interface {
	IncProbes(result string)
	ObserveScan(mode string, durationSeconds float64)
	IncInventoryChecks(status string)
	IncJobsCompleted(kind, status string)
	ObserveJobDuration(status string, durationSeconds float64)
}

// Noop implements Metrics without emitting anything
type Noop struct{}

func (Noop) IncProbes(string)                   {}
func (Noop) ObserveScan(string, float64)        {}
func (Noop) IncInventoryChecks(string)          {}
func (Noop) IncJobsCompleted(string, string)    {}
func (Noop) ObserveJobDuration(string, float64) {}

// Prom implements Metrics backed by Prometheus collectors
type Prom struct {
	probes      *prometheus.CounterVec
	scans       *prometheus.HistogramVec
	checks      *prometheus.CounterVec
	jobs        *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
	once        sync.Once
}

// NewProm returns a Prom registered with the default registerer
func NewProm(namespace string) *Prom {
	p := &Prom{
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discovery_probes_total",
			Help:      "Discovery probes by result",
		}, []string{"result"}),
		scans: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "discovery_scan_duration_seconds",
			Help:      "Network scan duration by mode",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_checks_total",
			Help:      "Inventory checks by resulting status",
		}, []string{"status"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "install_jobs_total",
			Help:      "Install jobs finished by artifact kind and status",
		}, []string{"kind", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "install_job_duration_seconds",
			Help:      "Install job duration by status",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"status"}),
	}
	p.register()
	return p
}

func (p *Prom) register() {
	p.once.Do(func() {
		prometheus.MustRegister(p.probes, p.scans, p.checks, p.jobs, p.jobDuration)
	})
}

func (p *Prom) IncProbes(result string) {
	p.probes.WithLabelValues(result).Inc()
}

func (p *Prom) ObserveScan(mode string, durationSeconds float64) {
	p.scans.WithLabelValues(mode).Observe(durationSeconds)
}

func (p *Prom) IncInventoryChecks(status string) {
	p.checks.WithLabelValues(status).Inc()
}

func (p *Prom) IncJobsCompleted(kind, status string) {
	p.jobs.WithLabelValues(kind, status).Inc()
}

func (p *Prom) ObserveJobDuration(status string, durationSeconds float64) {
	p.jobDuration.WithLabelValues(status).Observe(durationSeconds)
}

// Handler returns an HTTP handler for /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
