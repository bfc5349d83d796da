package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics exposed by the local server.
type Metrics struct {
	Requests      *prometheus.CounterVec
	Builds        *prometheus.CounterVec
	BuildDuration prometheus.Gauge
	BuildPages    prometheus.Gauge
	BrokenLinks   prometheus.Gauge
}

// NewMetrics creates and registers all metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rccdocs_http_requests_total",
			Help: "Total number of HTTP requests served, by status code",
		}, []string{"code"}),
		Builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rccdocs_builds_total",
			Help: "Total number of site builds, by result",
		}, []string{"result"}),
		BuildDuration: f.NewGauge(prometheus.GaugeOpts{
			Name: "rccdocs_last_build_duration_seconds",
			Help: "Duration of the last successful build",
		}),
		BuildPages: f.NewGauge(prometheus.GaugeOpts{
			Name: "rccdocs_last_build_pages",
			Help: "Number of pages generated by the last successful build",
		}),
		BrokenLinks: f.NewGauge(prometheus.GaugeOpts{
			Name: "rccdocs_last_build_broken_links",
			Help: "Number of broken internal links found by the last build",
		}),
	}
}

// ObserveRequest counts a served request.
func (m *Metrics) ObserveRequest(status int) {
	m.Requests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// ObserveBuild records the outcome of a build.
func (m *Metrics) ObserveBuild(pages, brokenLinks int, duration time.Duration, err error) {
	if err != nil {
		m.Builds.WithLabelValues("failure").Inc()
		return
	}
	m.Builds.WithLabelValues("success").Inc()
	m.BuildDuration.Set(duration.Seconds())
	m.BuildPages.Set(float64(pages))
	m.BrokenLinks.Set(float64(brokenLinks))
}
