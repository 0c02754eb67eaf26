// Package metrics collects and exposes Prometheus metrics for the planner.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the narrow interface the stores and middleware record
// against, so tests can pass Noop instead of a registry-backed collector.
type Recorder interface {
	DocumentRead(key string)
	DocumentWrite(key string)
	HTTPStatus(code int)
}

// Noop discards every observation.
type Noop struct{}

func (Noop) DocumentRead(string)  {}
func (Noop) DocumentWrite(string) {}
func (Noop) HTTPStatus(int)       {}

// Collector records document-store traffic and HTTP response statuses.
type Collector struct {
	docReads   prometheus.Counter
	docWrites  prometheus.Counter
	httpStatus *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		docReads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "duoplan_document_reads_total",
			Help: "Total document store reads.",
		}),
		docWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "duoplan_document_writes_total",
			Help: "Total document store writes.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "duoplan_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(c.docReads, c.docWrites, c.httpStatus)
	return c
}

func (c *Collector) DocumentRead(key string)  { c.docReads.Inc() }
func (c *Collector) DocumentWrite(key string) { c.docWrites.Inc() }

func (c *Collector) HTTPStatus(code int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(code)).Inc()
}

// Handler returns the /metrics endpoint for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
