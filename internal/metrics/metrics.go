// Package metrics defines Prometheus metrics for the pipeline, covering
// classification, delivery outcomes, and rejected service-mode documents.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecordsClassified = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trailpipe_records_classified_total",
		Help: "Total number of CloudTrail records classified, by category and severity",
	}, []string{"category", "severity"})
	Deliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trailpipe_deliveries_total",
		Help: "Total number of delivery attempts, by sink and result (ok, rejected, error)",
	}, []string{"sink", "result"})
	DocumentsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trailpipe_documents_rejected_total",
		Help: "Total number of malformed CloudTrail documents rejected by the service endpoint",
	})
)

func init() {
	prometheus.MustRegister(RecordsClassified)
	prometheus.MustRegister(Deliveries)
	prometheus.MustRegister(DocumentsRejected)
}

// Handler returns an http.Handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
