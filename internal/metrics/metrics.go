// Package metrics exposes marketplace counters in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so tests can create as many as they need.
type Recorder struct {
	registry        *prometheus.Registry
	offersCreated   prometheus.Counter
	requestsCreated prometheus.Counter
	settlements     *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		offersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "harvestx",
			Name:      "offers_created_total",
			Help:      "Offers created by farmers.",
		}),
		requestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "harvestx",
			Name:      "requests_created_total",
			Help:      "Investment requests submitted by investors.",
		}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harvestx",
			Name:      "settlements_total",
			Help:      "Responses to investment requests by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(
		r.offersCreated,
		r.requestsCreated,
		r.settlements,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) OfferCreated() { r.offersCreated.Inc() }

func (r *Recorder) RequestCreated() { r.requestsCreated.Inc() }

func (r *Recorder) Settlement(outcome string) {
	r.settlements.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
