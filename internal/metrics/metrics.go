// Package metrics provides Prometheus metrics for the house price prediction service.
// It defines the model, prediction and HTTP metrics exposed on the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors of the service.
type Metrics struct {
	// Model metrics
	ModelLoaded prometheus.Gauge // 1 when a model artifact was loaded at startup
	ModelAge    prometheus.Gauge // Age of the loaded artifact in seconds

	// Prediction metrics
	PredictionsTotal   prometheus.Counter   // Successful predictions
	PredictionFailures prometheus.Counter   // Predictions that returned an error
	PredictionLatency  prometheus.Histogram // Model call latency in seconds
	PredictedPrice     prometheus.Histogram // Distribution of predicted prices
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics registered on the given registerer.
// Tests pass a fresh prometheus.NewRegistry() to stay isolated.
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		ModelLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "houseprice_model_loaded",
			Help: "Whether a model artifact was loaded at startup (1) or not (0)",
		}),
		ModelAge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "houseprice_model_age_seconds",
			Help: "Age of the loaded model artifact in seconds",
		}),
		PredictionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "houseprice_predictions_total",
			Help: "Total number of successful predictions",
		}),
		PredictionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "houseprice_prediction_failures_total",
			Help: "Total number of failed predictions",
		}),
		PredictionLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "houseprice_prediction_latency_seconds",
			Help:    "Model prediction latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		PredictedPrice: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "houseprice_predicted_price",
			Help:    "Distribution of predicted prices",
			Buckets: prometheus.ExponentialBuckets(50000, 2, 8),
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "houseprice_prediction_cache_hits_total",
			Help: "Total number of predictions served from the cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "houseprice_prediction_cache_misses_total",
			Help: "Total number of predictions computed by the model",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "houseprice_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "houseprice_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}
