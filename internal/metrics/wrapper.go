package metrics

import "strconv"

// Wrapper adapts Metrics to the narrow interfaces consumed by the model store
// and the HTTP server, so neither of them imports Prometheus.
type Wrapper struct {
	m *Metrics
}

func NewWrapper(m *Metrics) *Wrapper {
	return &Wrapper{m: m}
}

func (w *Wrapper) PredictionsInc() {
	w.m.PredictionsTotal.Inc()
}

func (w *Wrapper) PredictionFailuresInc() {
	w.m.PredictionFailures.Inc()
}

func (w *Wrapper) PredictionLatencyObserve(seconds float64) {
	w.m.PredictionLatency.Observe(seconds)
}

func (w *Wrapper) PredictedPriceObserve(price float64) {
	w.m.PredictedPrice.Observe(price)
}

func (w *Wrapper) ModelLoadedSet(loaded bool) {
	if loaded {
		w.m.ModelLoaded.Set(1)
		return
	}
	w.m.ModelLoaded.Set(0)
}

func (w *Wrapper) ModelAgeSet(seconds float64) {
	w.m.ModelAge.Set(seconds)
}

func (w *Wrapper) CacheHitInc() {
	w.m.CacheHits.Inc()
}

func (w *Wrapper) CacheMissInc() {
	w.m.CacheMisses.Inc()
}

// RequestObserve records one finished HTTP request.
func (w *Wrapper) RequestObserve(route, method string, status int, seconds float64) {
	w.m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	w.m.HTTPDuration.WithLabelValues(route, method).Observe(seconds)
}
