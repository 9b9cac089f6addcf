package model

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// MockMetrics implements Metrics for testing
type MockMetrics struct {
	mu          sync.Mutex
	predictions int
	failures    int
	latencySum  float64
	prices      []float64
	loaded      bool
	modelAge    float64
	cacheHits   int
	cacheMisses int
}

func (m *MockMetrics) PredictionsInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictions++
}

func (m *MockMetrics) PredictionFailuresInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func (m *MockMetrics) PredictionLatencyObserve(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latencySum += v
}

func (m *MockMetrics) PredictedPriceObserve(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices = append(m.prices, v)
}

func (m *MockMetrics) ModelLoadedSet(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = v
}

func (m *MockMetrics) ModelAgeSet(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modelAge = v
}

func (m *MockMetrics) CacheHitInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *MockMetrics) CacheMissInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

// countingRegressor returns a fixed value and counts calls.
type countingRegressor struct {
	value float64
	err   error
	calls atomic.Int64
}

func (r *countingRegressor) Predict(features []float64) (float64, error) {
	r.calls.Add(1)
	if r.err != nil {
		return 0, r.err
	}
	return r.value, nil
}

var errBoom = errors.New("boom")

func sampleArtifact() *Artifact {
	return &Artifact{
		Kind:         KindLinearRegression,
		Features:     []string{"surface", "pieces"},
		Intercept:    1000,
		Coefficients: []float64{3000, -500},
		TrainedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		TrainRows:    12,
		TestRows:     4,
		TrainScore:   1,
		TestScore:    1,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
