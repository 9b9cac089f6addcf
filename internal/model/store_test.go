package model

import (
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingArtifact(t *testing.T) {
	metrics := &MockMetrics{loaded: true}
	store, err := Load(filepath.Join(t.TempDir(), "house_price_model.json"), WithMetrics(metrics))

	require.NoError(t, err, "a missing artifact must not abort startup")
	require.NotNil(t, store)
	assert.False(t, store.Ready())
	assert.False(t, store.Info().Loaded)
	assert.False(t, metrics.loaded)

	_, err = store.Predict(100, 4)
	assert.True(t, errors.Is(err, ErrModelNotLoaded))
}

func TestLoad_CorruptArtifact(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "\x80\x04\x95 pickled bytes"},
		{"empty file", ""},
		{"unknown kind", `{"kind":"svm","features":["surface","pieces"],"coefficients":[1,2]}`},
		{"wrong feature order", `{"kind":"linear_regression","features":["pieces","surface"],"coefficients":[1,2]}`},
		{"missing coefficients", `{"kind":"linear_regression","features":["surface","pieces"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "model.json", tt.content)

			store, err := Load(path)
			assert.Error(t, err)
			assert.Nil(t, store)
		})
	}
}

func TestLoad_ValidArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, WriteArtifact(path, sampleArtifact()))

	metrics := &MockMetrics{}
	store, err := Load(path, WithMetrics(metrics))
	require.NoError(t, err)

	assert.True(t, store.Ready())
	assert.True(t, metrics.loaded)
	assert.GreaterOrEqual(t, metrics.modelAge, 0.0)

	info := store.Info()
	assert.Equal(t, path, info.Path)
	assert.Equal(t, KindLinearRegression, info.Kind)
	assert.False(t, info.ModifiedAt.IsZero())

	price, err := store.Predict(100, 4)
	require.NoError(t, err)
	assert.Equal(t, 1000+300000-2000.0, price)
	assert.Equal(t, 1, metrics.predictions)
	assert.Equal(t, []float64{price}, metrics.prices)
}

func TestStore_NilSafety(t *testing.T) {
	var store *Store

	assert.False(t, store.Ready())
	assert.Equal(t, Info{}, store.Info())

	_, err := store.Predict(1, 1)
	assert.True(t, errors.Is(err, ErrModelNotLoaded))
}

func TestNewStore_NilRegressor(t *testing.T) {
	store := NewStore(nil)
	assert.False(t, store.Ready())

	_, err := store.Predict(100, 4)
	assert.ErrorIs(t, err, ErrModelNotLoaded)
}

func TestStore_PredictError(t *testing.T) {
	metrics := &MockMetrics{}
	store := NewStore(&countingRegressor{err: errBoom}, WithMetrics(metrics))

	_, err := store.Predict(100, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, metrics.failures)
	assert.Equal(t, 0, metrics.predictions)
}

func TestStore_NonFiniteOutput(t *testing.T) {
	metrics := &MockMetrics{}
	store := NewStore(&countingRegressor{value: math.Inf(1)}, WithMetrics(metrics))

	_, err := store.Predict(100, 4)
	assert.Error(t, err)
	assert.Equal(t, 1, metrics.failures)
}

func TestStore_Cache(t *testing.T) {
	metrics := &MockMetrics{}
	regressor := &countingRegressor{value: 123456.789}
	store := NewStore(regressor, WithMetrics(metrics), WithCache(8))

	for i := 0; i < 5; i++ {
		price, err := store.Predict(100, 4)
		require.NoError(t, err)
		assert.Equal(t, 123456.789, price)
	}

	assert.Equal(t, int64(1), regressor.calls.Load(), "repeat requests should be served from cache")
	assert.Equal(t, 4, metrics.cacheHits)
	assert.Equal(t, 1, metrics.cacheMisses)
	assert.Equal(t, 5, metrics.predictions)

	_, err := store.Predict(120, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2), regressor.calls.Load())
}

func TestStore_CacheDisabled(t *testing.T) {
	regressor := &countingRegressor{value: 1}
	store := NewStore(regressor, WithCache(0))

	for i := 0; i < 3; i++ {
		_, err := store.Predict(100, 4)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), regressor.calls.Load())
}

func TestStore_CacheDoesNotStoreFailures(t *testing.T) {
	regressor := &countingRegressor{err: errBoom}
	store := NewStore(regressor, WithCache(8))

	for i := 0; i < 2; i++ {
		_, err := store.Predict(100, 4)
		assert.Error(t, err)
	}
	assert.Equal(t, int64(2), regressor.calls.Load())
}

func TestStore_Concurrency(t *testing.T) {
	metrics := &MockMetrics{}
	store := NewStore(&LinearRegression{Intercept: 0, Coefficients: []float64{3000, 0}},
		WithMetrics(metrics), WithCache(16))

	numGoroutines := 10
	numCalls := 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numCalls; j++ {
				surface := float64(50 + (id+j)%20)
				price, err := store.Predict(surface, 3)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if price != surface*3000 {
					t.Errorf("expected %f, got %f", surface*3000, price)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, numGoroutines*numCalls, metrics.predictions)
}
