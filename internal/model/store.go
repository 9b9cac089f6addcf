package model

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

var ErrModelNotLoaded = errors.New("model not loaded")

// Metrics defines the metrics hooks the store reports to.
type Metrics interface {
	PredictionsInc()
	PredictionFailuresInc()
	PredictionLatencyObserve(float64)
	PredictedPriceObserve(float64)
	ModelLoadedSet(bool)
	ModelAgeSet(float64)
	CacheHitInc()
	CacheMissInc()
}

// Info describes the model held by a Store.
type Info struct {
	Path       string    `json:"path,omitempty"`
	Loaded     bool      `json:"loaded"`
	Kind       string    `json:"kind,omitempty"`
	TrainedAt  time.Time `json:"trained_at,omitempty"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
	TrainScore float64   `json:"train_score,omitempty"`
	TestScore  float64   `json:"test_score,omitempty"`
}

type featureKey [2]float64

// Store holds the model loaded at startup, or nothing when the artifact was
// missing.
type Store struct {
	regressor Regressor
	info      Info
	metrics   Metrics
	cache     *lru.Cache[featureKey, float64]
}

type Option func(*Store)

func WithMetrics(m Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithCache keeps the last size predictions in memory. A size of 0 disables it.
func WithCache(size int) Option {
	return func(s *Store) {
		if size <= 0 {
			return
		}
		c, err := lru.New[featureKey, float64](size)
		if err != nil {
			log.Warn().Err(err).Int("cache_size", size).Msg("prediction cache disabled")
			return
		}
		s.cache = c
	}
}

// Load reads the artifact at path. A missing file yields an unloaded store and
// no error; any other failure is returned so the caller can abort startup.
func Load(path string, opts ...Option) (*Store, error) {
	artifact, err := ReadArtifact(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Error().Str("model_path", path).Msg("model artifact not found, predictions disabled")
			return newStore(nil, Info{Path: path}, opts), nil
		}
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}

	regressor, err := artifact.Regressor()
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}

	info := Info{
		Path:       path,
		Loaded:     true,
		Kind:       artifact.Kind,
		TrainedAt:  artifact.TrainedAt,
		TrainScore: artifact.TrainScore,
		TestScore:  artifact.TestScore,
	}
	if stat, err := os.Stat(path); err == nil {
		info.ModifiedAt = stat.ModTime()
	}

	log.Info().
		Str("model_path", path).
		Str("kind", artifact.Kind).
		Float64("intercept", artifact.Intercept).
		Floats64("coefficients", artifact.Coefficients).
		Float64("test_score", artifact.TestScore).
		Msg("model loaded")

	return newStore(regressor, info, opts), nil
}

// NewStore wraps an already built regressor. A nil regressor gives an
// unloaded store.
func NewStore(r Regressor, opts ...Option) *Store {
	return newStore(r, Info{Loaded: r != nil}, opts)
}

func newStore(r Regressor, info Info, opts []Option) *Store {
	s := &Store{regressor: r, info: info}
	for _, opt := range opts {
		opt(s)
	}

	if s.metrics != nil {
		s.metrics.ModelLoadedSet(s.Ready())
		if !info.ModifiedAt.IsZero() {
			s.metrics.ModelAgeSet(time.Since(info.ModifiedAt).Seconds())
		}
	}
	return s
}

// Ready reports whether a model was loaded.
func (s *Store) Ready() bool {
	return s != nil && s.regressor != nil
}

func (s *Store) Info() Info {
	if s == nil {
		return Info{}
	}
	return s.info
}

// Predict scores the feature pair [surface, pieces].
func (s *Store) Predict(surface, pieces float64) (float64, error) {
	if !s.Ready() {
		return 0, ErrModelNotLoaded
	}

	key := featureKey{surface, pieces}
	if s.cache != nil {
		if price, ok := s.cache.Get(key); ok {
			s.observeHit(price)
			return price, nil
		}
		if s.metrics != nil {
			s.metrics.CacheMissInc()
		}
	}

	start := time.Now()
	price, err := s.regressor.Predict([]float64{surface, pieces})
	if s.metrics != nil {
		s.metrics.PredictionLatencyObserve(time.Since(start).Seconds())
	}

	if err == nil && (math.IsNaN(price) || math.IsInf(price, 0)) {
		err = fmt.Errorf("model returned non-finite value %v", price)
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.PredictionFailuresInc()
		}
		return 0, fmt.Errorf("prediction failed: %w", err)
	}

	if s.cache != nil {
		s.cache.Add(key, price)
	}
	if s.metrics != nil {
		s.metrics.PredictionsInc()
		s.metrics.PredictedPriceObserve(price)
	}
	return price, nil
}

func (s *Store) observeHit(price float64) {
	if s.metrics == nil {
		return
	}
	s.metrics.CacheHitInc()
	s.metrics.PredictionsInc()
	s.metrics.PredictedPriceObserve(price)
}
