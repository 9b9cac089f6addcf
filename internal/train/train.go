package train

import (
	"fmt"
	"os"
	"time"

	"houseprice/internal/model"
	"houseprice/internal/storage"

	"github.com/rs/zerolog/log"
)

type Options struct {
	DataPath  string  // directory holding the samples database
	ModelPath string  // artifact destination
	TestSize  float64 // held-out fraction, 0.2 by default
	Seed      int64
	Reseed    bool // replace stored samples with SampleDataset
}

// Run seeds the sample store when empty, fits a model on the stored samples
// and writes the artifact.
func Run(opts Options) (*model.Artifact, error) {
	if opts.TestSize == 0 {
		opts.TestSize = 0.2
	}

	if err := os.MkdirAll(opts.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	store, err := storage.New(opts.DataPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := seed(store, opts.Reseed); err != nil {
		return nil, err
	}

	samples, err := store.Samples()
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}

	trainSet, testSet, err := SplitSamples(samples, opts.TestSize, opts.Seed)
	if err != nil {
		return nil, err
	}

	lr, err := Fit(trainSet)
	if err != nil {
		return nil, err
	}

	trainScore, err := Score(lr, trainSet)
	if err != nil {
		return nil, err
	}
	testScore, err := Score(lr, testSet)
	if err != nil {
		return nil, err
	}

	artifact := &model.Artifact{
		Kind:         model.KindLinearRegression,
		Features:     append([]string(nil), model.FeatureOrder...),
		Intercept:    lr.Intercept,
		Coefficients: lr.Coefficients,
		TrainedAt:    time.Now().UTC(),
		TrainRows:    len(trainSet),
		TestRows:     len(testSet),
		TrainScore:   trainScore,
		TestScore:    testScore,
	}

	if err := model.WriteArtifact(opts.ModelPath, artifact); err != nil {
		return nil, err
	}

	log.Info().
		Float64("train_score", trainScore).
		Float64("test_score", testScore).
		Int("train_rows", len(trainSet)).
		Int("test_rows", len(testSet)).
		Str("model_path", opts.ModelPath).
		Msg("model trained")

	return artifact, nil
}

func seed(store *storage.Store, reseed bool) error {
	n, err := store.Count()
	if err != nil {
		return fmt.Errorf("count samples: %w", err)
	}
	if n > 0 && !reseed {
		return nil
	}

	if n > 0 {
		if err := store.Reset(); err != nil {
			return err
		}
	}

	samples := SampleDataset()
	if err := store.PutSamples(samples); err != nil {
		return fmt.Errorf("seed samples: %w", err)
	}
	log.Info().Int("samples", len(samples)).Msg("seeded sample dataset")
	return nil
}
