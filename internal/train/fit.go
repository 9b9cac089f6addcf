package train

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"houseprice/internal/model"
	"houseprice/internal/storage"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// numParams is the intercept plus one coefficient per feature.
var numParams = 1 + len(model.FeatureOrder)

// SplitSamples shuffles samples with the given seed and holds out
// ceil(n*testSize) of them for evaluation.
func SplitSamples(samples []storage.Sample, testSize float64, seed int64) (trainSet, testSet []storage.Sample, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size must be in (0, 1), got %v", testSize)
	}

	n := len(samples)
	nTest := int(math.Ceil(float64(n) * testSize))
	if n-nTest < numParams {
		return nil, nil, fmt.Errorf("need at least %d training samples, have %d of %d", numParams, n-nTest, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testSet = make([]storage.Sample, 0, nTest)
	trainSet = make([]storage.Sample, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			testSet = append(testSet, samples[idx])
		} else {
			trainSet = append(trainSet, samples[idx])
		}
	}
	return trainSet, testSet, nil
}

// Fit estimates an ordinary least squares model with intercept on the
// [surface, pieces] features.
func Fit(samples []storage.Sample) (*model.LinearRegression, error) {
	n := len(samples)
	if n < numParams {
		return nil, fmt.Errorf("need at least %d samples to fit, got %d", numParams, n)
	}

	x := mat.NewDense(n, numParams, nil)
	y := mat.NewVecDense(n, nil)
	for i, s := range samples {
		x.Set(i, 0, 1)
		x.Set(i, 1, s.Surface)
		x.Set(i, 2, s.Pieces)
		y.SetVec(i, s.Prix)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("least squares solve: %w", err)
		}
		// The solution is still usable, only less precise.
		log.Warn().Float64("condition", float64(cond)).Msg("ill-conditioned training data")
	}

	lr := &model.LinearRegression{
		Intercept:    beta.AtVec(0),
		Coefficients: []float64{beta.AtVec(1), beta.AtVec(2)},
	}
	for _, v := range append([]float64{lr.Intercept}, lr.Coefficients...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("fit produced non-finite parameters (rank deficient data?)")
		}
	}
	return lr, nil
}

// Score returns the coefficient of determination R² of r on samples.
// Constant targets score 1 when predicted exactly and 0 otherwise.
func Score(r model.Regressor, samples []storage.Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("cannot score an empty sample set")
	}

	var mean float64
	for _, s := range samples {
		mean += s.Prix
	}
	mean /= float64(len(samples))

	var ssRes, ssTot float64
	for _, s := range samples {
		pred, err := r.Predict([]float64{s.Surface, s.Pieces})
		if err != nil {
			return 0, fmt.Errorf("predict: %w", err)
		}
		ssRes += (s.Prix - pred) * (s.Prix - pred)
		ssTot += (s.Prix - mean) * (s.Prix - mean)
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}
