package model

import (
	"fmt"
	"math"
)

// Regressor maps an ordered feature vector to a single scalar.
type Regressor interface {
	Predict(features []float64) (float64, error)
}

// LinearRegression is an ordinary least squares model:
// y = Intercept + sum(Coefficients[i] * features[i]).
type LinearRegression struct {
	Intercept    float64
	Coefficients []float64
}

func (lr *LinearRegression) Predict(features []float64) (float64, error) {
	if len(features) != len(lr.Coefficients) {
		return 0, fmt.Errorf("expected %d features, got %d", len(lr.Coefficients), len(features))
	}

	y := lr.Intercept
	for i, f := range features {
		y += lr.Coefficients[i] * f
	}

	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("prediction overflowed for features %v", features)
	}
	return y, nil
}
