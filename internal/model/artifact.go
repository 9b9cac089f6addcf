package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"houseprice/internal/common"
)

const KindLinearRegression = "linear_regression"

// FeatureOrder is the column order every artifact must be trained on.
var FeatureOrder = []string{common.FeatureSurface, common.FeaturePieces}

// Artifact is the persisted form of a trained model, shared by the trainer
// (writer) and the Store (reader).
type Artifact struct {
	Kind         string    `json:"kind"`
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	TrainedAt    time.Time `json:"trained_at"`
	TrainRows    int       `json:"train_rows"`
	TestRows     int       `json:"test_rows"`
	TrainScore   float64   `json:"train_score"`
	TestScore    float64   `json:"test_score"`
}

// Validate checks that the artifact describes a usable model for the
// [surface, pieces] feature order.
func (a *Artifact) Validate() error {
	if a.Kind != KindLinearRegression {
		return fmt.Errorf("unsupported model kind %q", a.Kind)
	}
	if len(a.Features) != len(FeatureOrder) {
		return fmt.Errorf("expected features %v, got %v", FeatureOrder, a.Features)
	}
	for i, name := range FeatureOrder {
		if a.Features[i] != name {
			return fmt.Errorf("expected features %v, got %v", FeatureOrder, a.Features)
		}
	}
	if len(a.Coefficients) != len(FeatureOrder) {
		return fmt.Errorf("expected %d coefficients, got %d", len(FeatureOrder), len(a.Coefficients))
	}
	values := append([]float64{a.Intercept}, a.Coefficients...)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("artifact contains non-finite parameter %v", v)
		}
	}
	return nil
}

// Regressor builds the in-memory model described by the artifact.
func (a *Artifact) Regressor() (Regressor, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	coefficients := make([]float64, len(a.Coefficients))
	copy(coefficients, a.Coefficients)
	return &LinearRegression{Intercept: a.Intercept, Coefficients: coefficients}, nil
}

// ReadArtifact decodes the artifact at path. Errors from opening the file are
// wrapped, so callers can test for fs.ErrNotExist.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	return &a, nil
}

// WriteArtifact validates and writes the artifact to path, creating the parent
// directory if needed. The file is replaced atomically.
func WriteArtifact(path string, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid artifact: %w", err)
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model artifact: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace model artifact: %w", err)
	}
	return nil
}
