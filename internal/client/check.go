package client

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
)

// CheckResult is the outcome of one API check.
type CheckResult struct {
	Name    string
	Passed  bool
	Skipped bool
	Detail  string
}

type check struct {
	name string
	run  func(ctx context.Context, c *Client) (skipped bool, err error)
}

var checks = []check{
	{"health", checkHealth},
	{"index", checkIndex},
	{"predict without data", checkPredictStatus(map[string]interface{}{}, http.StatusBadRequest)},
	{"predict missing pieces", checkPredictStatus(map[string]interface{}{"surface": 100}, http.StatusBadRequest)},
	{"predict valid", checkPredictValid},
}

// RunChecks exercises every endpoint of a running service.
func RunChecks(ctx context.Context, c *Client) []CheckResult {
	results := make([]CheckResult, 0, len(checks))
	for _, ch := range checks {
		skipped, err := ch.run(ctx, c)
		res := CheckResult{Name: ch.name, Passed: err == nil, Skipped: skipped}
		if err != nil {
			res.Detail = err.Error()
		}
		results = append(results, res)
	}
	return results
}

func checkHealth(ctx context.Context, c *Client) (bool, error) {
	h, err := c.Health(ctx)
	if err != nil {
		return false, err
	}
	if h.Status != "healthy" {
		return false, fmt.Errorf("unexpected status %q", h.Status)
	}
	return false, nil
}

func checkIndex(ctx context.Context, c *Client) (bool, error) {
	idx, err := c.Index(ctx)
	if err != nil {
		return false, err
	}
	if idx.Message == "" {
		return false, errors.New("index has no message")
	}
	return false, nil
}

func checkPredictStatus(body interface{}, want int) func(context.Context, *Client) (bool, error) {
	return func(ctx context.Context, c *Client) (bool, error) {
		// Readiness is checked first, so an unloaded model masks validation.
		if h, err := c.Health(ctx); err == nil && !h.ModelLoaded {
			return true, nil
		}

		_, err := c.PredictRaw(ctx, body)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return false, fmt.Errorf("expected HTTP %d, got %v", want, err)
		}
		if apiErr.Status != want {
			return false, fmt.Errorf("expected HTTP %d, got %d (%s)", want, apiErr.Status, apiErr.Message)
		}
		return false, nil
	}
}

// checkPredictValid treats a 500 as a skip since the service may have no model.
func checkPredictValid(ctx context.Context, c *Client) (bool, error) {
	p, err := c.Predict(ctx, 100, 4)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusInternalServerError {
			return true, nil
		}
		return false, err
	}
	if math.IsNaN(p.PrixPredicted) || math.IsInf(p.PrixPredicted, 0) {
		return false, fmt.Errorf("non-finite prediction %v", p.PrixPredicted)
	}
	return false, nil
}
