// Package client is an HTTP client for the house price prediction API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	rest *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		r.SetTimeout(timeout)
	} else {
		r.SetTimeout(5 * time.Second)
	}
	return &Client{rest: r}
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

type Index struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

type Prediction struct {
	Surface       float64 `json:"surface"`
	Pieces        float64 `json:"pieces"`
	PrixPredicted float64 `json:"prix_predicted"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	out := &Health{}
	if err := c.do(ctx, http.MethodGet, "/health", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Index(ctx context.Context) (*Index, error) {
	out := &Index{}
	if err := c.do(ctx, http.MethodGet, "/", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Predict(ctx context.Context, surface, pieces float64) (*Prediction, error) {
	return c.PredictRaw(ctx, map[string]float64{"surface": surface, "pieces": pieces})
}

// PredictRaw posts body as-is, which lets callers send incomplete payloads.
func (c *Client) PredictRaw(ctx context.Context, body interface{}) (*Prediction, error) {
	out := &Prediction{}
	if err := c.do(ctx, http.MethodPost, "/predict", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	apiErr := &errorBody{}
	req := c.rest.R().
		SetContext(ctx).
		SetResult(out).
		SetError(apiErr)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = resp.Status()
		}
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}
