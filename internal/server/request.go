package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"houseprice/internal/common"
)

// Features is a validated prediction request.
type Features struct {
	Surface float64
	Pieces  float64
}

// requestError carries the HTTP status a rejected request maps to.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

var (
	errNoData         = &requestError{status: http.StatusBadRequest, message: common.ErrMsgNoData}
	errFieldsRequired = &requestError{status: http.StatusBadRequest, message: common.ErrMsgFieldsRequired}
)

// parsePredictRequest validates a /predict body in three tiers, first failure wins:
// the body must be a non-empty JSON object (400), both fields must be present
// and non-null (400), and both values must convert to finite floats (500).
func parsePredictRequest(body []byte) (Features, *requestError) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return Features{}, errNoData
	}

	rawSurface, ok := field(payload, common.FeatureSurface)
	if !ok {
		return Features{}, errFieldsRequired
	}
	rawPieces, ok := field(payload, common.FeaturePieces)
	if !ok {
		return Features{}, errFieldsRequired
	}

	surface, err := toFloat(common.FeatureSurface, rawSurface)
	if err != nil {
		return Features{}, &requestError{status: http.StatusInternalServerError, message: err.Error()}
	}
	pieces, err := toFloat(common.FeaturePieces, rawPieces)
	if err != nil {
		return Features{}, &requestError{status: http.StatusInternalServerError, message: err.Error()}
	}

	return Features{Surface: surface, Pieces: pieces}, nil
}

// field returns the raw value of key, treating an explicit null as absent.
func field(payload map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := payload[key]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return nil, false
	}
	return raw, true
}

// toFloat accepts JSON numbers, numeric strings and booleans.
func toFloat(name string, raw json.RawMessage) (float64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("could not decode %s: %w", name, err)
	}

	var f float64
	switch x := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert %s to float: %s", name, x)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert %s to float: %q", name, x)
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	default:
		return 0, fmt.Errorf("%s must be a number or a numeric string, not %s", name, jsonKind(v))
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be a finite number, got %v", name, f)
	}
	return f, nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}:
		return "an object"
	case []interface{}:
		return "an array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// roundPrice rounds to 2 decimals using the shortest correctly rounded
// decimal form of the value.
func roundPrice(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
