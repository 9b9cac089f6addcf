package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"houseprice/internal/common"

	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

type indexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

type predictResponse struct {
	Surface       float64 `json:"surface"`
	Pieces        float64 `json:"pieces"`
	PrixPredicted float64 `json:"prix_predicted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var index = indexResponse{
	Message: "House price prediction API",
	Endpoints: map[string]string{
		"GET /health":   "Check the API status",
		"POST /predict": `Make a prediction (body: {"surface": 100, "pieces": 4})`,
	},
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		ModelLoaded: s.store.Ready(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, index)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if !s.store.Ready() {
		writeError(w, http.StatusInternalServerError, common.ErrMsgModelNotLoaded)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, common.ErrMsgNoData)
		return
	}

	features, reqErr := parsePredictRequest(body)
	if reqErr != nil {
		if reqErr.status >= http.StatusInternalServerError {
			log.Error().Str("error", reqErr.message).Msg("prediction failed")
		}
		writeError(w, reqErr.status, reqErr.message)
		return
	}

	price, err := s.store.Predict(features.Surface, features.Pieces)
	if err != nil {
		log.Error().
			Err(err).
			Float64("surface", features.Surface).
			Float64("pieces", features.Pieces).
			Msg("prediction failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	prix := roundPrice(price)
	log.Info().
		Float64("surface", features.Surface).
		Float64("pieces", features.Pieces).
		Float64("prix", prix).
		Msg("prediction")

	writeJSON(w, http.StatusOK, predictResponse{
		Surface:       features.Surface,
		Pieces:        features.Pieces,
		PrixPredicted: prix,
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, common.ErrMsgNotFound)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, common.ErrMsgMethodNotAllowed)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
