package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
)

type Result struct {
	Data interface{} `json:"data"`
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	TraceID   string `json:"traceId,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write response")
	}
}

func writeResult(w http.ResponseWriter, r *http.Request, data interface{}) {
	writeJSON(w, r, http.StatusOK, Result{Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, err *types.Error) {
	logger := log.Ctx(r.Context())
	if err.StatusCode >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("errorCode", err.ErrorCode.String()).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Str("errorCode", err.ErrorCode.String()).Msg("Request rejected")
	}

	message := err.Error()
	// internal details stay in the logs
	if err.StatusCode == http.StatusInternalServerError {
		message = http.StatusText(http.StatusInternalServerError)
	}
	writeJSON(w, r, err.StatusCode, ErrorResponse{
		ErrorCode: err.ErrorCode.String(),
		Message:   message,
		TraceID:   tracing.TraceIDFromContext(r.Context()),
	})
}

func decodeBody(r *http.Request, v interface{}) *types.Error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return types.NewValidationFailedError(errors.New("invalid request body: " + err.Error()))
	}
	return nil
}
