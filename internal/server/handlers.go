package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sprout/internal/advisor"

	"github.com/rs/zerolog/hlog"
)

// maxRequestBodySize caps JSON bodies at 1MB.
const maxRequestBodySize = 1 << 20

// Advisor is the subset of advisor.Advisor the handlers need.
type Advisor interface {
	Chat(ctx context.Context, name string) (*advisor.Result, error)
	FruitChat(ctx context.Context, name string) (*advisor.FruitResult, error)
}

// ChatRequest is the body accepted by both chat endpoints.
type ChatRequest struct {
	Name *string `json:"name" jsonschema:"required,description=Fruit, vegetable, herb or plant name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// chatHandler decodes a ChatRequest, runs fn and writes its result.
func chatHandler[T any](route string, fn func(ctx context.Context, name string) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := hlog.FromRequest(r)
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
			return
		}
		if req.Name == nil {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		log.Info().Str("route", route).Str("item", *req.Name).Msg("Chat request")

		result, err := fn(r.Context(), *req.Name)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Str("route", route).Msg("Chat request cancelled")
			} else {
				log.Error().Err(err).Str("route", route).Msg("Chat request failed")
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		log.Info().Str("route", route).Msg("Chat request completed")
		writeJSON(w, http.StatusOK, result)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
