// Package server exposes the conversation API over HTTP.
//
// Endpoints:
//
//	POST   /v1/conversations/{conversationID}/turns     — process one turn
//	GET    /v1/conversations/{conversationID}/records   — list analysis records
//	DELETE /v1/conversations/{conversationID}           — delete a conversation
//	GET    /v1/conversations/{conversationID}/progress  — WebSocket phase stream
//	GET    /healthz, /readyz                            — liveness and readiness
//	GET    /metrics                                     — Prometheus exposition
//
// All API handlers run behind the observe middleware, which propagates W3C
// trace context and records request metrics.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mindweave/sevenmind/internal/app"
	"github.com/mindweave/sevenmind/internal/health"
	"github.com/mindweave/sevenmind/internal/observe"
	"github.com/mindweave/sevenmind/internal/pipeline"
	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/mind"
	"github.com/mindweave/sevenmind/pkg/mind/emotion"
)

// defaultRecordLimit bounds GET /records when no limit query is given.
const defaultRecordLimit = 20

// Server routes HTTP requests to the application.
type Server struct {
	app     *app.App
	health  *health.Handler
	metrics *observe.Metrics
}

// New creates a Server over the application. checkers feed the readiness
// endpoint.
func New(a *app.App, checkers ...health.Checker) *Server {
	return &Server{
		app:     a,
		health:  health.New(checkers...),
		metrics: observe.DefaultMetrics(),
	}
}

// Handler returns the fully wired root handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/conversations/{conversationID}/turns", s.handleTurn)
	mux.HandleFunc("GET /v1/conversations/{conversationID}/records", s.handleRecords)
	mux.HandleFunc("DELETE /v1/conversations/{conversationID}", s.handleDelete)
	mux.HandleFunc("GET /v1/conversations/{conversationID}/progress", s.handleProgress)
	s.health.Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	return observe.Middleware(s.metrics)(mux)
}

// turnRequest is the JSON body for the turn endpoint.
type turnRequest struct {
	Message string `json:"message"`
}

// turnResponse is the JSON body returned from the turn endpoint.
type turnResponse struct {
	Reply        string                `json:"reply"`
	Measurements []emotion.Measurement `json:"measurements"`
	Temperatures map[string]float64    `json:"temperatures"`
}

// handleTurn handles POST /v1/conversations/{conversationID}/turns.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("conversationID")

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	res, err := s.app.RunTurn(r.Context(), conversationID, req.Message)
	switch {
	case errors.Is(err, app.ErrConversationBusy):
		writeError(w, http.StatusConflict, "a turn is already in flight for this conversation")
		return
	case err != nil:
		observe.Logger(r.Context()).Error("turn failed",
			"conversation_id", conversationID, "err", err)
		writeError(w, http.StatusBadGateway, turnErrorMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, turnResponse{
		Reply:        res.Reply,
		Measurements: res.Record.Measurements,
		Temperatures: temperaturesJSON(res.NextTemperatures),
	})
}

// recordJSON is the wire shape of one analysis record.
type recordJSON struct {
	ID           string                `json:"id"`
	UserInput    string                `json:"user_input"`
	Reply        string                `json:"reply"`
	StageOutputs map[string]string     `json:"stage_outputs"`
	Measurements []emotion.Measurement `json:"measurements"`
	Temperatures map[string]float64    `json:"temperatures"`
	CreatedAt    time.Time             `json:"created_at"`
}

// handleRecords handles GET /v1/conversations/{conversationID}/records.
// An optional limit query parameter caps the result; newest records first.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("conversationID")

	limit := defaultRecordLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.app.Store().Records(r.Context(), conversationID, limit)
	if err != nil {
		observe.Logger(r.Context()).Error("list records failed",
			"conversation_id", conversationID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	out := make([]recordJSON, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecordJSON(rec))
	}
	writeJSON(w, http.StatusOK, map[string][]recordJSON{"records": out})
}

// handleDelete handles DELETE /v1/conversations/{conversationID}. Deleting
// an unknown conversation succeeds.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("conversationID")

	if err := s.app.Store().DeleteConversation(r.Context(), conversationID); err != nil {
		observe.Logger(r.Context()).Error("delete conversation failed",
			"conversation_id", conversationID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete conversation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// turnErrorMessage maps a pipeline failure to a client-safe message naming
// the stage that failed.
func turnErrorMessage(err error) string {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		if stageErr.Call != "" {
			return "the " + stageErr.Call + " call failed"
		}
		return "the " + string(stageErr.Role) + " stage failed"
	}
	return "turn processing failed"
}

func toRecordJSON(rec memory.AnalysisRecord) recordJSON {
	outputs := make(map[string]string, len(rec.StageOutputs))
	for role, out := range rec.StageOutputs {
		outputs[string(role)] = out
	}
	return recordJSON{
		ID:           rec.ID,
		UserInput:    rec.UserInput,
		Reply:        rec.Reply,
		StageOutputs: outputs,
		Measurements: rec.Measurements,
		Temperatures: temperaturesJSON(rec.Temperatures),
		CreatedAt:    rec.CreatedAt,
	}
}

func temperaturesJSON(v mind.TemperatureVector) map[string]float64 {
	out := make(map[string]float64, len(v))
	for role, temp := range v {
		out[string(role)] = temp
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
