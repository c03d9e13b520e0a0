package simulation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pitchlab/salestrainer/pkg/logging"
)

// Handler wires HTTP requests to the simulation service.
type Handler struct {
	service Service
	logger  *logging.Logger
}

// NewHandler creates a simulation handler.
func NewHandler(service Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("simulation: service cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Start handles POST /api/sessions.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode start request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.StartSession(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to start session", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, resp)
}

// Turn handles POST /api/sessions/{sessionID}/turns.
func (h *Handler) Turn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode turn request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.SessionID = sessionID

	resp, err := h.service.ProcessTurn(r.Context(), req)
	if err != nil {
		h.respondError(w, sessionID, "failed to process turn", err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// End handles POST /api/sessions/{sessionID}/end.
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	resp, err := h.service.EndSession(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, sessionID, "failed to end session", err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// History handles GET /api/sessions/{sessionID}/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	turns, err := h.service.GetHistory(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, sessionID, "failed to fetch history", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"turns":      turns,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, sessionID, msg string, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, ErrSessionEnded):
		http.Error(w, "Session already ended", http.StatusConflict)
	default:
		h.logger.Error(msg, "session_id", sessionID, "error", err)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
