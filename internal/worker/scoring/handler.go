package scoringworker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scoring"
	"github.com/pitchlab/salestrainer/pkg/logging"
)

// ScoreReader is the archive surface the handler needs for lookups.
type ScoreReader interface {
	Latest(ctx context.Context, sessionID string) (*scoring.CallScore, error)
	Progress(ctx context.Context) ([]scoring.ProgressReport, error)
}

// Handler wires HTTP requests to the scoring worker and archive.
type Handler struct {
	worker  *Worker
	archive ScoreReader
	logger  *logging.Logger
}

// NewHandler creates a scoring handler. archive may be nil when score
// persistence is disabled; lookups then return 404.
func NewHandler(worker *Worker, archive ScoreReader, logger *logging.Logger) *Handler {
	if worker == nil {
		panic("scoringworker: worker cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		worker:  worker,
		archive: archive,
		logger:  logger,
	}
}

// ScoreRequest is the submit-a-transcript payload. Async jobs return a job ID
// immediately and persist the report to the archive when done.
type ScoreRequest struct {
	SessionID  string           `json:"session_id"`
	CallType   persona.CallType `json:"call_type"`
	Transcript []scoring.Entry  `json:"transcript"`
	Async      bool             `json:"async,omitempty"`
}

// Score handles POST /api/scores.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode score request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Transcript) == 0 {
		http.Error(w, "Transcript is required", http.StatusBadRequest)
		return
	}

	job := Job{
		SessionID:  req.SessionID,
		CallType:   req.CallType,
		Transcript: req.Transcript,
	}

	if req.Async {
		jobID, err := h.worker.Enqueue(r.Context(), job)
		if err != nil {
			h.logger.Error("failed to enqueue scoring job", "error", err)
			http.Error(w, "Failed to enqueue scoring job", http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, http.StatusAccepted, map[string]string{
			"job_id":     jobID,
			"session_id": req.SessionID,
		})
		return
	}

	score, err := h.worker.ScoreCall(r.Context(), job)
	if err != nil {
		if errors.Is(err, persona.ErrUnknownCallType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to score call", "session_id", req.SessionID, "error", err)
		http.Error(w, "Failed to score call", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, score)
}

// Latest handles GET /api/scores/{sessionID}.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if h.archive == nil {
		http.Error(w, "Score not found", http.StatusNotFound)
		return
	}

	score, err := h.archive.Latest(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, scoring.ErrScoreNotFound) {
			http.Error(w, "Score not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load score", "session_id", sessionID, "error", err)
		http.Error(w, "Failed to load score", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, score)
}

// Progress handles GET /api/progress.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.writeJSON(w, http.StatusOK, []scoring.ProgressReport{})
		return
	}

	reports, err := h.archive.Progress(r.Context())
	if err != nil {
		h.logger.Error("failed to load progress", "error", err)
		http.Error(w, "Failed to load progress", http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []scoring.ProgressReport{}
	}

	h.writeJSON(w, http.StatusOK, reports)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
