package scoringworker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scoring"
)

type scorerFunc func(ctx context.Context, turns []scoring.Turn, callType persona.CallType) (*scoring.CallScore, error)

func (f scorerFunc) Score(ctx context.Context, turns []scoring.Turn, callType persona.CallType) (*scoring.CallScore, error) {
	return f(ctx, turns, callType)
}

type stubReader struct {
	scores   map[string]*scoring.CallScore
	progress []scoring.ProgressReport
}

func (r *stubReader) Latest(_ context.Context, sessionID string) (*scoring.CallScore, error) {
	score, ok := r.scores[sessionID]
	if !ok {
		return nil, scoring.ErrScoreNotFound
	}
	return score, nil
}

func (r *stubReader) Progress(_ context.Context) ([]scoring.ProgressReport, error) {
	return r.progress, nil
}

func handlerRouter(t *testing.T, scorer Scorer, reader ScoreReader) http.Handler {
	t.Helper()

	worker := NewWorker(scorer, NewMemoryQueue(8), nil, quietLogger())
	t.Cleanup(func() { _ = worker.Shutdown(context.Background()) })

	h := NewHandler(worker, reader, quietLogger())
	r := chi.NewRouter()
	r.Post("/api/scores", h.Score)
	r.Get("/api/scores/{sessionID}", h.Latest)
	r.Get("/api/progress", h.Progress)
	return r
}

func TestHandlerScoreSync(t *testing.T) {
	scorer := scorerFunc(func(_ context.Context, turns []scoring.Turn, _ persona.CallType) (*scoring.CallScore, error) {
		return &scoring.CallScore{Overall: float64(len(turns)) * 10}, nil
	})
	r := handlerRouter(t, scorer, nil)

	body := `{"call_type":"discovery-outbound","transcript":[{"speaker":"rep","message":"hi"},{"speaker":"prospect","message":"hello"}]}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"overall":20`) {
		t.Fatalf("expected overall 20, got %s", rec.Body.String())
	}
}

func TestHandlerScoreAsyncReturnsJobID(t *testing.T) {
	scorer := scorerFunc(func(_ context.Context, _ []scoring.Turn, _ persona.CallType) (*scoring.CallScore, error) {
		return &scoring.CallScore{}, nil
	})
	r := handlerRouter(t, scorer, nil)

	body := `{"session_id":"sim_9","call_type":"discovery-outbound","async":true,"transcript":[{"speaker":"rep","message":"hi"}]}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(body)))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected %d, got %d", http.StatusAccepted, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "job_id") {
		t.Fatalf("expected job id, got %s", rec.Body.String())
	}
}

func TestHandlerScoreRejectsEmptyTranscript(t *testing.T) {
	scorer := scorerFunc(func(_ context.Context, _ []scoring.Turn, _ persona.CallType) (*scoring.CallScore, error) {
		return &scoring.CallScore{}, nil
	})
	r := handlerRouter(t, scorer, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"call_type":"discovery-outbound"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandlerScoreUnknownCallTypeIs400(t *testing.T) {
	scorer := scorerFunc(func(_ context.Context, _ []scoring.Turn, _ persona.CallType) (*scoring.CallScore, error) {
		return nil, persona.ErrUnknownCallType
	})
	r := handlerRouter(t, scorer, nil)

	body := `{"call_type":"séance","transcript":[{"speaker":"rep","message":"hi"}]}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandlerLatest(t *testing.T) {
	reader := &stubReader{scores: map[string]*scoring.CallScore{
		"sim_1": {Overall: 72, ScoredAt: time.Now()},
	}}
	scorer := scorerFunc(func(_ context.Context, _ []scoring.Turn, _ persona.CallType) (*scoring.CallScore, error) {
		return nil, errors.New("unused")
	})
	r := handlerRouter(t, scorer, reader)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores/sim_1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"overall":72`) {
		t.Fatalf("expected archived score, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scores/sim_404", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandlerProgress(t *testing.T) {
	reader := &stubReader{progress: []scoring.ProgressReport{
		{CallType: persona.CallDiscoveryOutbound, Calls: 3, AverageOverall: 61},
	}}
	scorer := scorerFunc(func(_ context.Context, _ []scoring.Turn, _ persona.CallType) (*scoring.CallScore, error) {
		return nil, errors.New("unused")
	})
	r := handlerRouter(t, scorer, reader)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/progress", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "discovery-outbound") {
		t.Fatalf("expected progress rows, got %s", rec.Body.String())
	}
}
