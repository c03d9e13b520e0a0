package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scoring"
	"github.com/pitchlab/salestrainer/internal/simulation"
	scoringworker "github.com/pitchlab/salestrainer/internal/worker/scoring"
	"github.com/pitchlab/salestrainer/pkg/logging"
)

type stubSimService struct{}

func (stubSimService) StartSession(_ context.Context, req simulation.StartRequest) (*simulation.StartResponse, error) {
	return &simulation.StartResponse{SessionID: "sim_test"}, nil
}

func (stubSimService) ProcessTurn(_ context.Context, req simulation.TurnRequest) (*simulation.TurnResponse, error) {
	return &simulation.TurnResponse{SessionID: req.SessionID, Reply: "go on"}, nil
}

func (stubSimService) EndSession(_ context.Context, sessionID string) (*simulation.EndResponse, error) {
	return &simulation.EndResponse{SessionID: sessionID, Status: simulation.StatusCompleted}, nil
}

func (stubSimService) GetHistory(_ context.Context, sessionID string) ([]simulation.Turn, error) {
	return nil, nil
}

type stubScorer struct{}

func (stubScorer) Score(_ context.Context, turns []scoring.Turn, _ persona.CallType) (*scoring.CallScore, error) {
	return &scoring.CallScore{Overall: 50}, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewWithWriter("error", testWriter{t})
	worker := scoringworker.NewWorker(stubScorer{}, scoringworker.NewMemoryQueue(8), nil, logger)
	t.Cleanup(func() { _ = worker.Shutdown(context.Background()) })

	return New(&Config{
		Logger:            logger,
		SimulationHandler: simulation.NewHandler(stubSimService{}, logger),
		ScoringHandler:    scoringworker.NewHandler(worker, nil, logger),
	})
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("expected ok body, got %q", rec.Body.String())
	}
}

func TestSessionRoutesWired(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: expected %d, got %d", http.StatusCreated, rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions/sim_test/turns", strings.NewReader(`{"message":"hi"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("turn: expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sim_test") {
		t.Fatalf("turn: expected session id in body, got %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions/sim_test/end", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("end: expected %d, got %d", http.StatusOK, rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/sim_test/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("history: expected %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestScoreRouteWired(t *testing.T) {
	body := `{"call_type":"discovery-outbound","transcript":[{"speaker":"rep","message":"hello"}]}`
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "overall") {
		t.Fatalf("expected score body, got %q", rec.Body.String())
	}
}

func TestProgressWithoutArchiveReturnsEmptyList(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/progress", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %q", rec.Body.String())
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
