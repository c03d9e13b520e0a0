package simulation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type stubService struct {
	startErr error
	turnErr  error
	endErr   error
	lastTurn TurnRequest
}

func (s *stubService) StartSession(_ context.Context, req StartRequest) (*StartResponse, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	return &StartResponse{SessionID: "sim_h1", Greeting: "Hello?"}, nil
}

func (s *stubService) ProcessTurn(_ context.Context, req TurnRequest) (*TurnResponse, error) {
	s.lastTurn = req
	if s.turnErr != nil {
		return nil, s.turnErr
	}
	return &TurnResponse{SessionID: req.SessionID, Reply: "go on", Status: StatusActive}, nil
}

func (s *stubService) EndSession(_ context.Context, sessionID string) (*EndResponse, error) {
	if s.endErr != nil {
		return nil, s.endErr
	}
	return &EndResponse{SessionID: sessionID, Status: StatusCompleted}, nil
}

func (s *stubService) GetHistory(_ context.Context, sessionID string) ([]Turn, error) {
	return []Turn{{ID: "t1", Speaker: SpeakerRep, Message: "hi"}}, nil
}

func handlerRouter(svc Service) http.Handler {
	h := NewHandler(svc, nil)
	r := chi.NewRouter()
	r.Post("/api/sessions", h.Start)
	r.Post("/api/sessions/{sessionID}/turns", h.Turn)
	r.Post("/api/sessions/{sessionID}/end", h.End)
	r.Get("/api/sessions/{sessionID}/history", h.History)
	return r
}

func TestHandlerStart(t *testing.T) {
	r := handlerRouter(&stubService{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{"call_type":"inbound-inquiry"}`)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sim_h1") {
		t.Fatalf("expected session id, got %s", rec.Body.String())
	}
}

func TestHandlerStartRejectsBadJSON(t *testing.T) {
	r := handlerRouter(&stubService{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{not json`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandlerTurnUsesPathSessionID(t *testing.T) {
	svc := &stubService{}
	r := handlerRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions/sim_h1/turns", strings.NewReader(`{"session_id":"spoofed","message":"hi"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if svc.lastTurn.SessionID != "sim_h1" {
		t.Fatalf("expected path session id to win, got %q", svc.lastTurn.SessionID)
	}
}

func TestHandlerTurnErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrSessionNotFound, http.StatusNotFound},
		{"already ended", ErrSessionEnded, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := handlerRouter(&stubService{turnErr: tc.err})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions/sim_h1/turns", strings.NewReader(`{"message":"hi"}`)))

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestHandlerEndAndHistory(t *testing.T) {
	r := handlerRouter(&stubService{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions/sim_h1/end", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("end: expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), string(StatusCompleted)) {
		t.Fatalf("end: expected status in body, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/sim_h1/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("history: expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"turns"`) {
		t.Fatalf("history: expected turns, got %s", rec.Body.String())
	}
}
