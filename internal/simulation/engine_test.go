package simulation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scenario"
	"github.com/pitchlab/salestrainer/pkg/logging"
)

type stubLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	lastReq LLMRequest
}

func (s *stubLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return LLMResponse{}, s.err
	}
	return LLMResponse{Text: s.reply, StopReason: "stop"}, nil
}

func testEngine(t *testing.T, llm LLMClient, opts ...EngineOption) *Engine {
	t.Helper()
	seq := 0
	base := []EngineOption{
		WithClock(func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			seq++
			return "id-" + strings.Repeat("0", seq)
		}),
	}
	return NewEngine(persona.NewRegistry(), llm, logging.NewWithWriter("error", testWriter{t}), append(base, opts...)...)
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func startRequest(difficulty persona.DifficultyLevel) StartRequest {
	return StartRequest{
		Persona: persona.Config{Name: "Dana", Level: persona.RoleManager},
		Business: scenario.BusinessContext{
			CompanyName: "Northwind Logistics",
			Industry:    "freight",
			CompanySize: "250 employees",
			Challenges:  []string{"manual dispatch planning"},
		},
		Product:    scenario.ProductContext{Name: "RouteIQ", Category: "fleet routing software"},
		CallType:   persona.CallDiscoveryOutbound,
		Difficulty: difficulty,
	}
}

func TestEngineSessionLifecycle(t *testing.T) {
	llm := &stubLLM{reply: "We run about forty trucks out of two depots."}
	eng := testEngine(t, llm, WithSessionStore(NewMemorySessionStore()))
	ctx := context.Background()

	started, err := eng.StartSession(ctx, startRequest(persona.DifficultyStandard))
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if started.SessionID == "" {
		t.Fatal("StartSession returned empty session ID")
	}

	turn, err := eng.ProcessTurn(ctx, TurnRequest{SessionID: started.SessionID, Message: "How many trucks are you running today?"})
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if turn.Reply != llm.reply {
		t.Errorf("Reply = %q, want generator output", turn.Reply)
	}
	if turn.Status != StatusActive {
		t.Errorf("Status = %s, want active", turn.Status)
	}
	if turn.Phase != PhaseDiscovery {
		t.Errorf("Phase = %s, want discovery after an opening question", turn.Phase)
	}

	history, err := eng.GetHistory(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d turns, want rep + prospect", len(history))
	}
	if history[0].Speaker != SpeakerRep || history[1].Speaker != SpeakerProspect {
		t.Errorf("speakers = %s, %s", history[0].Speaker, history[1].Speaker)
	}

	ended, err := eng.EndSession(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if ended.Status != StatusCompleted {
		t.Errorf("end status = %s, want completed", ended.Status)
	}
	if len(ended.Transcript) != 2 {
		t.Errorf("transcript has %d turns, want 2", len(ended.Transcript))
	}

	if _, err := eng.ProcessTurn(ctx, TurnRequest{SessionID: started.SessionID, Message: "One more thing?"}); !errors.Is(err, ErrSessionEnded) {
		t.Errorf("turn after end = %v, want ErrSessionEnded", err)
	}
}

func TestEngineUnknownSession(t *testing.T) {
	eng := testEngine(t, &stubLLM{reply: "ok"})
	_, err := eng.ProcessTurn(context.Background(), TurnRequest{SessionID: "nope", Message: "hi"})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestEngineRejectsInvalidScenario(t *testing.T) {
	eng := testEngine(t, &stubLLM{reply: "ok"})
	req := startRequest(persona.DifficultyStandard)
	req.Persona.Level = "intern"
	if _, err := eng.StartSession(context.Background(), req); !errors.Is(err, persona.ErrUnknownRoleLevel) {
		t.Errorf("err = %v, want ErrUnknownRoleLevel", err)
	}
}

func TestEngineFallsBackToCannedReply(t *testing.T) {
	llm := &stubLLM{err: errors.New("provider unavailable")}
	eng := testEngine(t, llm)
	ctx := context.Background()

	started, err := eng.StartSession(ctx, startRequest(persona.DifficultyStandard))
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	turn, err := eng.ProcessTurn(ctx, TurnRequest{SessionID: started.SessionID, Message: "How many trucks do you run?"})
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if turn.Reply != CannedReply(persona.RoleManager) {
		t.Errorf("Reply = %q, want the manager canned line", turn.Reply)
	}
	if turn.Status != StatusActive {
		t.Error("generation failure must not kill the session")
	}
}

func TestEngineHangupEndsSession(t *testing.T) {
	llm := &stubLLM{reply: "I'm done here. *click*"}
	eng := testEngine(t, llm)
	ctx := context.Background()

	req := startRequest(persona.DifficultyBrutal)
	req.Persona = persona.Config{Name: "Marcus", Level: persona.RoleCLevel, Archetype: persona.ArchetypeHostileCTO}
	started, err := eng.StartSession(ctx, req)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	turn, err := eng.ProcessTurn(ctx, TurnRequest{
		SessionID: started.SessionID,
		Message:   "Our cutting-edge platform helps you revolutionize operations.",
	})
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if turn.Status != StatusHungUp {
		t.Fatalf("Status = %s, want hung_up", turn.Status)
	}
	if turn.HangupReason == "" {
		t.Error("hangup response missing the reason")
	}

	ended, err := eng.EndSession(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if ended.Status != StatusHungUp {
		t.Errorf("end status = %s, hangup must not be overwritten by completed", ended.Status)
	}
	// The exit line stays on the transcript so scoring sees how the call died.
	last := ended.Transcript[len(ended.Transcript)-1]
	if last.Speaker != SpeakerProspect || last.Message != llm.reply {
		t.Errorf("transcript does not end with the prospect exit line: %+v", last)
	}
}

func TestEngineHistoryWindowAndRoles(t *testing.T) {
	llm := &stubLLM{reply: "Mostly spreadsheets, honestly."}
	eng := testEngine(t, llm)
	ctx := context.Background()

	started, err := eng.StartSession(ctx, startRequest(persona.DifficultyStandard))
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := eng.ProcessTurn(ctx, TurnRequest{SessionID: started.SessionID, Message: "Tell me more about that?"}); err != nil {
			t.Fatalf("ProcessTurn %d: %v", i, err)
		}
	}

	llm.mu.Lock()
	req := llm.lastReq
	llm.mu.Unlock()

	if len(req.Messages) > historyWindow {
		t.Errorf("generator saw %d messages, window is %d", len(req.Messages), historyWindow)
	}
	if req.Directive == "" {
		t.Error("generator request missing the directive")
	}
	for _, msg := range req.Messages {
		if msg.Role != ChatRoleUser && msg.Role != ChatRoleAssistant {
			t.Errorf("unexpected chat role %q", msg.Role)
		}
	}
}

func TestEngineWritesSnapshots(t *testing.T) {
	store := NewMemorySessionStore()
	llm := &stubLLM{reply: "Forty trucks, give or take."}
	eng := testEngine(t, llm, WithSessionStore(store))
	ctx := context.Background()

	started, err := eng.StartSession(ctx, startRequest(persona.DifficultyStandard))
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := eng.ProcessTurn(ctx, TurnRequest{SessionID: started.SessionID, Message: "How many trucks do you run?"}); err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	snap, err := store.Load(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Status != StatusActive {
		t.Errorf("snapshot status = %s, want active", snap.Status)
	}
	if len(snap.Memory.History) != 2 {
		t.Errorf("snapshot history has %d turns, want 2", len(snap.Memory.History))
	}
}

// gateLLM blocks its first completion until released so tests can hold a
// session mid-generation while other calls contend for it.
type gateLLM struct {
	stubLLM
	entered chan struct{}
	release chan struct{}
	first   sync.Once
}

func (g *gateLLM) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	gated := false
	g.first.Do(func() { gated = true })
	if gated {
		close(g.entered)
		<-g.release
	}
	return g.stubLLM.Complete(ctx, req)
}

func TestEngineSerializesConcurrentTurns(t *testing.T) {
	llm := &stubLLM{reply: "Mostly spreadsheets and a lot of phone calls."}
	eng := NewEngine(persona.NewRegistry(), llm, logging.NewWithWriter("error", testWriter{t}))
	ctx := context.Background()

	started, err := eng.StartSession(ctx, startRequest(persona.DifficultyStandard))
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	const turns = 8
	var wg sync.WaitGroup
	errs := make(chan error, turns)
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := eng.ProcessTurn(ctx, TurnRequest{
				SessionID: started.SessionID,
				Message:   "How are you planning routes today, variant " + strings.Repeat("x", n+1) + "?",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("ProcessTurn: %v", err)
		}
	}

	history, err := eng.GetHistory(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 2*turns {
		t.Fatalf("history has %d turns, want %d", len(history), 2*turns)
	}
	seen := map[string]bool{}
	for i, turn := range history {
		want := SpeakerRep
		if i%2 == 1 {
			want = SpeakerProspect
		}
		if turn.Speaker != want {
			t.Fatalf("turn %d speaker = %q, want %q: each rep turn must be followed by its reply", i, turn.Speaker, want)
		}
		if turn.Speaker == SpeakerRep {
			if seen[turn.Message] {
				t.Fatalf("rep message recorded twice: %q", turn.Message)
			}
			seen[turn.Message] = true
		}
	}
	if len(seen) != turns {
		t.Fatalf("recorded %d distinct rep turns, want %d", len(seen), turns)
	}
}

func TestEngineInboundGreetingSerializedWithTurns(t *testing.T) {
	llm := &gateLLM{
		stubLLM: stubLLM{reply: "Hi, I saw your pricing page and had a question."},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	eng := NewEngine(persona.NewRegistry(), llm, logging.NewWithWriter("error", testWriter{t}))
	ctx := context.Background()

	req := startRequest(persona.DifficultyStandard)
	req.SessionID = "sim_inbound_gate"
	req.CallType = persona.CallInboundInquiry

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := eng.StartSession(ctx, req); err != nil {
			t.Errorf("StartSession: %v", err)
		}
	}()

	// The session is in the map and the greeting is mid-generation; a turn
	// for the same session must wait for it.
	<-llm.entered
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := eng.ProcessTurn(ctx, TurnRequest{
			SessionID: "sim_inbound_gate",
			Message:   "Happy to help. What were you looking at?",
		})
		if err != nil {
			t.Errorf("ProcessTurn: %v", err)
		}
	}()
	close(llm.release)
	wg.Wait()

	history, err := eng.GetHistory(ctx, "sim_inbound_gate")
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history has %d turns, want 3 (greeting, rep turn, reply)", len(history))
	}
	if history[0].Speaker != SpeakerProspect || history[0].Message != llm.reply {
		t.Fatalf("history[0] = %q by %q, want the inbound greeting first", history[0].Message, history[0].Speaker)
	}
	if history[1].Speaker != SpeakerRep {
		t.Fatalf("history[1] speaker = %q, want rep", history[1].Speaker)
	}
	if history[2].Speaker != SpeakerProspect {
		t.Fatalf("history[2] speaker = %q, want prospect", history[2].Speaker)
	}
}
