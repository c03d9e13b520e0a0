package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/pitchlab/salestrainer/internal/observability/metrics"
	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scenario"
	"github.com/pitchlab/salestrainer/pkg/logging"
)

var engineTracer = otel.Tracer("salestrainer.internal.simulation")

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("simulation: session not found")

// ErrSessionEnded is returned when a turn arrives for a finished session.
var ErrSessionEnded = errors.New("simulation: session already ended")

// historyWindow bounds how many turns are replayed to the text generator.
const historyWindow = 6

const defaultLLMTimeout = 15 * time.Second

// session binds one scenario to its live state. The mutex serializes Advance
// calls so the append-only history invariant holds under concurrent requests.
type session struct {
	mu       sync.Mutex
	id       string
	scenario *scenario.Context
	state    State
	memory   Memory
	status   Status
	started  time.Time
}

// Engine implements Service. Sessions are independent; only the registry and
// collaborators are shared, and those are read-only or internally safe.
type Engine struct {
	registry *persona.Registry
	llm      LLMClient
	store    SessionStore
	logger   *logging.Logger
	metrics  *metrics.EngineMetrics

	params     GenerationParams
	llmTimeout time.Duration

	now   func() time.Time
	newID func() string

	mu       sync.RWMutex
	sessions map[string]*session
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithClock substitutes the timestamp source. Tests use a fixed clock.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator substitutes the turn/session ID source.
func WithIDGenerator(gen func() string) EngineOption {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// WithLLMTimeout bounds each prospect-reply generation.
func WithLLMTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.llmTimeout = d
		}
	}
}

// WithGenerationParams sets the sampling parameters used for every reply.
func WithGenerationParams(p GenerationParams) EngineOption {
	return func(e *Engine) { e.params = p }
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *metrics.EngineMetrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithSessionStore attaches a snapshot store that is written through after
// every turn.
func WithSessionStore(store SessionStore) EngineOption {
	return func(e *Engine) { e.store = store }
}

// NewEngine wires a simulation engine around a persona registry and a text
// generator.
func NewEngine(registry *persona.Registry, llm LLMClient, logger *logging.Logger, opts ...EngineOption) *Engine {
	if registry == nil {
		panic("simulation: registry cannot be nil")
	}
	if llm == nil {
		panic("simulation: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}

	e := &Engine{
		registry:   registry,
		llm:        llm,
		logger:     logger,
		params:     GenerationParams{Model: "", MaxTokens: 256, Temperature: 0.8, TopP: 0.9},
		llmTimeout: defaultLLMTimeout,
		now:        time.Now,
		newID:      uuid.NewString,
		sessions:   make(map[string]*session),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ Service = (*Engine)(nil)

// StartSession validates the scenario tuple and opens a session. Unknown
// persona levels or call types fail here; a session never starts on defaults.
func (e *Engine) StartSession(ctx context.Context, req StartRequest) (*StartResponse, error) {
	ctx, span := engineTracer.Start(ctx, "simulation.start_session")
	defer span.End()

	sc, err := scenario.New(e.registry, req.Persona, req.Business, req.Product, req.CallType, req.Difficulty)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	id := req.SessionID
	if id == "" {
		id = fmt.Sprintf("sim_%s", e.newID())
	}
	span.SetAttributes(
		attribute.String("salestrainer.session_id", id),
		attribute.String("salestrainer.call_type", string(req.CallType)),
		attribute.Int("salestrainer.difficulty", int(req.Difficulty)),
	)

	s := &session{
		id:       id,
		scenario: sc,
		state:    NewState(),
		memory:   NewMemory(),
		status:   StatusActive,
		started:  e.now(),
	}

	e.mu.Lock()
	if _, exists := e.sessions[id]; exists {
		e.mu.Unlock()
		return nil, fmt.Errorf("simulation: session %q already exists", id)
	}
	e.sessions[id] = s
	e.mu.Unlock()

	e.metrics.ObserveSessionStart(string(req.CallType), sc.Difficulty.Label)
	e.logger.Info("simulation session started",
		"session_id", id,
		"call_type", req.CallType,
		"difficulty", req.Difficulty,
		"persona_level", req.Persona.Level,
		"archetype", req.Persona.EffectiveArchetype(),
	)

	resp := &StartResponse{SessionID: id, StartedAt: s.started}

	// The session is already visible in the map, so the greeting must hold
	// the session lock like any other state mutation.
	s.mu.Lock()
	if req.CallType == persona.CallInboundInquiry {
		// Inbound calls open with the prospect speaking first.
		resp.Greeting = e.generateOpening(ctx, s)
	}
	e.persist(ctx, s)
	s.mu.Unlock()

	return resp, nil
}

// ProcessTurn runs one rep utterance through the state machine, asks the text
// generator for the prospect reply, and folds the reply back into memory.
// Turns for the same session are strictly serialized.
func (e *Engine) ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	ctx, span := engineTracer.Start(ctx, "simulation.process_turn")
	defer span.End()

	s, err := e.lookup(req.SessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return nil, fmt.Errorf("%w: %s", ErrSessionEnded, s.id)
	}

	turn := Turn{
		ID:        e.newID(),
		Message:   req.Message,
		Timestamp: e.now(),
	}

	state, mem, directive := Advance(s.scenario, s.state, s.memory, turn)
	s.state = state
	s.memory = mem

	if directive.Terminal {
		s.status = StatusHungUp
		for _, trigger := range state.HangupTriggers {
			e.metrics.ObserveHangup(trigger)
		}
		e.metrics.ObserveTurn("hangup")
		e.logger.Info("simulated prospect hung up",
			"session_id", s.id,
			"reason", state.HangupReason,
			"triggers", state.HangupTriggers,
		)

		exitLine := e.generateReply(ctx, s, directive)
		s.state, s.memory = forceAppendProspect(s.state, s.memory, Turn{
			ID:        e.newID(),
			Message:   exitLine,
			Timestamp: e.now(),
		})
		e.persist(ctx, s)
		return &TurnResponse{
			SessionID:    s.id,
			Reply:        exitLine,
			Phase:        s.state.Phase,
			Status:       StatusHungUp,
			HangupReason: state.HangupReason,
			Timestamp:    e.now(),
		}, nil
	}

	reply := e.generateReply(ctx, s, directive)
	replyTurn := Turn{
		ID:        e.newID(),
		Message:   reply,
		Timestamp: e.now(),
	}
	s.state, s.memory = ObserveProspectReply(s.scenario, s.state, s.memory, replyTurn)

	e.metrics.ObserveTurn("ok")
	e.persist(ctx, s)

	return &TurnResponse{
		SessionID:     s.id,
		Reply:         reply,
		Phase:         s.state.Phase,
		Status:        StatusActive,
		ResponseDelay: directive.ResponseDelay,
		Timestamp:     e.now(),
	}, nil
}

// EndSession closes an active session normally and returns the transcript.
// Ending an already hung-up session is allowed and preserves its status.
func (e *Engine) EndSession(ctx context.Context, sessionID string) (*EndResponse, error) {
	s, err := e.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusActive {
		s.status = StatusCompleted
	}
	e.persist(ctx, s)

	e.logger.Info("simulation session ended",
		"session_id", s.id,
		"status", s.status,
		"turns", len(s.memory.History),
	)

	return &EndResponse{
		SessionID:  s.id,
		Status:     s.status,
		Transcript: append([]Turn(nil), s.memory.History...),
		State:      s.state,
		Memory:     s.memory,
	}, nil
}

// GetHistory returns the transcript so far.
func (e *Engine) GetHistory(ctx context.Context, sessionID string) ([]Turn, error) {
	s, err := e.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Turn(nil), s.memory.History...), nil
}

func (e *Engine) lookup(id string) (*session, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// generateReply calls the text generator under a timeout and falls back to a
// persona-level canned line on any failure. Generation failures are
// recoverable by design; a session never dies because a provider did.
func (e *Engine) generateReply(ctx context.Context, s *session, directive Directive) string {
	ctx, cancel := context.WithTimeout(ctx, e.llmTimeout)
	defer cancel()

	start := e.now()
	resp, err := e.llm.Complete(ctx, LLMRequest{
		Directive: directive.Text,
		Messages:  chatWindow(s.memory),
		Params:    e.params,
	})
	elapsed := e.now().Sub(start).Seconds()

	if err != nil || resp.Text == "" {
		e.metrics.ObserveLLMLatency("fallback", elapsed)
		if err != nil {
			e.logger.Warn("prospect reply generation failed, using canned line",
				"session_id", s.id, "error", err)
		}
		return CannedReply(s.scenario.Persona.Level)
	}

	e.metrics.ObserveLLMLatency("success", elapsed)
	return resp.Text
}

func (e *Engine) generateOpening(ctx context.Context, s *session) string {
	directive := Directive{Text: CompileDirective(s.scenario, s.state) +
		"\nOpen the call yourself: you asked for this conversation. One or two sentences."}
	greeting := e.generateReply(ctx, s, directive)
	s.state, s.memory = ObserveProspectReply(s.scenario, s.state, s.memory, Turn{
		ID:        e.newID(),
		Message:   greeting,
		Timestamp: e.now(),
	})
	return greeting
}

// chatWindow maps the recent transcript into provider-neutral messages. The
// prospect is the assistant; the rep is the user.
func chatWindow(mem Memory) []ChatMessage {
	recent := mem.RecentHistory(historyWindow)
	out := make([]ChatMessage, 0, len(recent))
	for _, turn := range recent {
		role := ChatRoleUser
		if turn.Speaker == SpeakerProspect {
			role = ChatRoleAssistant
		}
		out = append(out, ChatMessage{Role: role, Content: turn.Message})
	}
	return out
}

// forceAppendProspect records the hangup exit line even though the state
// machine is terminal: the transcript should show how the call ended.
func forceAppendProspect(state State, mem Memory, turn Turn) (State, Memory) {
	turn.Speaker = SpeakerProspect
	turn.Phase = state.Phase
	mem.History = append(append([]Turn(nil), mem.History...), turn)
	return state, mem
}

func (e *Engine) persist(ctx context.Context, s *session) {
	if e.store == nil {
		return
	}
	snapshot := Snapshot{
		SessionID: s.id,
		Status:    s.status,
		State:     s.state,
		Memory:    s.memory,
		StartedAt: s.started,
	}
	if err := e.store.Save(ctx, snapshot); err != nil {
		e.logger.Warn("failed to persist session snapshot", "session_id", s.id, "error", err)
	}
}
