package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var storeTracer = otel.Tracer("salestrainer.internal.simulation.store")

// ErrSnapshotNotFound is returned when no snapshot exists for a session.
var ErrSnapshotNotFound = errors.New("simulation: snapshot not found")

// Snapshot is the persisted view of a session after each turn. It holds
// everything the scoring pipeline needs to replay the call.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Status    Status    `json:"status"`
	State     State     `json:"state"`
	Memory    Memory    `json:"memory"`
	StartedAt time.Time `json:"started_at"`
}

// SessionStore persists session snapshots across process restarts.
type SessionStore interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, sessionID string) (Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps snapshots in Redis under a TTL so abandoned
// sessions expire on their own.
type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSessionStore creates a store. TTL <= 0 defaults to 24h.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if client == nil {
		panic("simulation: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{
		client:    client,
		keyPrefix: "salestrainer:session:",
		ttl:       ttl,
	}
}

func (s *RedisSessionStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

func (s *RedisSessionStore) Save(ctx context.Context, snap Snapshot) error {
	ctx, span := storeTracer.Start(ctx, "session_store.save")
	defer span.End()
	span.SetAttributes(attribute.String("salestrainer.session_id", snap.SessionID))

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("simulation: marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key(snap.SessionID), payload, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("simulation: save snapshot: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (Snapshot, error) {
	ctx, span := storeTracer.Start(ctx, "session_store.load")
	defer span.End()
	span.SetAttributes(attribute.String("salestrainer.session_id", sessionID))

	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, sessionID)
	}
	if err != nil {
		span.RecordError(err)
		return Snapshot{}, fmt.Errorf("simulation: load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("simulation: unmarshal snapshot: %w", err)
	}
	return snap, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("simulation: delete snapshot: %w", err)
	}
	return nil
}

// MemorySessionStore is a process-local store for tests and the terminal
// drill binary.
type MemorySessionStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{snaps: make(map[string]Snapshot)}
}

func (s *MemorySessionStore) Save(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.SessionID] = snap
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[sessionID]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, sessionID)
	}
	return snap, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, sessionID)
	return nil
}
