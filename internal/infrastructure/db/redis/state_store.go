package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cateringworks/lunchbot/internal/core/domain"
	"github.com/cateringworks/lunchbot/internal/core/ports"
)

// defaultStateTTL bounds how long idle conversation state survives.
const defaultStateTTL = 72 * time.Hour

// StateStore keeps per-conversation records in Redis. Within a turn, reads
// and writes go through an in-memory record so the turn sees its own writes;
// nothing reaches Redis until Flush. Each record carries its own mutex so
// concurrent turns for the same scope serialize on it and resolve
// last-writer-wins; s.mu only guards the map itself.
type StateStore struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	turns map[ports.Scope]*turnState
}

type turnState struct {
	mu        sync.Mutex
	user      *domain.User
	auth      domain.AuthState
	dirtyUser bool
	dirtyAuth bool
}

func NewStateStore(client *redis.Client, ttl time.Duration) *StateStore {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &StateStore{
		client: client,
		ttl:    ttl,
		turns:  make(map[ports.Scope]*turnState),
	}
}

func userKey(scope ports.Scope) string {
	return fmt.Sprintf("state:%s:%s:user", scope.ConversationID, scope.UserID)
}

func authKey(scope ports.Scope) string {
	return fmt.Sprintf("state:%s:%s:auth", scope.ConversationID, scope.UserID)
}

func (s *StateStore) turn(scope ports.Scope) *turnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.turns[scope]
	if !ok {
		st = &turnState{}
		s.turns[scope] = st
	}
	return st
}

// User returns the order state for scope, loading it from Redis on first
// access and creating a fresh record when none exists yet.
func (s *StateStore) User(ctx context.Context, scope ports.Scope) (*domain.User, error) {
	st := s.turn(scope)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.user != nil {
		return st.user, nil
	}

	raw, err := s.client.Get(ctx, userKey(scope)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		st.user = &domain.User{ID: scope.UserID}
		return st.user, nil
	case err != nil:
		return nil, fmt.Errorf("load user state: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode user state: %w", err)
	}
	st.user = &user
	return st.user, nil
}

func (s *StateStore) SetUser(ctx context.Context, scope ports.Scope, user *domain.User) error {
	st := s.turn(scope)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.user = user
	st.dirtyUser = true
	return nil
}

// AuthState returns the pending-auth tag for scope, defaulting to AuthIdle.
func (s *StateStore) AuthState(ctx context.Context, scope ports.Scope) (domain.AuthState, error) {
	st := s.turn(scope)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.auth != "" {
		return st.auth, nil
	}

	raw, err := s.client.Get(ctx, authKey(scope)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		st.auth = domain.AuthIdle
		return st.auth, nil
	case err != nil:
		return "", fmt.Errorf("load auth state: %w", err)
	}

	st.auth = domain.AuthState(raw)
	return st.auth, nil
}

func (s *StateStore) SetAuthState(ctx context.Context, scope ports.Scope, state domain.AuthState) error {
	st := s.turn(scope)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.auth = state
	st.dirtyAuth = true
	return nil
}

// Flush writes the turn's dirty records to Redis and drops the in-memory
// record for scope. The turn record is dropped even when the write fails, so
// a later turn starts from the durable truth.
func (s *StateStore) Flush(ctx context.Context, scope ports.Scope) error {
	s.mu.Lock()
	st, ok := s.turns[scope]
	delete(s.turns, scope)
	s.mu.Unlock()

	if !ok {
		return nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !st.dirtyUser && !st.dirtyAuth {
		return nil
	}

	pipe := s.client.TxPipeline()
	if st.dirtyUser && st.user != nil {
		raw, err := json.Marshal(st.user)
		if err != nil {
			return fmt.Errorf("encode user state: %w", err)
		}
		pipe.Set(ctx, userKey(scope), raw, s.ttl)
	}
	if st.dirtyAuth {
		pipe.Set(ctx, authKey(scope), string(st.auth), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("flush state: %w", err)
	}
	return nil
}
