package formstate

import (
	"context"
	"maps"
	"sync"
)

// Store persists published states keyed by form and session.
type Store interface {
	// Load returns ErrStateNotFound when nothing was saved for the session.
	Load(ctx context.Context, form, session string) (State, error)
	Save(ctx context.Context, st State) error
}

// MemoryStore keeps states in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[stateKey]State
}

type stateKey struct {
	form, session string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[stateKey]State)}
}

func (s *MemoryStore) Load(_ context.Context, form, session string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[stateKey{form, session}]
	if !ok {
		return State{}, ErrStateNotFound
	}
	st.Errors = maps.Clone(st.Errors)
	return st, nil
}

func (s *MemoryStore) Save(_ context.Context, st State) error {
	st.Errors = maps.Clone(st.Errors)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[stateKey{st.Form, st.Session}] = st
	return nil
}

// Delete forgets the state of a session.
func (s *MemoryStore) Delete(_ context.Context, form, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, stateKey{form, session})
	return nil
}
