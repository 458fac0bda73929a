package share

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps state in a map. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (s *MemoryStore) Get(ctx context.Context, formID string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[formID]
	if !ok {
		return State{}, ErrUnknownForm
	}
	return state, nil
}

func (s *MemoryStore) SetPublic(ctx context.Context, formID string, public bool, at time.Time) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{FormID: formID, Public: public, UpdatedAt: at}
	s.states[formID] = state
	return state, nil
}
