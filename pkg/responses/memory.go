package responses

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps submissions in process. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]Record), now: time.Now}
}

func (s *MemoryStore) Submit(ctx context.Context, record Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	record, err := prepare(record, s.now)
	if err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.FormID] = append(s.records[record.FormID], record)
	return record, nil
}

func (s *MemoryStore) List(ctx context.Context, formID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := append([]Record(nil), s.records[formID]...)
	s.mu.RUnlock()

	newestFirst(out)
	return out, nil
}
