package scores

import (
	"context"
	"fmt"
	"sync"
)

var ErrDuplicate = fmt.Errorf("session already recorded")

// Store persists the results of won games, keeping the newest [MaxRecords].
type Store interface {
	Append(ctx context.Context, r Record) error
	Recent(ctx context.Context) (Log, error)
}

type MemoryStore struct {
	mu  sync.Mutex
	log Log
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.log.Contains(r.SessionID) {
		return ErrDuplicate
	}
	s.log = s.log.Push(r)
	return nil
}

func (s *MemoryStore) Recent(_ context.Context) (Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append(Log(nil), s.log...), nil
}
