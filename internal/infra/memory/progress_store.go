package memory

import (
	"context"
	"sync"
	"time"

	"tester-quiz-service/internal/domain"
)

type entry struct {
	progress domain.TestProgress
	deadline time.Time
}

// ProgressStore is an in-process implementation of app.ProgressStore, used
// when no redis is configured.
type ProgressStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{entries: make(map[string]entry)}
}

func (s *ProgressStore) Save(_ context.Context, token string, progress domain.TestProgress, deadline time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = entry{progress: progress, deadline: deadline}
	return nil
}

func (s *ProgressStore) Load(_ context.Context, token string) (domain.TestProgress, time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[token]
	if !ok {
		return domain.TestProgress{}, time.Time{}, false, nil
	}
	return e.progress, e.deadline, true, nil
}

func (s *ProgressStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
