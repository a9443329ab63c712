package jsonfile

import (
	"sync"

	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
)

// ResultLedger specializes Store[Result] with secondary indexes by user and
// by test, both rebuilt from the store at construction. Results are
// append-only: once saved they are never updated or removed.
type ResultLedger struct {
	store *Store[domain.Result]

	mu     sync.RWMutex
	byUser map[uuid.UUID][]domain.Result
	byTest map[uuid.UUID][]domain.Result
	total  int
}

// NewResultLedger opens (or initializes) the results aggregate file at path.
func NewResultLedger(path string) (*ResultLedger, error) {
	store := NewStore[domain.Result](path, "results")
	all, err := store.FindAll()
	if err != nil {
		return nil, err
	}
	l := &ResultLedger{
		store:  store,
		byUser: make(map[uuid.UUID][]domain.Result),
		byTest: make(map[uuid.UUID][]domain.Result),
		total:  len(all),
	}
	for _, r := range all {
		l.byUser[r.UserID] = append(l.byUser[r.UserID], r)
		l.byTest[r.TestID] = append(l.byTest[r.TestID], r)
	}
	return l, nil
}

// Save appends a finalized result and updates both indexes in the same
// critical section.
func (l *ResultLedger) Save(result domain.Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Add(result); err != nil {
		return err
	}
	l.byUser[result.UserID] = append(l.byUser[result.UserID], result)
	l.byTest[result.TestID] = append(l.byTest[result.TestID], result)
	l.total++
	return nil
}

// AllByUserID returns every result of one user in save order. Unknown ids
// yield an empty sequence.
func (l *ResultLedger) AllByUserID(id uuid.UUID) []domain.Result {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return snapshot(l.byUser[id])
}

// AllByTestID returns every result for one test in save order. Unknown ids
// yield an empty sequence.
func (l *ResultLedger) AllByTestID(id uuid.UUID) []domain.Result {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return snapshot(l.byTest[id])
}

// Count returns the total number of stored results.
func (l *ResultLedger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}
