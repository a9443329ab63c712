package jsonfile

import (
	"sync"
	"time"

	"tester-quiz-service/internal/domain"
)

// UserDirectory specializes Store[User] with a username index and a
// non-persisted failed-login ledger. The index is rebuilt from the store at
// construction and maintained in the same critical section as every write.
type UserDirectory struct {
	store *Store[domain.User]

	mu         sync.RWMutex
	byUsername map[string]domain.User

	lockMu       sync.Mutex
	maxAttempts  int
	window       time.Duration
	clock        func() time.Time
	attempts     map[string]int
	blockedUntil map[string]time.Time
}

// NewUserDirectory opens (or initializes) the users aggregate file at path.
// maxAttempts consecutive failed logins block a username for window.
func NewUserDirectory(path string, maxAttempts int, window time.Duration) (*UserDirectory, error) {
	return NewUserDirectoryWithClock(path, maxAttempts, window, time.Now)
}

// NewUserDirectoryWithClock allows deterministic lockout timing in tests.
func NewUserDirectoryWithClock(path string, maxAttempts int, window time.Duration, now func() time.Time) (*UserDirectory, error) {
	store := NewStore[domain.User](path, "users")
	all, err := store.FindAll()
	if err != nil {
		return nil, err
	}
	index := make(map[string]domain.User, len(all))
	for _, u := range all {
		index[u.Username] = u
	}
	return &UserDirectory{
		store:        store,
		byUsername:   index,
		maxAttempts:  maxAttempts,
		window:       window,
		clock:        now,
		attempts:     make(map[string]int),
		blockedUntil: make(map[string]time.Time),
	}, nil
}

// FindAll returns all registered users.
func (d *UserDirectory) FindAll() ([]domain.User, error) {
	return d.store.FindAll()
}

// FindByUsername looks a user up by name. An empty name yields absent.
func (d *UserDirectory) FindByUsername(name string) (domain.User, bool) {
	if name == "" {
		return domain.User{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byUsername[name]
	return u, ok
}

// TryAdd inserts user unless the username is taken. Check and insert run
// under one lock, so concurrent registrations of the same name cannot both
// succeed.
func (d *UserDirectory) TryAdd(user domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byUsername[user.Username]; exists {
		return domain.ErrDuplicateUsername
	}
	if err := d.store.Add(user); err != nil {
		return err
	}
	d.byUsername[user.Username] = user
	return nil
}

// IsBlocked reports whether the username is inside an active lockout window.
// An elapsed window is cleared, so the next attempt starts a fresh counter.
func (d *UserDirectory) IsBlocked(username string) bool {
	d.lockMu.Lock()
	defer d.lockMu.Unlock()
	until, ok := d.blockedUntil[username]
	if !ok {
		return false
	}
	if d.clock().Before(until) {
		return true
	}
	delete(d.blockedUntil, username)
	return false
}

// RecordFailedAttempt bumps the per-username failure counter; on the
// maxAttempts-th consecutive failure the username is blocked for the
// configured window and the counter resets.
func (d *UserDirectory) RecordFailedAttempt(username string) {
	d.lockMu.Lock()
	defer d.lockMu.Unlock()
	n := d.attempts[username] + 1
	if n >= d.maxAttempts {
		d.blockedUntil[username] = d.clock().Add(d.window)
		delete(d.attempts, username)
		return
	}
	d.attempts[username] = n
}

// ResetAttempts clears both the counter and any block after a successful
// authentication.
func (d *UserDirectory) ResetAttempts(username string) {
	d.lockMu.Lock()
	defer d.lockMu.Unlock()
	delete(d.attempts, username)
	delete(d.blockedUntil, username)
}
