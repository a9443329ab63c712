package jsonfile

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
)

func newTestDirectory(t *testing.T, now *time.Time) *UserDirectory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	dir, err := NewUserDirectoryWithClock(path, 5, 10*time.Minute, func() time.Time { return *now })
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}
	return dir
}

func TestTryAddRejectsDuplicateUsername(t *testing.T) {
	now := time.Now()
	dir := newTestDirectory(t, &now)

	bob := domain.User{ID: uuid.New(), Username: "bob", PasswordHash: "x", Role: domain.RoleUser}
	if err := dir.TryAdd(bob); err != nil {
		t.Fatalf("first add: %v", err)
	}
	dup := domain.User{ID: uuid.New(), Username: "bob", PasswordHash: "y", Role: domain.RoleUser}
	if err := dir.TryAdd(dup); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	all, _ := dir.FindAll()
	if len(all) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(all))
	}
}

func TestFindByUsername(t *testing.T) {
	now := time.Now()
	dir := newTestDirectory(t, &now)

	if _, ok := dir.FindByUsername(""); ok {
		t.Fatalf("empty name should yield absent, not a hit")
	}
	if _, ok := dir.FindByUsername("ghost"); ok {
		t.Fatalf("unknown name should yield absent")
	}

	alice := domain.User{ID: uuid.New(), Username: "alice", Role: domain.RoleAdmin}
	if err := dir.TryAdd(alice); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, ok := dir.FindByUsername("alice")
	if !ok || got.ID != alice.ID {
		t.Fatalf("expected alice, got %+v ok=%v", got, ok)
	}
}

func TestUsernameIndexRebuiltOnReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	dir, err := NewUserDirectory(path, 5, 10*time.Minute)
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}
	if err := dir.TryAdd(domain.User{ID: uuid.New(), Username: "carol", Role: domain.RoleUser}); err != nil {
		t.Fatalf("add: %v", err)
	}

	reopened, err := NewUserDirectory(path, 5, 10*time.Minute)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, ok := reopened.FindByUsername("carol"); !ok {
		t.Fatalf("expected index rebuilt from file")
	}
}

func TestLockoutAfterFiveFailures(t *testing.T) {
	now := time.Now()
	dir := newTestDirectory(t, &now)

	for i := 0; i < 4; i++ {
		dir.RecordFailedAttempt("bob")
		if dir.IsBlocked("bob") {
			t.Fatalf("blocked too early after %d failures", i+1)
		}
	}
	dir.RecordFailedAttempt("bob")
	if !dir.IsBlocked("bob") {
		t.Fatalf("expected block after 5 consecutive failures")
	}

	// Inside the window even a correct password is rejected upstream.
	now = now.Add(5 * time.Minute)
	if !dir.IsBlocked("bob") {
		t.Fatalf("expected block to hold inside the window")
	}

	// Window elapsed: next attempt is allowed and restarts the counter.
	now = now.Add(6 * time.Minute)
	if dir.IsBlocked("bob") {
		t.Fatalf("expected block lifted after the window")
	}
	dir.RecordFailedAttempt("bob")
	if dir.IsBlocked("bob") {
		t.Fatalf("counter should have restarted at 1 after the window")
	}

	dir.ResetAttempts("bob")
	for i := 0; i < 4; i++ {
		dir.RecordFailedAttempt("bob")
	}
	if dir.IsBlocked("bob") {
		t.Fatalf("reset should have cleared the counter")
	}
}
