package app

import (
	"context"
	"time"

	"tester-quiz-service/internal/domain"
)

// ProgressStore is the caller-held session store: it keeps a TestProgress
// value and its deadline between two engine calls, keyed by an opaque
// session token. The engine itself never reads or writes it; the host layer
// owns its lifetime.
type ProgressStore interface {
	Save(ctx context.Context, token string, progress domain.TestProgress, deadline time.Time) error
	Load(ctx context.Context, token string) (domain.TestProgress, time.Time, bool, error)
	Delete(ctx context.Context, token string) error
}
