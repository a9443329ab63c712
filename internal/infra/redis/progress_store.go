package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"tester-quiz-service/internal/domain"
)

// ProgressStore keeps caller-held session state in Redis so a test-taking
// session survives a reconnect (or another instance picking it up). Entries
// expire together with the session deadline.
type ProgressStore struct {
	client *redis.Client
}

type storedProgress struct {
	Progress domain.TestProgress `json:"progress"`
	Deadline time.Time           `json:"deadline"`
}

func NewProgressStore(client *redis.Client) *ProgressStore {
	return &ProgressStore{client: client}
}

func (s *ProgressStore) Save(ctx context.Context, token string, progress domain.TestProgress, deadline time.Time) error {
	ttl := time.Until(deadline)
	if ttl <= 0 {
		return s.Delete(ctx, token)
	}
	data, err := json.Marshal(storedProgress{Progress: progress, Deadline: deadline})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(token), data, ttl).Err()
}

func (s *ProgressStore) Load(ctx context.Context, token string) (domain.TestProgress, time.Time, bool, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.TestProgress{}, time.Time{}, false, nil
	}
	if err != nil {
		return domain.TestProgress{}, time.Time{}, false, err
	}
	var stored storedProgress
	if err := json.Unmarshal(data, &stored); err != nil {
		return domain.TestProgress{}, time.Time{}, false, err
	}
	return stored.Progress, stored.Deadline, true, nil
}

func (s *ProgressStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *ProgressStore) key(token string) string {
	return "test:progress:" + token
}
