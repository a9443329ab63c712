package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"tester-quiz-service/internal/domain"
)

// TestLoader reads tests out of the legacy relational deployment, where each
// test lives as one JSONB row. It exists for the one-shot import into the
// file-backed catalog, not as an alternate store.
type TestLoader struct {
	pool *pgxpool.Pool
}

func NewTestLoader(pool *pgxpool.Pool) *TestLoader {
	return &TestLoader{pool: pool}
}

// LoadAll returns every test stored in the legacy table.
func (l *TestLoader) LoadAll(ctx context.Context) ([]domain.Test, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM tests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tests: %w", err)
	}
	defer rows.Close()

	var tests []domain.Test
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan test: %w", err)
		}
		var test domain.Test
		if err := json.Unmarshal(raw, &test); err != nil {
			return nil, fmt.Errorf("unmarshal test: %w", err)
		}
		tests = append(tests, test)
	}
	return tests, rows.Err()
}

// LoadTest returns a single test by id.
func (l *TestLoader) LoadTest(ctx context.Context, id string) (domain.Test, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM tests WHERE id=$1`, id).Scan(&raw)
	if err != nil {
		return domain.Test{}, fmt.Errorf("load test: %w", err)
	}
	var test domain.Test
	if err := json.Unmarshal(raw, &test); err != nil {
		return domain.Test{}, fmt.Errorf("unmarshal test: %w", err)
	}
	return test, nil
}
