package app

import (
	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
	"tester-quiz-service/internal/infra/jsonfile"
)

// ResultService exposes the result ledger to the host layer: persisting
// finalized results, per-user history, and per-test statistics.
type ResultService struct {
	ledger *jsonfile.ResultLedger
}

// TestStats aggregates all attempts at one test.
type TestStats struct {
	TestID       uuid.UUID `json:"testId"`
	Attempts     int       `json:"attempts"`
	AverageScore float64   `json:"averageScore"`
}

func NewResultService(ledger *jsonfile.ResultLedger) *ResultService {
	return &ResultService{ledger: ledger}
}

// Save persists a finalized result. In-progress results are rejected.
func (s *ResultService) Save(result domain.Result) error {
	if result.Score == nil {
		return domain.ErrResultNotFinalized
	}
	return s.ledger.Save(result)
}

// HistoryByUser returns one user's results in the order they were saved.
func (s *ResultService) HistoryByUser(userID uuid.UUID) []domain.Result {
	return s.ledger.AllByUserID(userID)
}

// StatsByTest aggregates every attempt at one test. A test nobody has taken
// yields zero attempts, not an error.
func (s *ResultService) StatsByTest(testID uuid.UUID) TestStats {
	results := s.ledger.AllByTestID(testID)
	stats := TestStats{TestID: testID, Attempts: len(results)}
	if len(results) == 0 {
		return stats
	}
	sum := 0
	for _, r := range results {
		if r.Score != nil {
			sum += *r.Score
		}
	}
	stats.AverageScore = float64(sum) / float64(len(results))
	return stats
}

// TotalResults returns the ledger-wide result count for the admin view.
func (s *ResultService) TotalResults() int {
	return s.ledger.Count()
}
