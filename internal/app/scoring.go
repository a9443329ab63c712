package app

import (
	"github.com/google/uuid"

	"tester-quiz-service/internal/domain"
)

// IsCorrect reports whether the selected answer set exactly equals the
// correct answer set. No partial credit: selecting every correct answer plus
// one extra wrong answer scores the question as incorrect.
func IsCorrect(correctIDs, selectedIDs []uuid.UUID) bool {
	correct := toIDSet(correctIDs)
	selected := toIDSet(selectedIDs)
	if len(correct) != len(selected) {
		return false
	}
	for id := range correct {
		if _, ok := selected[id]; !ok {
			return false
		}
	}
	return true
}

// ScoreResult sums one point per answered question whose selection matches
// the correct set exactly, yielding an integer in [0, questionCount].
func ScoreResult(answered []domain.AnsweredQuestion) int {
	score := 0
	for _, aq := range answered {
		selected := make([]uuid.UUID, 0, len(aq.SelectedAnswers))
		for _, a := range aq.SelectedAnswers {
			selected = append(selected, a.ID)
		}
		if IsCorrect(aq.Question.CorrectAnswerIDs(), selected) {
			score++
		}
	}
	return score
}

func toIDSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
