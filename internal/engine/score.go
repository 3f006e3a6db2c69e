package engine

import (
	"math"
	"time"

	"github.com/academix/examsim/internal/model"
)

// computeResult scores a frozen session. An unanswered question counts as
// not correct but is tracked separately; there is no partial credit.
//
//	score              = correct answers
//	incorrect          = answered − correct
//	unanswered         = total − answered
//	percentageAnswered = round(100 · answered / total)
func computeResult(sess *model.ExamSession) model.ExamResult {
	total := len(sess.Questions)
	answered := 0
	correct := 0

	for _, q := range sess.Questions {
		selected, ok := sess.Answers[q.ID]
		if !ok {
			continue
		}
		answered++

		if correctID, hasKey := q.CorrectOptionID(); hasKey && selected == correctID {
			correct++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(answered) / float64(total)))
	}

	return model.ExamResult{
		SimulatorID:         sess.SimulatorID,
		Score:               correct,
		TotalQuestions:      total,
		TotalAnswered:       answered,
		CorrectAnswers:      correct,
		IncorrectAnswers:    answered - correct,
		UnansweredQuestions: total - answered,
		PercentageAnswered:  percentage,
		TimeSpentSeconds:    sess.TimeSpentSeconds,
		FinishedAt:          time.Now(),
	}
}
