package scoring

import (
	"math"

	"formforge/internal/model"
)

// GradeOutcome is a fully scored submission, ready to persist
type GradeOutcome struct {
	Answers    []model.Answer
	Score      int
	TotalMarks int
}

// Grade scores an entire submission against the form's current question set.
//
// Answers citing a question id that is not in questions are skipped; they
// contribute nothing to Score or TotalMarks. Non-scorable questions are kept
// on the Response with zero points but excluded from TotalMarks. Each answer's
// Points is rounded on its own, while Score rounds the sum of the unrounded
// fractional values exactly once — so the sum of the stored per-answer points
// can differ from Score by ±1. That mirrors how results have always been
// reported and is covered by tests.
func Grade(questions []*model.Question, submitted []model.SubmittedAnswer) GradeOutcome {
	byID := make(map[string]*model.Question, len(questions))
	scorable := 0
	for _, q := range questions {
		byID[q.ID] = q
		if q.Type.IsScorable() {
			scorable++
		}
	}

	out := GradeOutcome{TotalMarks: scorable * MaxPoints}

	var total float64
	for _, sa := range submitted {
		q, ok := byID[sa.QuestionID]
		if !ok {
			continue
		}

		var points float64
		if q.Type.IsScorable() {
			points = Score(q, Normalize(q.Type, sa.Value)).Points
		}

		total += points
		out.Answers = append(out.Answers, model.Answer{
			QuestionID: sa.QuestionID,
			Value:      sa.Value,
			Points:     int(math.Round(points)),
		})
	}

	out.Score = int(math.Round(total))
	return out
}
