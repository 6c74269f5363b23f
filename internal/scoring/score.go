package scoring

import (
	"fmt"

	"formforge/internal/model"
)

// MaxPoints is the fixed per-question ceiling, regardless of type or
// sub-item count.
const MaxPoints = 10

// NoAnswer is the display value for a sub-item the respondent left blank
const NoAnswer = "No answer"

// SubItemResult records how one gradable unit inside a question was judged,
// in enough detail for a results view to show "your answer" vs "correct
// answer" without re-deriving anything.
type SubItemResult struct {
	Label     string `json:"label"`     // sub-question text, item text, or blank position
	Submitted string `json:"submitted"` // what the respondent put there, or NoAnswer
	Expected  string `json:"expected"`  // the answer key's value
	Correct   bool   `json:"correct"`
}

// Result is the outcome of scoring one question. Points is the unrounded
// fractional value in [0, MaxPoints]; rounding is the aggregator's job.
type Result struct {
	Points   float64         `json:"points"`
	SubItems []SubItemResult `json:"subItems,omitempty"`
}

// Score computes the points for one (question, normalized submission) pair.
// It is a pure function: no I/O, no state, and identical inputs always yield
// identical output. Absent and wrong answers both score zero for the affected
// sub-item; a non-scorable type reaching here scores zero outright.
func Score(q *model.Question, sub Submission) Result {
	switch q.Type {
	case model.QuestionComprehension:
		return scoreComprehension(q, sub)
	case model.QuestionCategorize:
		return scoreCategorize(q, sub)
	case model.QuestionCloze:
		return scoreCloze(q, sub)
	case model.QuestionMultipleChoice:
		return scoreMultipleChoice(q, sub)
	}
	return Result{}
}

func scoreComprehension(q *model.Question, sub Submission) Result {
	k := len(q.SubQuestions)
	if k == 0 {
		return Result{}
	}
	perItem := float64(MaxPoints) / float64(k)

	res := Result{SubItems: make([]SubItemResult, 0, k)}
	for _, sq := range q.SubQuestions {
		chosen := sub.Choices[sq.ID]
		item := SubItemResult{
			Label:     sq.Text,
			Submitted: orNoAnswer(chosen),
			Expected:  sq.CorrectOption,
			Correct:   chosen != "" && chosen == sq.CorrectOption,
		}
		if item.Correct {
			res.Points += perItem
		}
		res.SubItems = append(res.SubItems, item)
	}
	return res
}

func scoreCategorize(q *model.Question, sub Submission) Result {
	n := len(q.Items)
	if n == 0 {
		return Result{}
	}
	perItem := float64(MaxPoints) / float64(n)

	res := Result{SubItems: make([]SubItemResult, 0, n)}
	for _, it := range q.Items {
		placed := sub.Placements[it.Text]
		item := SubItemResult{
			Label:     it.Text,
			Submitted: orNoAnswer(placed),
			Expected:  it.Category,
			Correct:   placed == it.Category,
		}
		if item.Correct {
			res.Points += perItem
		}
		res.SubItems = append(res.SubItems, item)
	}
	return res
}

func scoreCloze(q *model.Question, sub Submission) Result {
	n := len(q.BlankAnswers)
	if n == 0 {
		return Result{}
	}
	perBlank := float64(MaxPoints) / float64(n)

	res := Result{SubItems: make([]SubItemResult, 0, n)}
	for i, want := range q.BlankAnswers {
		got := sub.Blanks[i]
		item := SubItemResult{
			Label:     fmt.Sprintf("Blank %d", i+1),
			Submitted: orNoAnswer(got),
			Expected:  want,
			Correct:   got != "" && got == want,
		}
		if item.Correct {
			res.Points += perBlank
		}
		res.SubItems = append(res.SubItems, item)
	}
	return res
}

func scoreMultipleChoice(q *model.Question, sub Submission) Result {
	correct := sub.Choice != "" && sub.Choice == q.CorrectAnswer
	res := Result{
		SubItems: []SubItemResult{{
			Label:     q.Text,
			Submitted: orNoAnswer(sub.Choice),
			Expected:  q.CorrectAnswer,
			Correct:   correct,
		}},
	}
	if correct {
		res.Points = MaxPoints
	}
	return res
}

func orNoAnswer(s string) string {
	if s == "" {
		return NoAnswer
	}
	return s
}
