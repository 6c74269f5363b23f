package scoring

import (
	"math"
	"testing"

	"formforge/internal/model"
)

func comprehensionQ() *model.Question {
	return &model.Question{
		ID:      "q-comp",
		Type:    model.QuestionComprehension,
		Passage: "The sun is a star at the center of the solar system.",
		SubQuestions: []model.SubQuestion{
			{ID: "sq1", Text: "What is the sun?", Options: []string{"A star", "A planet", "A moon"}, CorrectOption: "A star"},
			{ID: "sq2", Text: "Where is it?", Options: []string{"Edge", "Center"}, CorrectOption: "Center"},
		},
	}
}

func categorizeQ() *model.Question {
	return &model.Question{
		ID:         "q-cat",
		Type:       model.QuestionCategorize,
		Categories: []string{"Fruit", "Vegetable"},
		Items: []model.CategorizeItem{
			{Text: "Apple", Category: "Fruit"},
			{Text: "Carrot", Category: "Vegetable"},
			{Text: "Banana", Category: "Fruit"},
		},
	}
}

func clozeQ() *model.Question {
	return &model.Question{
		ID:           "q-cloze",
		Type:         model.QuestionCloze,
		Passage:      "[BLANK] fell in [BLANK] when the [BLANK] sparked the [BLANK].",
		BlankAnswers: []string{"Paris", "1789", "Bastille", "Revolution"},
	}
}

func TestScoreComprehension(t *testing.T) {
	q := comprehensionQ()

	tests := []struct {
		name    string
		choices map[string]string
		want    float64
	}{
		{"all correct", map[string]string{"sq1": "A star", "sq2": "Center"}, 10},
		{"one of two", map[string]string{"sq1": "A star", "sq2": "Edge"}, 5},
		{"all wrong", map[string]string{"sq1": "A planet", "sq2": "Edge"}, 0},
		{"empty submission", nil, 0},
		{"unknown sub-question id ignored", map[string]string{"nope": "A star"}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(q, Submission{Choices: tc.choices})
			if math.Abs(got.Points-tc.want) > 1e-9 {
				t.Fatalf("Points = %v, want %v", got.Points, tc.want)
			}
			if len(got.SubItems) != 2 {
				t.Fatalf("SubItems = %d, want 2", len(got.SubItems))
			}
		})
	}
}

func TestScoreComprehensionBreakdown(t *testing.T) {
	q := comprehensionQ()
	got := Score(q, Submission{Choices: map[string]string{"sq1": "A planet"}})

	first := got.SubItems[0]
	if first.Submitted != "A planet" || first.Correct || first.Expected != "A star" {
		t.Fatalf("unexpected first sub-item: %+v", first)
	}
	second := got.SubItems[1]
	if second.Submitted != NoAnswer || second.Correct {
		t.Fatalf("skipped sub-question should read %q and be wrong, got %+v", NoAnswer, second)
	}
}

func TestScoreCategorize(t *testing.T) {
	q := categorizeQ()

	tests := []struct {
		name       string
		placements map[string]string
		want       float64
	}{
		{"all correct", map[string]string{"Apple": "Fruit", "Carrot": "Vegetable", "Banana": "Fruit"}, 10},
		{"two of three, one unassigned", map[string]string{"Apple": "Fruit", "Banana": "Fruit", "Carrot": "unassigned"}, 10.0 * 2 / 3},
		{"wrong bucket scores zero", map[string]string{"Apple": "Vegetable", "Carrot": "Fruit", "Banana": "Vegetable"}, 0},
		{"nothing placed", nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(q, Submission{Placements: tc.placements})
			if math.Abs(got.Points-tc.want) > 1e-9 {
				t.Fatalf("Points = %v, want %v", got.Points, tc.want)
			}
		})
	}
}

func TestScoreCloze(t *testing.T) {
	q := clozeQ()

	tests := []struct {
		name   string
		blanks map[int]string
		want   float64
	}{
		{"all correct", map[int]string{0: "Paris", 1: "1789", 2: "Bastille", 3: "Revolution"}, 10},
		{"three of four", map[int]string{0: "Paris", 1: "1776", 2: "Bastille", 3: "Revolution"}, 7.5},
		{"case sensitive", map[int]string{0: "paris", 1: "1789", 2: "Bastille", 3: "Revolution"}, 7.5},
		{"empty", nil, 0},
		{"out of range index ignored", map[int]string{7: "Paris"}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(q, Submission{Blanks: tc.blanks})
			if math.Abs(got.Points-tc.want) > 1e-9 {
				t.Fatalf("Points = %v, want %v", got.Points, tc.want)
			}
		})
	}
}

func TestScoreMultipleChoice(t *testing.T) {
	q := &model.Question{
		ID:            "q-mcq",
		Type:          model.QuestionMultipleChoice,
		Text:          "Capital of France?",
		Options:       []string{"Paris", "Lyon"},
		CorrectAnswer: "Paris",
	}

	if got := Score(q, Submission{Choice: "Paris"}); got.Points != 10 {
		t.Fatalf("correct choice = %v, want 10", got.Points)
	}
	if got := Score(q, Submission{Choice: "Lyon"}); got.Points != 0 {
		t.Fatalf("wrong choice = %v, want 0", got.Points)
	}
	if got := Score(q, Submission{}); got.Points != 0 {
		t.Fatalf("no choice = %v, want 0", got.Points)
	}
}

func TestScoreDegenerateQuestions(t *testing.T) {
	// Authoring invariants forbid these, but scoring must not divide by zero.
	qs := []*model.Question{
		{ID: "a", Type: model.QuestionComprehension},
		{ID: "b", Type: model.QuestionCategorize},
		{ID: "c", Type: model.QuestionCloze},
	}
	for _, q := range qs {
		if got := Score(q, Submission{}); got.Points != 0 {
			t.Fatalf("%s: degenerate question scored %v, want 0", q.Type, got.Points)
		}
	}
}

func TestScoreNonScorableType(t *testing.T) {
	q := &model.Question{ID: "h", Type: model.QuestionHeading, Text: "Section 1"}
	if got := Score(q, Submission{}); got.Points != 0 || len(got.SubItems) != 0 {
		t.Fatalf("non-scorable type scored %+v, want zero result", got)
	}
}

func TestScoreIdempotent(t *testing.T) {
	q := clozeQ()
	sub := Normalize(q.Type, map[string]interface{}{
		"blank_0": "Paris", "blank_1": "1776", "blank_2": "Bastille", "blank_3": "Revolution",
	})

	first := Score(q, sub)
	for i := 0; i < 5; i++ {
		again := Score(q, sub)
		if again.Points != first.Points || len(again.SubItems) != len(first.SubItems) {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}
