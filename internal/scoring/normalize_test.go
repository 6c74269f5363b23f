package scoring

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"formforge/internal/model"
)

func TestNormalizeComprehension(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want map[string]string
	}{
		{"json map", map[string]interface{}{"sq1": "A star", "sq2": "Center"}, map[string]string{"sq1": "A star", "sq2": "Center"}},
		{"bson map", bson.M{"sq1": "A star"}, map[string]string{"sq1": "A star"}},
		{"nil", nil, nil},
		{"wrong shape", "just a string", nil},
		{"non-string values dropped", map[string]interface{}{"sq1": 42, "sq2": "Center"}, map[string]string{"sq2": "Center"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(model.QuestionComprehension, tc.raw)
			if len(got.Choices) != len(tc.want) {
				t.Fatalf("Choices = %v, want %v", got.Choices, tc.want)
			}
			for k, v := range tc.want {
				if got.Choices[k] != v {
					t.Fatalf("Choices[%s] = %q, want %q", k, got.Choices[k], v)
				}
			}
		})
	}
}

func TestNormalizeCategorize(t *testing.T) {
	raw := map[string]interface{}{
		"Fruit":      []interface{}{"Apple", "Banana"},
		"Vegetable":  []interface{}{},
		"unassigned": []interface{}{"Carrot"},
	}
	got := Normalize(model.QuestionCategorize, raw)

	want := map[string]string{"Apple": "Fruit", "Banana": "Fruit", "Carrot": "unassigned"}
	for item, bucket := range want {
		if got.Placements[item] != bucket {
			t.Fatalf("Placements[%s] = %q, want %q", item, got.Placements[item], bucket)
		}
	}
}

func TestNormalizeCategorizeFromBSON(t *testing.T) {
	raw := bson.M{"Fruit": primitive.A{"Apple"}, "unassigned": primitive.A{"Carrot"}}
	got := Normalize(model.QuestionCategorize, raw)
	if got.Placements["Apple"] != "Fruit" || got.Placements["Carrot"] != "unassigned" {
		t.Fatalf("bson round-trip not normalized: %v", got.Placements)
	}
}

func TestNormalizeCategorizeDuplicateDeterministic(t *testing.T) {
	// An item listed in two buckets must resolve the same way on every run:
	// buckets are visited in sorted name order, so the first alphabetically wins.
	raw := map[string]interface{}{
		"Vegetable": []interface{}{"Apple"},
		"Fruit":     []interface{}{"Apple"},
	}
	for i := 0; i < 20; i++ {
		got := Normalize(model.QuestionCategorize, raw)
		if got.Placements["Apple"] != "Fruit" {
			t.Fatalf("run %d: Placements[Apple] = %q, want Fruit", i, got.Placements["Apple"])
		}
	}
}

func TestNormalizeCloze(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want map[int]string
	}{
		{"well formed", map[string]interface{}{"blank_0": "Paris", "blank_1": "1789"}, map[int]string{0: "Paris", 1: "1789"}},
		{"stray keys ignored", map[string]interface{}{"blank_0": "Paris", "oops": "x", "blank_-1": "y", "blank_abc": "z"}, map[int]string{0: "Paris"}},
		{"empty strings dropped", map[string]interface{}{"blank_0": ""}, map[int]string{}},
		{"nil", nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(model.QuestionCloze, tc.raw)
			if len(got.Blanks) != len(tc.want) {
				t.Fatalf("Blanks = %v, want %v", got.Blanks, tc.want)
			}
			for i, v := range tc.want {
				if got.Blanks[i] != v {
					t.Fatalf("Blanks[%d] = %q, want %q", i, got.Blanks[i], v)
				}
			}
		})
	}
}

func TestNormalizeMultipleChoice(t *testing.T) {
	if got := Normalize(model.QuestionMultipleChoice, "Paris"); got.Choice != "Paris" {
		t.Fatalf("Choice = %q, want Paris", got.Choice)
	}
	if got := Normalize(model.QuestionMultipleChoice, 42); got.Choice != "" {
		t.Fatalf("non-string choice should normalize to empty, got %q", got.Choice)
	}
}

func TestNormalizeNonScorableType(t *testing.T) {
	got := Normalize(model.QuestionHeading, map[string]interface{}{"whatever": "x"})
	if got.Choices != nil || got.Placements != nil || got.Blanks != nil || got.Choice != "" {
		t.Fatalf("non-scorable type should normalize to zero Submission, got %+v", got)
	}
}
