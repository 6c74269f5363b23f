package model

import (
	"fmt"
	"strings"
)

// QuestionType is the closed set of question variant tags
type QuestionType string

const (
	QuestionCategorize     QuestionType = "Categorize"     // Drag items into categories
	QuestionCloze          QuestionType = "Cloze"          // Fill-in-the-blank passage
	QuestionComprehension  QuestionType = "Comprehension"  // Passage + MCQs
	QuestionMultipleChoice QuestionType = "MultipleChoice" // Single-select MCQ
	QuestionShortAnswer    QuestionType = "ShortAnswer"    // Free text, not scored
	QuestionHeading        QuestionType = "Heading"        // Display only
	QuestionParagraph      QuestionType = "Paragraph"      // Display only
	QuestionBanner         QuestionType = "Banner"         // Display only (image)
)

// ClozeBlankMarker is the placeholder the builder inserts for each blank
const ClozeBlankMarker = "[BLANK]"

// SubQuestion is one MCQ inside a Comprehension question
type SubQuestion struct {
	ID            string   `json:"id" bson:"_id,omitempty"`
	Text          string   `json:"text" bson:"text"`
	Options       []string `json:"options" bson:"options"`
	CorrectOption string   `json:"correctOption" bson:"correctOption"`
}

// CategorizeItem is one draggable item inside a Categorize question
type CategorizeItem struct {
	Text     string `json:"text" bson:"text"`
	Category string `json:"category" bson:"category"`
}

// Question is a single question document, referenced by forms
type Question struct {
	ID    string       `json:"id" bson:"_id,omitempty"`
	Type  QuestionType `json:"type" bson:"type"`
	Text  string       `json:"text,omitempty" bson:"text,omitempty"`
	Image string       `json:"image,omitempty" bson:"image,omitempty"` // ImageKit URL, opaque

	// Categorize
	Categories []string         `json:"categories,omitempty" bson:"categories,omitempty"`
	Items      []CategorizeItem `json:"items,omitempty" bson:"items,omitempty"`

	// Cloze and Comprehension share the passage field
	Passage      string   `json:"passage,omitempty" bson:"passage,omitempty"`
	BlankAnswers []string `json:"blankAnswers,omitempty" bson:"blankAnswers,omitempty"` // Cloze, positional

	// Comprehension
	SubQuestions []SubQuestion `json:"subQuestions,omitempty" bson:"subQuestions,omitempty"`

	// MultipleChoice
	Options       []string `json:"options,omitempty" bson:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty" bson:"correctAnswer,omitempty"`
}

// IsScorable reports whether the question type has an answer key
func (t QuestionType) IsScorable() bool {
	switch t {
	case QuestionCategorize, QuestionCloze, QuestionComprehension, QuestionMultipleChoice:
		return true
	}
	return false
}

// BlankCount returns the number of blank markers in a Cloze passage
func (q *Question) BlankCount() int {
	return strings.Count(q.Passage, ClozeBlankMarker)
}

// Validate checks the per-type authoring invariants
func (q *Question) Validate() error {
	switch q.Type {
	case QuestionCategorize:
		seen := make(map[string]bool, len(q.Categories))
		for _, c := range q.Categories {
			if seen[c] {
				return fmt.Errorf("duplicate category %q", c)
			}
			seen[c] = true
		}
		for _, item := range q.Items {
			if !seen[item.Category] {
				return fmt.Errorf("item %q assigned to unknown category %q", item.Text, item.Category)
			}
		}
	case QuestionCloze:
		if n := q.BlankCount(); n != len(q.BlankAnswers) {
			return fmt.Errorf("passage has %d blanks but %d answers", n, len(q.BlankAnswers))
		}
	case QuestionComprehension:
		for _, sq := range q.SubQuestions {
			found := false
			for _, opt := range sq.Options {
				if opt == sq.CorrectOption {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("sub-question %q: correct option %q not among options", sq.Text, sq.CorrectOption)
			}
		}
	case QuestionMultipleChoice:
		if q.CorrectAnswer != "" {
			found := false
			for _, opt := range q.Options {
				if opt == q.CorrectAnswer {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("correct answer %q not among options", q.CorrectAnswer)
			}
		}
	case QuestionShortAnswer, QuestionHeading, QuestionParagraph, QuestionBanner:
		// Display or free-text types carry no answer key
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}
