package scoring

import (
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"formforge/internal/model"
)

// Submission is the canonical shape of one submitted answer. Only the field
// matching the question's type is populated; a zero Submission means the
// respondent gave no answer. All absence handling happens in Normalize so
// the scoring rules never need nil checks.
type Submission struct {
	// Choices maps a Comprehension sub-question id to the chosen option
	Choices map[string]string
	// Placements maps a Categorize item text to the bucket it was dropped in
	Placements map[string]string
	// Blanks maps a Cloze blank index to the word placed there
	Blanks map[int]string
	// Choice is the selected MultipleChoice option
	Choice string
}

// clozeKeyPrefix matches the client's droppable ids ("blank_0", "blank_1", ...)
const clozeKeyPrefix = "blank_"

// Normalize converts a raw submitted value into the canonical shape for the
// given question type. Raw values come from loose client JSON or from a Mongo
// round-trip; nil, missing and malformed input all normalize to "no answer"
// rather than erroring.
func Normalize(t model.QuestionType, raw interface{}) Submission {
	switch t {
	case model.QuestionComprehension:
		return Submission{Choices: stringMap(raw)}
	case model.QuestionCategorize:
		return Submission{Placements: invertBuckets(raw)}
	case model.QuestionCloze:
		return Submission{Blanks: blankMap(raw)}
	case model.QuestionMultipleChoice:
		return Submission{Choice: asString(raw)}
	}
	return Submission{}
}

// stringMap flattens a raw map to string→string, dropping non-string values
func stringMap(raw interface{}) map[string]string {
	m := asMap(raw)
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s := asString(v); s != "" {
			out[k] = s
		}
	}
	return out
}

// invertBuckets turns the client's bucket→items map into item→bucket.
// Buckets are visited in sorted name order so an item that somehow appears
// in two buckets resolves the same way every time.
func invertBuckets(raw interface{}) map[string]string {
	m := asMap(raw)
	if len(m) == 0 {
		return nil
	}
	buckets := make([]string, 0, len(m))
	for name := range m {
		buckets = append(buckets, name)
	}
	sort.Strings(buckets)

	out := make(map[string]string)
	for _, name := range buckets {
		for _, item := range asStringSlice(m[name]) {
			if _, placed := out[item]; !placed {
				out[item] = name
			}
		}
	}
	return out
}

// blankMap parses "blank_<i>" keys into positional indexes
func blankMap(raw interface{}) map[int]string {
	m := asMap(raw)
	if len(m) == 0 {
		return nil
	}
	out := make(map[int]string, len(m))
	for k, v := range m {
		if !strings.HasPrefix(k, clozeKeyPrefix) {
			continue
		}
		i, err := strconv.Atoi(strings.TrimPrefix(k, clozeKeyPrefix))
		if err != nil || i < 0 {
			continue
		}
		if s := asString(v); s != "" {
			out[i] = s
		}
	}
	return out
}

func asMap(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v
	case primitive.M:
		return map[string]interface{}(v)
	case map[string]string:
		out := make(map[string]interface{}, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out
	}
	return nil
}

func asString(raw interface{}) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}

func asStringSlice(raw interface{}) []string {
	var items []interface{}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		items = v
	case primitive.A:
		items = []interface{}(v)
	default:
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := asString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}
