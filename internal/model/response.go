package model

import "time"

// SubmittedAnswer is one raw answer as sent by the respondent.
// Value's shape depends on the referenced question's type; the scoring
// package owns the translation to canonical form.
type SubmittedAnswer struct {
	QuestionID string      `json:"questionId"`
	Value      interface{} `json:"answer"`
}

// Answer is one scored answer as persisted on a Response
type Answer struct {
	QuestionID string      `json:"questionId" bson:"questionId"`
	Value      interface{} `json:"answer" bson:"answer"`
	Points     int         `json:"points" bson:"points"`
}

// Response is one respondent's scored submission to a form.
// It is written once, fully scored, and never mutated.
type Response struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	FormID      string    `json:"formId" bson:"formId"`
	UserID      string    `json:"userId" bson:"userId"`
	UserEmail   string    `json:"userEmail" bson:"userEmail"`
	Answers     []Answer  `json:"answers" bson:"answers"`
	Score       int       `json:"score" bson:"score"`
	TotalMarks  int       `json:"totalMarks" bson:"totalMarks"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
}

// SubmitResponseRequest is the request body for POST /v1/responses
type SubmitResponseRequest struct {
	FormID    string            `json:"formId"`
	Answers   []SubmittedAnswer `json:"answers"`
	UserID    string            `json:"userId"`
	UserEmail string            `json:"userEmail"`
}
