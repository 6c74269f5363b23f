package model

import "time"

// Form is a persistent form/quiz created by a user
type Form struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"userId" bson:"userId"`
	Username    string    `json:"username" bson:"username"`
	Title       string    `json:"title" bson:"title"`
	HeaderImage string    `json:"headerImage,omitempty" bson:"headerImage,omitempty"` // ImageKit URL, opaque
	Theme       string    `json:"theme" bson:"theme"`
	QuestionIDs []string  `json:"questionIds" bson:"questionIds"`
	ResponseIDs []string  `json:"responseIds" bson:"responseIds"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// PopulatedForm is a form with its question documents resolved, in form order
type PopulatedForm struct {
	Form      *Form       `json:"form"`
	Questions []*Question `json:"questions"`
}
