package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"formforge/internal/cache"
	"formforge/internal/model"
	"formforge/internal/repository"
)

var ErrFormNotFound = errors.New("form not found")

// FormService handles form and question authoring
type FormService struct {
	formRepo     repository.FormRepo
	questionRepo repository.QuestionRepo
	responseRepo repository.ResponseRepo
	formCache    cache.FormCache
	scoreboard   cache.ScoreboardCache
}

// NewFormService creates a new form service
func NewFormService(
	formRepo repository.FormRepo,
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	formCache cache.FormCache,
	scoreboard cache.ScoreboardCache,
) *FormService {
	return &FormService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		formCache:    formCache,
		scoreboard:   scoreboard,
	}
}

// Create validates and persists a form, along with any template questions
// supplied with it
func (s *FormService) Create(ctx context.Context, form *model.Form, questions []model.Question) (*model.Form, error) {
	if form.Title == "" {
		form.Title = "My New Form"
	}
	if form.Username == "" {
		form.Username = "Anonymous"
	}
	if form.Theme == "" {
		form.Theme = "Light"
	}

	questionIDs := make([]string, 0, len(questions))
	for i := range questions {
		q := questions[i]
		prepareQuestion(&q)
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		id, err := s.questionRepo.Create(ctx, &q)
		if err != nil {
			return nil, fmt.Errorf("failed to create question: %w", err)
		}
		questionIDs = append(questionIDs, id)
	}
	form.QuestionIDs = questionIDs

	if _, err := s.formRepo.Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}
	return form, nil
}

// GetPopulated returns a form with its question documents resolved, serving
// from the snapshot cache when possible. Question ids that no longer resolve
// are dropped from the populated view.
func (s *FormService) GetPopulated(ctx context.Context, formID string) (*model.PopulatedForm, error) {
	if cached, err := s.formCache.Get(ctx, formID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("form cache read failed for %s: %v", formID, err)
	}

	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, nil
	}

	questions, err := s.questionRepo.GetByIDs(ctx, form.QuestionIDs)
	if err != nil {
		return nil, err
	}

	populated := &model.PopulatedForm{Form: form, Questions: questions}
	if err := s.formCache.Set(ctx, formID, populated); err != nil {
		log.Printf("form cache write failed for %s: %v", formID, err)
	}
	return populated, nil
}

// GetByUser lists a user's forms, newest first
func (s *FormService) GetByUser(ctx context.Context, userID string) ([]*model.Form, error) {
	return s.formRepo.GetByUserID(ctx, userID)
}

// AddQuestion appends a validated question to a form
func (s *FormService) AddQuestion(ctx context.Context, formID string, q *model.Question) (*model.Question, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}

	prepareQuestion(q)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	if err := s.formRepo.AddQuestion(ctx, formID, q.ID); err != nil {
		return nil, fmt.Errorf("failed to attach question: %w", err)
	}
	s.invalidate(ctx, formID)
	return q, nil
}

// UpdateQuestion replaces a question's content in place
func (s *FormService) UpdateQuestion(ctx context.Context, formID, questionID string, q *model.Question) (*model.Question, error) {
	existing, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("question not found")
	}

	q.ID = questionID
	prepareQuestion(q)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	s.invalidate(ctx, formID)
	return q, nil
}

// RemoveQuestion detaches and deletes one question. Historical responses
// keep their recorded answers; their breakdown degrades to "question data
// unavailable" for this question.
func (s *FormService) RemoveQuestion(ctx context.Context, formID, questionID string) error {
	if err := s.formRepo.RemoveQuestion(ctx, formID, questionID); err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return err
	}
	s.invalidate(ctx, formID)
	return nil
}

// Delete removes a form together with its questions and responses
func (s *FormService) Delete(ctx context.Context, formID string) error {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrFormNotFound
	}

	if len(form.QuestionIDs) > 0 {
		if err := s.questionRepo.DeleteMany(ctx, form.QuestionIDs); err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
	}
	if err := s.responseRepo.DeleteByFormID(ctx, formID); err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	if err := s.formRepo.Delete(ctx, formID); err != nil {
		return err
	}

	s.invalidate(ctx, formID)
	if err := s.scoreboard.Clear(ctx, formID); err != nil {
		log.Printf("scoreboard clear failed for %s: %v", formID, err)
	}
	return nil
}

func (s *FormService) invalidate(ctx context.Context, formID string) {
	if err := s.formCache.Invalidate(ctx, formID); err != nil {
		log.Printf("form cache invalidation failed for %s: %v", formID, err)
	}
}

// prepareQuestion assigns ids to comprehension sub-questions that don't have
// one yet; submissions key their choices by these ids
func prepareQuestion(q *model.Question) {
	for i := range q.SubQuestions {
		if q.SubQuestions[i].ID == "" {
			q.SubQuestions[i].ID = primitive.NewObjectID().Hex()
		}
	}
}
