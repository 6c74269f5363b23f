package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"formforge/internal/cache"
	"formforge/internal/model"
	"formforge/internal/repository"
	"formforge/internal/scoring"
)

var ErrUserRequired = errors.New("user details are required")

// ResponseService drives submission scoring and persistence
type ResponseService struct {
	responseRepo repository.ResponseRepo
	formRepo     repository.FormRepo
	formSvc      *FormService
	scoreboard   cache.ScoreboardCache
	notifier     Notifier
}

// NewResponseService creates a new response service
func NewResponseService(
	responseRepo repository.ResponseRepo,
	formRepo repository.FormRepo,
	formSvc *FormService,
	scoreboard cache.ScoreboardCache,
) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
		formRepo:     formRepo,
		formSvc:      formSvc,
		scoreboard:   scoreboard,
	}
}

// SetNotifier sets the notifier for WebSocket events
func (s *ResponseService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Submit scores a submission against the form's current questions and
// persists the result. Scoring itself is pure and idempotent; if the write
// fails the whole submission fails and can safely be retried.
func (s *ResponseService) Submit(ctx context.Context, req *model.SubmitResponseRequest) (string, error) {
	if req.UserID == "" || req.UserEmail == "" {
		return "", ErrUserRequired
	}

	populated, err := s.formSvc.GetPopulated(ctx, req.FormID)
	if err != nil {
		return "", fmt.Errorf("failed to load form: %w", err)
	}
	if populated == nil {
		return "", ErrFormNotFound
	}

	outcome := scoring.Grade(populated.Questions, req.Answers)

	response := &model.Response{
		FormID:     req.FormID,
		UserID:     req.UserID,
		UserEmail:  req.UserEmail,
		Answers:    outcome.Answers,
		Score:      outcome.Score,
		TotalMarks: outcome.TotalMarks,
	}

	id, err := s.responseRepo.Create(ctx, response)
	if err != nil {
		return "", fmt.Errorf("failed to save response: %w", err)
	}

	// The response document is the source of truth; everything below is
	// denormalization and best-effort signaling.
	if err := s.formRepo.AddResponse(ctx, req.FormID, id); err != nil {
		log.Printf("failed to link response %s to form %s: %v", id, req.FormID, err)
	}
	if err := s.scoreboard.RecordScore(ctx, req.FormID, req.UserEmail, outcome.Score); err != nil {
		log.Printf("scoreboard update failed for form %s: %v", req.FormID, err)
	}
	if s.notifier != nil {
		s.notifier.NotifyForm(req.FormID, "response_submitted", map[string]interface{}{
			"responseId": id,
			"userEmail":  req.UserEmail,
			"score":      outcome.Score,
			"totalMarks": outcome.TotalMarks,
		})
	}

	return id, nil
}

// AnswerBreakdown is the per-question view a results page renders: the
// respondent's value, the per-sub-item verdicts, and the question itself.
// When the question has been deleted since submission, Available is false
// and only the recorded answer and points remain.
type AnswerBreakdown struct {
	QuestionID string                  `json:"questionId"`
	Available  bool                    `json:"available"`
	Question   *model.Question         `json:"question,omitempty"`
	Answer     interface{}             `json:"answer"`
	Points     int                     `json:"points"`
	Scorable   bool                    `json:"scorable"`
	SubItems   []scoring.SubItemResult `json:"subItems,omitempty"`
}

// ResponseDetail is a persisted response plus its rendered breakdown
type ResponseDetail struct {
	Response  *model.Response   `json:"response"`
	Breakdown []AnswerBreakdown `json:"breakdown"`
}

// GetDetail loads a response and rebuilds its per-sub-item breakdown.
// Scoring is deterministic, so the verdicts are recomputed from the stored
// answers rather than persisted twice.
func (s *ResponseService) GetDetail(ctx context.Context, responseID string) (*ResponseDetail, error) {
	response, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, nil
	}

	detail := &ResponseDetail{Response: response}
	for _, a := range response.Answers {
		bd := AnswerBreakdown{
			QuestionID: a.QuestionID,
			Answer:     a.Value,
			Points:     a.Points,
		}

		question, err := s.formSvc.questionRepo.GetByID(ctx, a.QuestionID)
		if err != nil || question == nil {
			// Question deleted after submission: degrade, don't fail
			detail.Breakdown = append(detail.Breakdown, bd)
			continue
		}

		bd.Available = true
		bd.Question = question
		bd.Scorable = question.Type.IsScorable()
		if bd.Scorable {
			result := scoring.Score(question, scoring.Normalize(question.Type, a.Value))
			bd.SubItems = result.SubItems
		}
		detail.Breakdown = append(detail.Breakdown, bd)
	}

	return detail, nil
}

// GetByForm lists all responses submitted to a form
func (s *ResponseService) GetByForm(ctx context.Context, formID string) ([]*model.Response, error) {
	return s.responseRepo.GetByFormID(ctx, formID)
}

// GetByUser lists a respondent's responses, newest first
func (s *ResponseService) GetByUser(ctx context.Context, userID string) ([]*model.Response, error) {
	return s.responseRepo.GetByUserID(ctx, userID)
}

// Scoreboard returns the top respondent scores for a form
func (s *ResponseService) Scoreboard(ctx context.Context, formID string, limit int) ([]cache.ScoreboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.scoreboard.GetTop(ctx, formID, limit)
}
