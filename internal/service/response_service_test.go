package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"formforge/internal/cache"
	"formforge/internal/model"
)

// In-memory fakes over the repository and cache interfaces.

type fakeFormRepo struct {
	forms map[string]*model.Form
}

func (f *fakeFormRepo) Create(ctx context.Context, form *model.Form) (string, error) {
	if form.ID == "" {
		form.ID = "form-1"
	}
	f.forms[form.ID] = form
	return form.ID, nil
}

func (f *fakeFormRepo) GetByID(ctx context.Context, id string) (*model.Form, error) {
	return f.forms[id], nil
}

func (f *fakeFormRepo) GetByUserID(ctx context.Context, userID string) ([]*model.Form, error) {
	var out []*model.Form
	for _, form := range f.forms {
		if form.UserID == userID {
			out = append(out, form)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) AddQuestion(ctx context.Context, formID, questionID string) error {
	f.forms[formID].QuestionIDs = append(f.forms[formID].QuestionIDs, questionID)
	return nil
}

func (f *fakeFormRepo) RemoveQuestion(ctx context.Context, formID, questionID string) error {
	form := f.forms[formID]
	kept := form.QuestionIDs[:0]
	for _, id := range form.QuestionIDs {
		if id != questionID {
			kept = append(kept, id)
		}
	}
	form.QuestionIDs = kept
	return nil
}

func (f *fakeFormRepo) AddResponse(ctx context.Context, formID, responseID string) error {
	f.forms[formID].ResponseIDs = append(f.forms[formID].ResponseIDs, responseID)
	return nil
}

func (f *fakeFormRepo) Delete(ctx context.Context, id string) error {
	delete(f.forms, id)
	return nil
}

func (f *fakeFormRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	forms, _ := f.GetByUserID(ctx, userID)
	return int64(len(forms)), nil
}

type fakeQuestionRepo struct {
	questions map[string]*model.Question
}

func (f *fakeQuestionRepo) Create(ctx context.Context, q *model.Question) (string, error) {
	if q.ID == "" {
		q.ID = fmt.Sprintf("q-%d", len(f.questions)+1)
	}
	f.questions[q.ID] = q
	return q.ID, nil
}

func (f *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	return f.questions[id], nil
}

func (f *fakeQuestionRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error) {
	var out []*model.Question
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Update(ctx context.Context, q *model.Question) error {
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, id string) error {
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(f.questions, id)
	}
	return nil
}

type fakeResponseRepo struct {
	responses  map[string]*model.Response
	failCreate bool
}

func (f *fakeResponseRepo) Create(ctx context.Context, r *model.Response) (string, error) {
	if f.failCreate {
		return "", errors.New("write failed")
	}
	r.ID = "resp-1"
	f.responses[r.ID] = r
	return r.ID, nil
}

func (f *fakeResponseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	return f.responses[id], nil
}

func (f *fakeResponseRepo) GetByFormID(ctx context.Context, formID string) ([]*model.Response, error) {
	var out []*model.Response
	for _, r := range f.responses {
		if r.FormID == formID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) GetByUserID(ctx context.Context, userID string) ([]*model.Response, error) {
	var out []*model.Response
	for _, r := range f.responses {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) CountByFormIDs(ctx context.Context, formIDs []string) (int64, error) {
	return int64(len(f.responses)), nil
}

func (f *fakeResponseRepo) DeleteByFormID(ctx context.Context, formID string) error {
	for id, r := range f.responses {
		if r.FormID == formID {
			delete(f.responses, id)
		}
	}
	return nil
}

type fakeFormCache struct{}

func (fakeFormCache) Set(ctx context.Context, formID string, p *model.PopulatedForm) error { return nil }
func (fakeFormCache) Get(ctx context.Context, formID string) (*model.PopulatedForm, error) {
	return nil, nil
}
func (fakeFormCache) Invalidate(ctx context.Context, formID string) error { return nil }

type fakeScoreboard struct {
	recorded map[string]int
}

func (f *fakeScoreboard) RecordScore(ctx context.Context, formID, userEmail string, score int) error {
	if f.recorded == nil {
		f.recorded = make(map[string]int)
	}
	f.recorded[userEmail] = score
	return nil
}

func (f *fakeScoreboard) GetTop(ctx context.Context, formID string, limit int) ([]cache.ScoreboardEntry, error) {
	return nil, nil
}

func (f *fakeScoreboard) GetRank(ctx context.Context, formID, userEmail string) (int64, error) {
	return -1, nil
}

func (f *fakeScoreboard) Clear(ctx context.Context, formID string) error { return nil }

func newTestServices(failWrite bool) (*ResponseService, *fakeFormRepo, *fakeQuestionRepo, *fakeResponseRepo, *fakeScoreboard) {
	formRepo := &fakeFormRepo{forms: make(map[string]*model.Form)}
	questionRepo := &fakeQuestionRepo{questions: make(map[string]*model.Question)}
	responseRepo := &fakeResponseRepo{responses: make(map[string]*model.Response), failCreate: failWrite}
	scoreboard := &fakeScoreboard{}

	formSvc := NewFormService(formRepo, questionRepo, responseRepo, fakeFormCache{}, scoreboard)
	responseSvc := NewResponseService(responseRepo, formRepo, formSvc, scoreboard)
	return responseSvc, formRepo, questionRepo, responseRepo, scoreboard
}

func seedQuizForm(formRepo *fakeFormRepo, questionRepo *fakeQuestionRepo) {
	questionRepo.questions["q-cloze"] = &model.Question{
		ID:           "q-cloze",
		Type:         model.QuestionCloze,
		Passage:      "[BLANK] fell in [BLANK].",
		BlankAnswers: []string{"Paris", "1789"},
	}
	questionRepo.questions["q-head"] = &model.Question{
		ID:   "q-head",
		Type: model.QuestionHeading,
		Text: "Quiz",
	}
	formRepo.forms["form-1"] = &model.Form{
		ID:          "form-1",
		UserID:      "owner",
		QuestionIDs: []string{"q-head", "q-cloze"},
	}
}

func TestSubmitScoresAndPersists(t *testing.T) {
	svc, formRepo, questionRepo, responseRepo, scoreboard := newTestServices(false)
	seedQuizForm(formRepo, questionRepo)

	id, err := svc.Submit(context.Background(), &model.SubmitResponseRequest{
		FormID:    "form-1",
		UserID:    "resp-user",
		UserEmail: "r@example.com",
		Answers: []model.SubmittedAnswer{
			{QuestionID: "q-cloze", Value: map[string]interface{}{"blank_0": "Paris", "blank_1": "1790"}},
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	saved := responseRepo.responses[id]
	if saved == nil {
		t.Fatal("response was not persisted")
	}
	if saved.Score != 5 || saved.TotalMarks != 10 {
		t.Fatalf("Score/TotalMarks = %d/%d, want 5/10", saved.Score, saved.TotalMarks)
	}
	if len(formRepo.forms["form-1"].ResponseIDs) != 1 {
		t.Fatal("response id was not linked to the form")
	}
	if scoreboard.recorded["r@example.com"] != 5 {
		t.Fatalf("scoreboard score = %d, want 5", scoreboard.recorded["r@example.com"])
	}
}

func TestSubmitRequiresUserDetails(t *testing.T) {
	svc, formRepo, questionRepo, _, _ := newTestServices(false)
	seedQuizForm(formRepo, questionRepo)

	_, err := svc.Submit(context.Background(), &model.SubmitResponseRequest{FormID: "form-1"})
	if err != ErrUserRequired {
		t.Fatalf("Submit() error = %v, want ErrUserRequired", err)
	}
}

func TestSubmitUnknownFormFails(t *testing.T) {
	svc, _, _, _, _ := newTestServices(false)

	_, err := svc.Submit(context.Background(), &model.SubmitResponseRequest{
		FormID: "missing", UserID: "u", UserEmail: "e@example.com",
	})
	if err != ErrFormNotFound {
		t.Fatalf("Submit() error = %v, want ErrFormNotFound", err)
	}
}

func TestSubmitWriteFailureSurfacesError(t *testing.T) {
	svc, formRepo, questionRepo, responseRepo, scoreboard := newTestServices(true)
	seedQuizForm(formRepo, questionRepo)

	_, err := svc.Submit(context.Background(), &model.SubmitResponseRequest{
		FormID: "form-1", UserID: "u", UserEmail: "e@example.com",
	})
	if err == nil {
		t.Fatal("Submit() should fail when the response write fails")
	}
	if len(responseRepo.responses) != 0 {
		t.Fatal("no response should be visible after a failed write")
	}
	if len(formRepo.forms["form-1"].ResponseIDs) != 0 {
		t.Fatal("failed submission must not be linked to the form")
	}
	if len(scoreboard.recorded) != 0 {
		t.Fatal("failed submission must not reach the scoreboard")
	}
}

func TestGetDetailRebuildsBreakdown(t *testing.T) {
	svc, formRepo, questionRepo, _, _ := newTestServices(false)
	seedQuizForm(formRepo, questionRepo)

	id, err := svc.Submit(context.Background(), &model.SubmitResponseRequest{
		FormID:    "form-1",
		UserID:    "resp-user",
		UserEmail: "r@example.com",
		Answers: []model.SubmittedAnswer{
			{QuestionID: "q-cloze", Value: map[string]interface{}{"blank_0": "Paris"}},
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	detail, err := svc.GetDetail(context.Background(), id)
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}
	if len(detail.Breakdown) != 1 {
		t.Fatalf("Breakdown entries = %d, want 1", len(detail.Breakdown))
	}

	bd := detail.Breakdown[0]
	if !bd.Available || !bd.Scorable {
		t.Fatalf("breakdown should be available and scorable: %+v", bd)
	}
	if len(bd.SubItems) != 2 {
		t.Fatalf("SubItems = %d, want 2", len(bd.SubItems))
	}
	if !bd.SubItems[0].Correct || bd.SubItems[1].Correct {
		t.Fatalf("unexpected verdicts: %+v", bd.SubItems)
	}
	if bd.SubItems[1].Submitted != "No answer" {
		t.Fatalf("missing blank should render %q, got %q", "No answer", bd.SubItems[1].Submitted)
	}
}

func TestGetDetailDegradesWhenQuestionDeleted(t *testing.T) {
	svc, formRepo, questionRepo, _, _ := newTestServices(false)
	seedQuizForm(formRepo, questionRepo)

	id, err := svc.Submit(context.Background(), &model.SubmitResponseRequest{
		FormID:    "form-1",
		UserID:    "resp-user",
		UserEmail: "r@example.com",
		Answers: []model.SubmittedAnswer{
			{QuestionID: "q-cloze", Value: map[string]interface{}{"blank_0": "Paris", "blank_1": "1789"}},
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// Owner deletes the question after the submission
	delete(questionRepo.questions, "q-cloze")

	detail, err := svc.GetDetail(context.Background(), id)
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}

	bd := detail.Breakdown[0]
	if bd.Available {
		t.Fatal("deleted question must degrade to unavailable, not fail")
	}
	if bd.Points != 10 {
		t.Fatalf("recorded points must survive question deletion, got %d", bd.Points)
	}
	if bd.SubItems != nil {
		t.Fatal("no sub-item verdicts without the question's answer key")
	}
}

func TestSubmitAnswerForDeletedQuestionIgnored(t *testing.T) {
	svc, formRepo, questionRepo, responseRepo, _ := newTestServices(false)
	seedQuizForm(formRepo, questionRepo)

	id, err := svc.Submit(context.Background(), &model.SubmitResponseRequest{
		FormID:    "form-1",
		UserID:    "resp-user",
		UserEmail: "r@example.com",
		Answers: []model.SubmittedAnswer{
			{QuestionID: "q-gone", Value: "whatever"},
			{QuestionID: "q-cloze", Value: map[string]interface{}{"blank_0": "Paris", "blank_1": "1789"}},
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	saved := responseRepo.responses[id]
	if len(saved.Answers) != 1 {
		t.Fatalf("Answers = %d, want 1 (unknown question skipped)", len(saved.Answers))
	}
	if saved.Score != 10 || saved.TotalMarks != 10 {
		t.Fatalf("Score/TotalMarks = %d/%d, want 10/10", saved.Score, saved.TotalMarks)
	}
}
