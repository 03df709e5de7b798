package service

import (
	"context"
	"encoding/base64"
	"io"
	"testing"
	"time"

	applicationerrors "hackportal/internal/application/errors"
	"hackportal/pkg/apperr"
	"hackportal/pkg/clock"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"
)

type fakeApplicationRepository struct {
	apps map[string]*model.Application
}

func (f *fakeApplicationRepository) FindByUser(_ context.Context, userID string) (*model.Application, error) {
	app, ok := f.apps[userID]
	if !ok {
		return nil, applicationerrors.ErrNotFound
	}
	return app, nil
}

func (f *fakeApplicationRepository) Save(_ context.Context, app *model.Application) error {
	f.apps[app.UserID] = app
	return nil
}

type fakeQuestionRepository struct {
	questions []*model.Question
}

func (f *fakeQuestionRepository) FindByState(_ context.Context, state model.ApplicationState) ([]*model.Question, error) {
	var out []*model.Question
	for _, q := range f.questions {
		if q.State == state {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepository) FindAll(_ context.Context) ([]*model.Question, error) {
	return f.questions, nil
}

type fakeUploader struct {
	uploads map[string][]byte
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, userID, field, filename, mimeType string, content []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	key := "applications/" + userID + "/" + field
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[key] = content
	return key, nil
}

func newTestApplicationService(repo *fakeApplicationRepository, questions []*model.Question, uploader *fakeUploader) ApplicationService {
	if repo.apps == nil {
		repo.apps = map[string]*model.Application{}
	}
	return NewApplicationService(
		repo,
		&fakeQuestionRepository{questions: questions},
		uploader,
		clock.Fixed(time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC)),
		logger.New(logger.Config{Level: "error", Format: logger.FormatText, Output: io.Discard}),
	)
}

var profileQuestions = []*model.Question{
	{Field: "fullName", State: model.StateProfile, Type: model.QuestionString, Validation: model.QuestionValidation{Required: true, MaxLength: 100}},
	{Field: "school", State: model.StateProfile, Type: model.QuestionString},
}

func TestStatus_DefaultsToProfile(t *testing.T) {
	svc := newTestApplicationService(&fakeApplicationRepository{}, profileQuestions, &fakeUploader{})

	app, err := svc.Status(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if app.State != model.StateProfile {
		t.Errorf("state = %v, want PROFILE", app.State)
	}
}

func TestSubmit_SavesSection(t *testing.T) {
	repo := &fakeApplicationRepository{}
	svc := newTestApplicationService(repo, profileQuestions, &fakeUploader{})

	app, err := svc.Submit(context.Background(), "user-1", &Submission{
		State:   model.StateProfile,
		Answers: map[string]string{"fullName": "  Ada   Lovelace ", "school": "Analytical Engine High"},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if app.Answers["fullName"] != "Ada Lovelace" {
		t.Errorf("answer = %q, want normalized", app.Answers["fullName"])
	}
	if repo.apps["user-1"] == nil {
		t.Fatal("application was not persisted")
	}
}

func TestSubmit_MissingRequiredAnswer(t *testing.T) {
	svc := newTestApplicationService(&fakeApplicationRepository{}, profileQuestions, &fakeUploader{})

	_, err := svc.Submit(context.Background(), "user-1", &Submission{
		State:   model.StateProfile,
		Answers: map[string]string{"school": "Somewhere"},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestSubmit_FrozenAfterSubmission(t *testing.T) {
	repo := &fakeApplicationRepository{apps: map[string]*model.Application{
		"user-1": {UserID: "user-1", State: model.StateSubmitted, Answers: map[string]string{}},
	}}
	svc := newTestApplicationService(repo, profileQuestions, &fakeUploader{})

	_, err := svc.Submit(context.Background(), "user-1", &Submission{
		State:   model.StateProfile,
		Answers: map[string]string{"fullName": "Ada"},
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("kind = %v, want conflict", apperr.KindOf(err))
	}
}

func TestSubmit_UploadsFileAnswer(t *testing.T) {
	questions := []*model.Question{
		{Field: "resume", State: model.StateInquiry, Type: model.QuestionFile,
			Validation: model.QuestionValidation{Required: true, AllowedTypes: "application/pdf", MaxSizeMB: 1}},
	}
	uploader := &fakeUploader{}
	svc := newTestApplicationService(&fakeApplicationRepository{}, questions, uploader)

	content := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake"))
	app, err := svc.Submit(context.Background(), "user-1", &Submission{
		State: model.StateInquiry,
		Files: map[string]model.FileAnswer{
			"resume": {Filename: "cv.pdf", MimeType: "application/pdf", Content: content},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if app.Answers["resume"] != "applications/user-1/resume" {
		t.Errorf("answer = %q, want object key", app.Answers["resume"])
	}
	if len(uploader.uploads) != 1 {
		t.Errorf("uploaded %d files, want 1", len(uploader.uploads))
	}
}

func TestSubmit_RejectsBadBase64(t *testing.T) {
	questions := []*model.Question{
		{Field: "resume", State: model.StateInquiry, Type: model.QuestionFile, Validation: model.QuestionValidation{Required: true}},
	}
	svc := newTestApplicationService(&fakeApplicationRepository{}, questions, &fakeUploader{})

	_, err := svc.Submit(context.Background(), "user-1", &Submission{
		State: model.StateInquiry,
		Files: map[string]model.FileAnswer{
			"resume": {Filename: "cv.pdf", MimeType: "application/pdf", Content: "not base64!!!"},
		},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}
