package service

import (
	"context"
	"encoding/base64"
	"errors"

	applicationerrors "hackportal/internal/application/errors"
	"hackportal/internal/application/repository"
	"hackportal/internal/application/storage"
	"hackportal/pkg/apperr"
	"hackportal/pkg/clock"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"
	"hackportal/pkg/sanitizer"
)

// Submission is one PATCH of the application form: the section being saved
// and the answers for it. File answers travel separately from plain ones.
type Submission struct {
	State   model.ApplicationState      `json:"state"`
	Answers map[string]string           `json:"answers"`
	Files   map[string]model.FileAnswer `json:"files,omitempty"`
}

type ApplicationService interface {
	Status(ctx context.Context, userID string) (*model.Application, error)
	Questions(ctx context.Context, state model.ApplicationState) ([]*model.Question, error)
	Submit(ctx context.Context, userID string, sub *Submission) (*model.Application, error)
}

type applicationService struct {
	repo      repository.ApplicationRepository
	questions repository.QuestionRepository
	uploader  storage.Uploader
	clock     clock.Clock
	log       *logger.Logger
}

func NewApplicationService(
	repo repository.ApplicationRepository,
	questions repository.QuestionRepository,
	uploader storage.Uploader,
	clk clock.Clock,
	log *logger.Logger,
) ApplicationService {
	return &applicationService{
		repo:      repo,
		questions: questions,
		uploader:  uploader,
		clock:     clk,
		log:       log,
	}
}

func (s *applicationService) Status(ctx context.Context, userID string) (*model.Application, error) {
	app, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, applicationerrors.ErrNotFound) {
			// A user who never saved anything is at the first section.
			return &model.Application{
				UserID:  userID,
				State:   model.StateProfile,
				Answers: map[string]string{},
			}, nil
		}
		return nil, apperr.Internal("Failed to fetch application", err)
	}
	return app, nil
}

func (s *applicationService) Questions(ctx context.Context, state model.ApplicationState) ([]*model.Question, error) {
	if !state.Valid() {
		return nil, apperr.InvalidInput("Unknown application state")
	}
	questions, err := s.questions.FindByState(ctx, state)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch questions", err)
	}
	return questions, nil
}

// Submit saves one section of the form. Sections can be revisited in any
// order until the application reaches SUBMITTED, after which it is frozen.
func (s *applicationService) Submit(ctx context.Context, userID string, sub *Submission) (*model.Application, error) {
	if !sub.State.Valid() {
		return nil, apperr.InvalidInput("Unknown application state")
	}

	app, err := s.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	if app.State == model.StateSubmitted {
		return nil, apperr.Conflict("Application has already been submitted")
	}

	questions, err := s.questions.FindByState(ctx, sectionOf(sub.State))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch questions", err)
	}

	answers, err := s.resolveAnswers(ctx, userID, questions, sub)
	if err != nil {
		return nil, err
	}

	for field, answer := range answers {
		app.Answers[field] = answer
	}
	app.State = sub.State
	app.UpdatedAt = s.clock.Now().Unix()

	if err := s.repo.Save(ctx, app); err != nil {
		return nil, apperr.Internal("Failed to save application", err)
	}

	s.log.Info("Application section saved", "user_id", userID, "state", app.State)
	return app, nil
}

// sectionOf maps the submitted state to the section whose questions it
// carries. Saving SUBMITTED finalizes the last section.
func sectionOf(state model.ApplicationState) model.ApplicationState {
	if state == model.StateSubmitted {
		return model.StateAdditionalQuestion
	}
	return state
}

func (s *applicationService) resolveAnswers(ctx context.Context, userID string, questions []*model.Question, sub *Submission) (map[string]string, error) {
	answers := make(map[string]string, len(sub.Answers))
	var problems []string

	for _, q := range questions {
		if q.Type == model.QuestionFile {
			key, err := s.resolveFile(ctx, userID, q, sub)
			if err != nil {
				var ae *apperr.Error
				if errors.As(err, &ae) {
					return nil, err
				}
				problems = append(problems, err.Error())
				continue
			}
			if key != "" {
				answers[q.Field] = key
			}
			continue
		}

		answer := sanitizer.TrimAndNormalize(sub.Answers[q.Field])
		if err := validateAnswer(q, answer); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if answer != "" {
			answers[q.Field] = answer
		}
	}

	if len(problems) > 0 {
		return nil, apperr.Validation("Some answers are invalid", map[string]any{"problems": problems})
	}
	return answers, nil
}

func (s *applicationService) resolveFile(ctx context.Context, userID string, q *model.Question, sub *Submission) (string, error) {
	file, ok := sub.Files[q.Field]
	if !ok {
		if q.Validation.Required && sub.Answers[q.Field] == "" {
			return "", errors.New(q.Field + ": a file is required")
		}
		return "", nil
	}

	content, err := base64.StdEncoding.DecodeString(file.Content)
	if err != nil {
		return "", errors.New(q.Field + ": file content is not valid base64")
	}
	if err := validateFile(q, &file, len(content)); err != nil {
		return "", err
	}

	key, err := s.uploader.Upload(ctx, userID, q.Field, file.Filename, file.MimeType, content)
	if err != nil {
		s.log.Error("File upload failed", "user_id", userID, "field", q.Field, "error", err)
		return "", apperr.Internal("Failed to store uploaded file", err)
	}
	return key, nil
}
