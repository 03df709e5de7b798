package service

import (
	"context"
	"errors"

	userserrors "hackportal/internal/users/errors"
	"hackportal/internal/users/repository"
	"hackportal/pkg/apperr"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"
	"hackportal/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type UserService interface {
	Profile(ctx context.Context, id string) (*model.User, error)
	PublicProfile(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, update *model.UserUpdate) error

	// FindMentors and FindByID satisfy the mentorship module's directory
	// dependency.
	FindMentors(ctx context.Context, limit int64) ([]*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	validate *validator.Validate
	log      *logger.Logger
}

func NewUserService(repo repository.UserRepository, log *logger.Logger) UserService {
	return &userService{
		repo:     repo,
		validate: validator.New(),
		log:      log,
	}
}

func (s *userService) Profile(ctx context.Context, id string) (*model.User, error) {
	return s.FindByID(ctx, id)
}

// PublicProfile strips fields other users have no business seeing.
func (s *userService) PublicProfile(ctx context.Context, id string) (*model.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.DateOfBirth = ""
	user.Status = ""
	user.Admin = false
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, update *model.UserUpdate) error {
	update.FirstName = sanitizer.NormalizeName(update.FirstName)
	update.LastName = sanitizer.NormalizeName(update.LastName)
	update.School = sanitizer.NormalizeName(update.School)

	if err := s.validate.Struct(update); err != nil {
		return apperr.Validation("Invalid profile update", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		switch {
		case errors.Is(err, userserrors.ErrNotFound):
			return apperr.NotFoundWithID("User", id)
		case errors.Is(err, userserrors.ErrEmptyUpdate):
			return apperr.InvalidInput("At least one profile field must be provided")
		default:
			return apperr.Internal("Failed to update profile", err)
		}
	}

	s.log.Info("Profile updated", "user_id", id)
	return nil
}

func (s *userService) FindMentors(ctx context.Context, limit int64) ([]*model.User, error) {
	return s.repo.FindMentors(ctx, limit)
}

func (s *userService) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperr.NotFoundWithID("User", id)
		}
		return nil, apperr.Internal("Failed to fetch user", err)
	}
	return user, nil
}
