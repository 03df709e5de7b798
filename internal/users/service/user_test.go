package service

import (
	"context"
	"io"
	"testing"

	userserrors "hackportal/internal/users/errors"
	"hackportal/pkg/apperr"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"
)

type fakeUserRepository struct {
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findMentorsFn func(ctx context.Context, limit int64) ([]*model.User, error)
	updateFn      func(ctx context.Context, id string, update *model.UserUpdate) error
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeUserRepository) FindMentors(ctx context.Context, limit int64) ([]*model.User, error) {
	return f.findMentorsFn(ctx, limit)
}

func (f *fakeUserRepository) Update(ctx context.Context, id string, update *model.UserUpdate) error {
	return f.updateFn(ctx, id, update)
}

func (f *fakeUserRepository) Upsert(ctx context.Context, user *model.User) error {
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.FormatText, Output: io.Discard})
}

func TestPublicProfile_StripsPrivateFields(t *testing.T) {
	svc := NewUserService(&fakeUserRepository{
		findByIDFn: func(_ context.Context, id string) (*model.User, error) {
			return &model.User{
				ID:          id,
				Email:       "h@example.com",
				FirstName:   "Hedy",
				DateOfBirth: "1914-11-09",
				Status:      "accepted",
				Admin:       true,
			}, nil
		},
	}, testLogger())

	user, err := svc.PublicProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("PublicProfile: %v", err)
	}
	if user.DateOfBirth != "" || user.Status != "" || user.Admin {
		t.Errorf("private fields leaked: %+v", user)
	}
	if user.FirstName != "Hedy" {
		t.Errorf("public fields missing: %+v", user)
	}
}

func TestUpdateProfile(t *testing.T) {
	var written *model.UserUpdate
	svc := NewUserService(&fakeUserRepository{
		updateFn: func(_ context.Context, _ string, update *model.UserUpdate) error {
			written = update
			return nil
		},
	}, testLogger())

	update := &model.UserUpdate{FirstName: "  Hedy   Lamarr "}
	if err := svc.UpdateProfile(context.Background(), "user-1", update); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if written.FirstName != "Hedy Lamarr" {
		t.Errorf("first name = %q, want normalized", written.FirstName)
	}
}

func TestUpdateProfile_InvalidURL(t *testing.T) {
	svc := NewUserService(&fakeUserRepository{}, testLogger())

	err := svc.UpdateProfile(context.Background(), "user-1", &model.UserUpdate{Github: "not a url"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc := NewUserService(&fakeUserRepository{
		updateFn: func(_ context.Context, _ string, _ *model.UserUpdate) error {
			return userserrors.ErrNotFound
		},
	}, testLogger())

	err := svc.UpdateProfile(context.Background(), "ghost", &model.UserUpdate{FirstName: "X"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
}

func TestUpdateProfile_EmptyUpdate(t *testing.T) {
	svc := NewUserService(&fakeUserRepository{
		updateFn: func(_ context.Context, _ string, _ *model.UserUpdate) error {
			return userserrors.ErrEmptyUpdate
		},
	}, testLogger())

	err := svc.UpdateProfile(context.Background(), "user-1", &model.UserUpdate{})
	if !apperr.Is(err, apperr.KindInvalidInput) {
		t.Fatalf("kind = %v, want invalid input", apperr.KindOf(err))
	}
}
