package service

import (
	"context"
	"io"
	"testing"

	ticketserrors "hackportal/internal/tickets/errors"
	"hackportal/internal/tickets/repository"
	"hackportal/pkg/apperr"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"
)

type fakeTicketRepository struct {
	createFn   func(ctx context.Context, ticket *model.Ticket) error
	findByIDFn func(ctx context.Context, id string) (*model.Ticket, error)
	findAllFn  func(ctx context.Context, filter repository.TicketFilter) ([]*model.Ticket, error)
	updateFn   func(ctx context.Context, id string, update *model.TicketUpdate) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeTicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return f.createFn(ctx, ticket)
}

func (f *fakeTicketRepository) FindByID(ctx context.Context, id string) (*model.Ticket, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeTicketRepository) FindAll(ctx context.Context, filter repository.TicketFilter) ([]*model.Ticket, error) {
	return f.findAllFn(ctx, filter)
}

func (f *fakeTicketRepository) Update(ctx context.Context, id string, update *model.TicketUpdate) error {
	return f.updateFn(ctx, id, update)
}

func (f *fakeTicketRepository) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.FormatText, Output: io.Discard})
}

func TestCreate_SetsOwnershipAndDefaults(t *testing.T) {
	var created *model.Ticket
	svc := NewTicketService(&fakeTicketRepository{
		createFn: func(_ context.Context, ticket *model.Ticket) error {
			created = ticket
			return nil
		},
	}, testLogger())

	ticket := &model.Ticket{
		Topic:       "  CORS   errors ",
		Description: "Our frontend cannot reach the API",
		RequestorID: "spoofed",
		Taken:       true,
		Resolved:    true,
		Tags:        []string{" web ", "web", "api"},
	}
	if err := svc.Create(context.Background(), "hacker-1", ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.RequestorID != "hacker-1" {
		t.Errorf("requestor = %q, want caller id", created.RequestorID)
	}
	if created.Taken || created.Resolved {
		t.Error("new ticket should start open")
	}
	if created.Topic != "CORS errors" {
		t.Errorf("topic = %q, want normalized", created.Topic)
	}
	if len(created.Tags) != 2 {
		t.Errorf("tags = %v, want deduplicated", created.Tags)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc := NewTicketService(&fakeTicketRepository{}, testLogger())

	err := svc.Create(context.Background(), "hacker-1", &model.Ticket{Topic: "no description"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestUpdate_Authorization(t *testing.T) {
	taken := true
	existing := &model.Ticket{ID: "t-1", Topic: "help", Description: "desc", RequestorID: "hacker-1"}

	tests := []struct {
		name     string
		callerID string
		isMentor bool
		update   model.TicketUpdate
		wantKind apperr.Kind
	}{
		{"owner edits content", "hacker-1", false, model.TicketUpdate{Topic: "new topic"}, ""},
		{"stranger edits content", "hacker-2", false, model.TicketUpdate{Topic: "new topic"}, apperr.KindForbidden},
		{"mentor flips status", "mentor-1", true, model.TicketUpdate{Taken: &taken}, ""},
		{"mentor edits content", "mentor-1", true, model.TicketUpdate{Topic: "hijack"}, apperr.KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTicketService(&fakeTicketRepository{
				findByIDFn: func(_ context.Context, _ string) (*model.Ticket, error) {
					return existing, nil
				},
				updateFn: func(_ context.Context, _ string, _ *model.TicketUpdate) error {
					return nil
				},
			}, testLogger())

			err := svc.Update(context.Background(), tt.callerID, tt.isMentor, "t-1", &tt.update)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("Update: %v", err)
				}
				return
			}
			if !apperr.Is(err, tt.wantKind) {
				t.Fatalf("kind = %v, want %v", apperr.KindOf(err), tt.wantKind)
			}
		})
	}
}

func TestDelete_OnlyOwner(t *testing.T) {
	deleted := false
	svc := NewTicketService(&fakeTicketRepository{
		findByIDFn: func(_ context.Context, _ string) (*model.Ticket, error) {
			return &model.Ticket{ID: "t-1", RequestorID: "hacker-1"}, nil
		},
		deleteFn: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}, testLogger())

	if err := svc.Delete(context.Background(), "hacker-2", "t-1"); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("kind = %v, want forbidden", apperr.KindOf(err))
	}
	if deleted {
		t.Error("forbidden delete reached the repository")
	}

	if err := svc.Delete(context.Background(), "hacker-1", "t-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("owner delete did not reach the repository")
	}
}

func TestGetByID_ErrorMapping(t *testing.T) {
	svc := NewTicketService(&fakeTicketRepository{
		findByIDFn: func(_ context.Context, _ string) (*model.Ticket, error) {
			return nil, ticketserrors.ErrNotFound
		},
	}, testLogger())

	if _, err := svc.GetByID(context.Background(), "ghost"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
}
