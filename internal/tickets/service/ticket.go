package service

import (
	"context"
	"errors"

	"hackportal/internal/tickets/repository"
	"hackportal/pkg/apperr"
	"hackportal/pkg/config"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"
	"hackportal/pkg/sanitizer"

	ticketserrors "hackportal/internal/tickets/errors"

	"github.com/go-playground/validator/v10"
)

type TicketService interface {
	Create(ctx context.Context, requestorID string, ticket *model.Ticket) error
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	List(ctx context.Context, filter repository.TicketFilter) ([]*model.Ticket, error)
	Update(ctx context.Context, callerID string, isMentor bool, id string, update *model.TicketUpdate) error
	Delete(ctx context.Context, callerID string, id string) error
}

type ticketService struct {
	repo     repository.TicketRepository
	validate *validator.Validate
	log      *logger.Logger
}

func NewTicketService(repo repository.TicketRepository, log *logger.Logger) TicketService {
	return &ticketService{
		repo:     repo,
		validate: validator.New(),
		log:      log,
	}
}

func (s *ticketService) Create(ctx context.Context, requestorID string, ticket *model.Ticket) error {
	ticket.RequestorID = requestorID
	ticket.Taken = false
	ticket.Resolved = false
	ticket.Topic = sanitizer.TrimAndNormalize(ticket.Topic)
	ticket.Description = sanitizer.NormalizeFreeText(ticket.Description)
	ticket.Location = sanitizer.NormalizeName(ticket.Location)
	ticket.Tags = sanitizer.NormalizeTags(ticket.Tags)

	if err := s.validate.Struct(ticket); err != nil {
		return apperr.Validation("Invalid ticket", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return apperr.Internal("Failed to create ticket", err)
	}

	s.log.Info("Ticket created", "ticket_id", ticket.ID, "requestor_id", requestorID)
	return nil
}

func (s *ticketService) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(id, err, "Failed to fetch ticket")
	}
	return ticket, nil
}

func (s *ticketService) List(ctx context.Context, filter repository.TicketFilter) ([]*model.Ticket, error) {
	filter.Limit = config.NormalizePaginationLimit(filter.Limit)
	tickets, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("Failed to list tickets", err)
	}
	return tickets, nil
}

// Update lets the requestor edit their ticket content; mentors may only
// flip the taken/resolved flags.
func (s *ticketService) Update(ctx context.Context, callerID string, isMentor bool, id string, update *model.TicketUpdate) error {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepoError(id, err, "Failed to fetch ticket")
	}

	if ticket.RequestorID != callerID {
		if !isMentor {
			return apperr.Forbidden("You can only edit your own tickets")
		}
		if update.Topic != "" || update.Description != "" || update.Location != "" || update.Tags != nil {
			return apperr.Forbidden("Mentors can only update ticket status")
		}
	}

	update.Topic = sanitizer.TrimAndNormalize(update.Topic)
	update.Description = sanitizer.NormalizeFreeText(update.Description)
	update.Location = sanitizer.NormalizeName(update.Location)
	if update.Tags != nil {
		update.Tags = sanitizer.NormalizeTags(update.Tags)
	}

	if err := s.validate.Struct(update); err != nil {
		return apperr.Validation("Invalid ticket update", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return mapRepoError(id, err, "Failed to update ticket")
	}

	s.log.Info("Ticket updated", "ticket_id", id, "caller_id", callerID)
	return nil
}

func (s *ticketService) Delete(ctx context.Context, callerID string, id string) error {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepoError(id, err, "Failed to fetch ticket")
	}
	if ticket.RequestorID != callerID {
		return apperr.Forbidden("You can only delete your own tickets")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(id, err, "Failed to delete ticket")
	}

	s.log.Info("Ticket deleted", "ticket_id", id, "caller_id", callerID)
	return nil
}

func mapRepoError(id string, err error, internalMsg string) error {
	switch {
	case errors.Is(err, ticketserrors.ErrNotFound):
		return apperr.NotFoundWithID("Ticket", id)
	case errors.Is(err, ticketserrors.ErrInvalidID):
		return apperr.InvalidInput("Invalid ticket ID format")
	default:
		return apperr.Internal(internalMsg, err)
	}
}
