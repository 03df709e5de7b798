package service

import (
	"context"
	"errors"

	mentorshiperrors "hackportal/internal/mentorship/errors"
	"hackportal/pkg/apperr"
	"hackportal/pkg/config"
	"hackportal/pkg/model"
)

// ViewOptions narrows slot listings. UpcomingOnly and RecentOnly conflict,
// as do BookedOnly and AvailableOnly.
type ViewOptions struct {
	UpcomingOnly  bool
	RecentOnly    bool
	BookedOnly    bool
	AvailableOnly bool
	Limit         int64
}

func (o ViewOptions) validate() error {
	if o.UpcomingOnly && o.RecentOnly {
		return apperr.InvalidInput("upcoming and recent filters cannot be combined")
	}
	if o.BookedOnly && o.AvailableOnly {
		return apperr.InvalidInput("booked and available filters cannot be combined")
	}
	return nil
}

func (s *mentorshipService) slotFilter(opts ViewOptions) model.SlotFilter {
	filter := model.SlotFilter{Limit: config.NormalizePaginationLimit(opts.Limit)}
	now := s.clock.Now().Unix()
	if opts.UpcomingOnly {
		filter.StartAfter = now
	}
	if opts.RecentOnly {
		filter.StartBefore = now
	}
	return filter
}

// MentorSlots lists a mentor's own slots, annotations included.
func (s *mentorshipService) MentorSlots(ctx context.Context, mentorID string, opts ViewOptions) ([]*model.MentorshipSlot, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	slots, err := s.repo.FindByMentor(ctx, mentorID, s.slotFilter(opts))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch mentor slots", err)
	}
	return filterByBooking(slots, opts), nil
}

// MentorSlot fetches one slot. Mentors may read their own slots; hackers
// only the slots they booked.
func (s *mentorshipService) MentorSlot(ctx context.Context, callerID string, isMentor bool, slotID string) (*model.MentorshipSlot, error) {
	slot, err := s.findSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if isMentor {
		if slot.MentorID != callerID {
			return nil, apperr.Forbidden("You can only view your own slots")
		}
		return slot, nil
	}
	if slot.HackerID != callerID {
		return nil, apperr.Forbidden("You can only view slots you have booked")
	}
	return slot, nil
}

// AnnotateSlot writes mentor notes and flags on a slot the caller owns.
func (s *mentorshipService) AnnotateSlot(ctx context.Context, mentorID string, slotID string, a *model.SlotAnnotations) error {
	if err := s.validator.ValidateAnnotations(a); err != nil {
		return apperr.Validation("Invalid annotation update", map[string]any{"error": err.Error()})
	}

	slot, err := s.findSlot(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.MentorID != mentorID {
		return apperr.Forbidden("You can only annotate your own slots")
	}

	if err := s.repo.UpdateAnnotations(ctx, slotID, a); err != nil {
		if errors.Is(err, mentorshiperrors.ErrNotFound) {
			return apperr.NotFoundWithID("Slot", slotID)
		}
		return apperr.Internal("Failed to update slot annotations", err)
	}

	s.cfg.Log.Info("Slot annotated", "mentor_id", mentorID, "slot_id", slotID)
	return nil
}

// Mentors lists mentor accounts in their hacker-facing projection.
func (s *mentorshipService) Mentors(ctx context.Context, limit int64) ([]model.Mentor, error) {
	users, err := s.users.FindMentors(ctx, config.NormalizePaginationLimit(limit))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch mentors", err)
	}

	mentors := make([]model.Mentor, 0, len(users))
	for _, u := range users {
		mentors = append(mentors, u.MentorView())
	}
	return mentors, nil
}

// MentorSchedule is the hacker-facing view of one mentor's upcoming slots.
// Booked entries stay visible so hackers can see which windows are taken.
func (s *mentorshipService) MentorSchedule(ctx context.Context, mentorID string, limit int64) ([]model.HackerSlotView, error) {
	filter := model.SlotFilter{
		StartAfter: s.clock.Now().Unix(),
		Limit:      config.NormalizePaginationLimit(limit),
	}
	slots, err := s.repo.FindByMentor(ctx, mentorID, filter)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch mentor schedule", err)
	}
	return hackerViews(slots), nil
}

// HackerBookings lists the slots the caller has booked.
func (s *mentorshipService) HackerBookings(ctx context.Context, hackerID string, opts ViewOptions) ([]model.HackerSlotView, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	slots, err := s.repo.FindByHacker(ctx, hackerID, s.slotFilter(opts))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch bookings", err)
	}
	return hackerViews(slots), nil
}

func (s *mentorshipService) findSlot(ctx context.Context, slotID string) (*model.MentorshipSlot, error) {
	if slotID == "" {
		return nil, apperr.InvalidInput("Slot ID cannot be empty")
	}
	slot, err := s.repo.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mentorshiperrors.ErrNotFound) {
			return nil, apperr.NotFoundWithID("Slot", slotID)
		}
		if errors.Is(err, mentorshiperrors.ErrInvalidID) {
			return nil, apperr.InvalidInput("Invalid slot ID format")
		}
		return nil, apperr.Internal("Failed to fetch slot", err)
	}
	return slot, nil
}

func filterByBooking(slots []*model.MentorshipSlot, opts ViewOptions) []*model.MentorshipSlot {
	if !opts.BookedOnly && !opts.AvailableOnly {
		return slots
	}
	filtered := make([]*model.MentorshipSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Booked() == opts.BookedOnly {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

func hackerViews(slots []*model.MentorshipSlot) []model.HackerSlotView {
	views := make([]model.HackerSlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, slot.HackerView())
	}
	return views
}
