package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	mentorshiperrors "hackportal/internal/mentorship/errors"
	"hackportal/internal/mentorship/repository"
	"hackportal/internal/mentorship/validator"
	"hackportal/internal/notifications"
	"hackportal/pkg/apperr"
	"hackportal/pkg/clock"
	"hackportal/pkg/config"
	"hackportal/pkg/model"
	"hackportal/pkg/sanitizer"
)

const (
	// MaxConcurrentBookings caps a hacker's future bookings. Past slots do
	// not count against it.
	MaxConcurrentBookings = 2

	// A slot cannot be booked once it starts within this window.
	BookingLeadTime = 30 * time.Minute

	// A booking cannot be cancelled once the slot starts within this
	// window. Longer than the booking lead time on purpose: cancelling
	// late leaves the mentor idle, booking late only squeezes the hacker.
	CancellationLeadTime = 45 * time.Minute
)

// UserDirectory resolves mentor accounts for views and notifications.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindMentors(ctx context.Context, limit int64) ([]*model.User, error)
}

type MentorshipService interface {
	Config(ctx context.Context) (*model.MentorshipConfig, error)

	BookMany(ctx context.Context, hackerID string, reqs []model.BookingRequest) (int, error)
	CancelOne(ctx context.Context, hackerID string, slotID string) error

	MentorSlots(ctx context.Context, mentorID string, opts ViewOptions) ([]*model.MentorshipSlot, error)
	MentorSlot(ctx context.Context, callerID string, isMentor bool, slotID string) (*model.MentorshipSlot, error)
	AnnotateSlot(ctx context.Context, mentorID string, slotID string, a *model.SlotAnnotations) error

	Mentors(ctx context.Context, limit int64) ([]model.Mentor, error)
	MentorSchedule(ctx context.Context, mentorID string, limit int64) ([]model.HackerSlotView, error)
	HackerBookings(ctx context.Context, hackerID string, opts ViewOptions) ([]model.HackerSlotView, error)
}

type mentorshipService struct {
	repo       repository.SlotRepository
	configRepo repository.ConfigRepository
	users      UserDirectory
	dispatcher notifications.Dispatcher
	validator  *validator.BookingValidator
	clock      clock.Clock
	cfg        *config.Config
}

func NewMentorshipService(
	repo repository.SlotRepository,
	configRepo repository.ConfigRepository,
	users UserDirectory,
	dispatcher notifications.Dispatcher,
	bookingValidator *validator.BookingValidator,
	clk clock.Clock,
	cfg *config.Config,
) MentorshipService {
	return &mentorshipService{
		repo:       repo,
		configRepo: configRepo,
		users:      users,
		dispatcher: dispatcher,
		validator:  bookingValidator,
		clock:      clk,
		cfg:        cfg,
	}
}

func (s *mentorshipService) Config(ctx context.Context) (*model.MentorshipConfig, error) {
	mc, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, mentorshiperrors.ErrConfigMissing) {
			return nil, apperr.InvalidInput("Mentorship config is not set up")
		}
		return nil, apperr.Internal("Failed to read mentorship config", err)
	}
	return mc, nil
}

// BookMany reserves every requested slot or none of them. Checks that need
// no isolation run first; existence, availability and the lead-time rule
// are re-checked inside one store transaction so concurrent bookings of an
// overlapping slot set cannot both commit.
func (s *mentorshipService) BookMany(ctx context.Context, hackerID string, reqs []model.BookingRequest) (int, error) {
	if len(reqs) == 0 {
		return 0, apperr.InvalidInput("At least one mentorship slot must be requested")
	}
	if len(reqs) > MaxConcurrentBookings {
		return 0, apperr.Validation(
			fmt.Sprintf("At most %d slots can be booked per request", MaxConcurrentBookings), nil)
	}

	for i := range reqs {
		s.sanitize(&reqs[i])
	}
	if err := s.validator.ValidateRequests(reqs); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "hacker_id", hackerID, "error", err)
		return 0, apperr.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}

	mc, err := s.Config(ctx)
	if err != nil {
		return 0, err
	}
	if !mc.IsMentorshipOpen {
		return 0, apperr.Conflict("Mentorship booking is not open")
	}

	now := s.clock.Now().Unix()

	existing, err := s.repo.CountFutureByHacker(ctx, hackerID, now)
	if err != nil {
		return 0, apperr.Internal("Failed to count existing bookings", err)
	}
	if existing+int64(len(reqs)) > MaxConcurrentBookings {
		return 0, apperr.QuotaExceeded(fmt.Sprintf(
			"You can hold at most %d upcoming bookings; you already have %d", MaxConcurrentBookings, existing))
	}

	ids := make([]string, len(reqs))
	for i, req := range reqs {
		ids[i] = req.SlotID
	}

	var booked []*model.MentorshipSlot
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		slots, err := s.repo.FindManyByIDs(txCtx, ids)
		if err != nil {
			if errors.Is(err, mentorshiperrors.ErrInvalidID) {
				return apperr.InvalidInput("Invalid slot ID format")
			}
			return apperr.Internal("Failed to fetch requested slots", err)
		}
		if len(slots) != len(ids) {
			return apperr.NotFound("One or more requested slots")
		}

		cutoff := now + int64(BookingLeadTime.Seconds())
		byID := make(map[string]*model.MentorshipSlot, len(slots))
		for _, slot := range slots {
			if slot.Booked() {
				return apperr.Conflict("Slot is already booked").
					WithDetails(map[string]any{"slotId": slot.ID})
			}
			if slot.StartTime < cutoff {
				return apperr.Conflict("Slot is starting too soon to book").
					WithDetails(map[string]any{"slotId": slot.ID})
			}
			byID[slot.ID] = slot
		}

		for _, req := range reqs {
			slot := byID[req.SlotID]
			fields := model.BookingFields{
				HackerID:          hackerID,
				HackerName:        req.HackerName,
				TeamName:          req.TeamName,
				HackerDescription: req.HackerDescription,
			}
			if slot.Location == model.LocationOffline {
				fields.OfflineLocation = req.OfflineLocation
			}
			if err := s.repo.SetBookingFields(txCtx, slot.ID, fields); err != nil {
				return apperr.Internal("Failed to write booking", err)
			}

			slot.HackerID = fields.HackerID
			slot.HackerName = fields.HackerName
			slot.TeamName = fields.TeamName
			slot.HackerDescription = fields.HackerDescription
			slot.OfflineLocation = fields.OfflineLocation
		}

		booked = slots
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Booking transaction failed", "hacker_id", hackerID, "slot_ids", ids, "error", err)
		return 0, err
	}

	// Outside the transaction: the booking already stands, email is
	// best-effort.
	for _, slot := range booked {
		s.dispatcher.BookingConfirmed(ctx, s.eventFor(ctx, slot))
	}

	s.cfg.Log.Info("Slots booked", "hacker_id", hackerID, "count", len(booked))
	return len(booked), nil
}

// CancelOne releases a single booking owned by the caller. This is a
// single-document update against the just-read snapshot; unlike booking it
// takes no transaction, accepting a narrow race with a concurrent booking.
func (s *mentorshipService) CancelOne(ctx context.Context, hackerID string, slotID string) error {
	if slotID == "" {
		return apperr.InvalidInput("Slot ID cannot be empty")
	}

	slot, err := s.repo.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mentorshiperrors.ErrNotFound) {
			return apperr.NotFoundWithID("Slot", slotID)
		}
		if errors.Is(err, mentorshiperrors.ErrInvalidID) {
			return apperr.InvalidInput("Invalid slot ID format")
		}
		return apperr.Internal("Failed to fetch slot", err)
	}

	if slot.HackerID != hackerID {
		return apperr.Unauthorized("You can only cancel your own bookings")
	}

	now := s.clock.Now().Unix()
	if slot.StartTime < now+int64(CancellationLeadTime.Seconds()) {
		return apperr.Conflict(fmt.Sprintf(
			"Bookings cannot be cancelled within %d minutes of the start time",
			int(CancellationLeadTime.Minutes())))
	}

	s.dispatcher.BookingCancelled(ctx, s.eventFor(ctx, slot))

	if err := s.repo.ClearBookingFields(ctx, slotID); err != nil {
		if errors.Is(err, mentorshiperrors.ErrNotFound) {
			return apperr.NotFoundWithID("Slot", slotID)
		}
		return apperr.Internal("Failed to clear booking", err)
	}

	s.cfg.Log.Info("Booking cancelled", "hacker_id", hackerID, "slot_id", slotID)
	return nil
}

func (s *mentorshipService) sanitize(req *model.BookingRequest) {
	req.HackerName = sanitizer.NormalizeName(req.HackerName)
	req.TeamName = sanitizer.NormalizeName(req.TeamName)
	req.HackerDescription = sanitizer.NormalizeFreeText(req.HackerDescription)
	req.OfflineLocation = sanitizer.NormalizeName(req.OfflineLocation)
}

// eventFor enriches a notification with the mentor's contact details when
// the lookup succeeds; the event goes out either way.
func (s *mentorshipService) eventFor(ctx context.Context, slot *model.MentorshipSlot) notifications.Event {
	ev := notifications.Event{
		SlotID:     slot.ID,
		MentorID:   slot.MentorID,
		HackerID:   slot.HackerID,
		HackerName: slot.HackerName,
		TeamName:   slot.TeamName,
		StartTime:  slot.StartTime,
		EndTime:    slot.EndTime,
		Location:   slot.Location,
	}

	mentor, err := s.users.FindByID(ctx, slot.MentorID)
	if err != nil {
		s.cfg.Log.Warn("Failed to resolve mentor for notification", "mentor_id", slot.MentorID, "error", err)
		return ev
	}
	ev.MentorEmail = mentor.Email
	ev.MentorName = mentor.MentorView().Name
	return ev
}
