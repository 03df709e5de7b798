package service

import (
	"context"
	"io"
	"testing"
	"time"

	mentorshiperrors "hackportal/internal/mentorship/errors"
	"hackportal/internal/mentorship/validator"
	"hackportal/internal/notifications"
	"hackportal/pkg/apperr"
	"hackportal/pkg/clock"
	"hackportal/pkg/config"
	mongotx "hackportal/pkg/db/mongo"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"
)

type fakeSlotRepository struct {
	findByIDFn            func(ctx context.Context, id string) (*model.MentorshipSlot, error)
	findManyByIDsFn       func(ctx context.Context, ids []string) ([]*model.MentorshipSlot, error)
	findByMentorFn        func(ctx context.Context, mentorID string, filter model.SlotFilter) ([]*model.MentorshipSlot, error)
	findByHackerFn        func(ctx context.Context, hackerID string, filter model.SlotFilter) ([]*model.MentorshipSlot, error)
	countFutureByHackerFn func(ctx context.Context, hackerID string, now int64) (int64, error)
	setBookingFieldsFn    func(ctx context.Context, id string, fields model.BookingFields) error
	clearBookingFieldsFn  func(ctx context.Context, id string) error
	updateAnnotationsFn   func(ctx context.Context, id string, a *model.SlotAnnotations) error
}

func (f *fakeSlotRepository) FindByID(ctx context.Context, id string) (*model.MentorshipSlot, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeSlotRepository) FindManyByIDs(ctx context.Context, ids []string) ([]*model.MentorshipSlot, error) {
	return f.findManyByIDsFn(ctx, ids)
}

func (f *fakeSlotRepository) FindByMentor(ctx context.Context, mentorID string, filter model.SlotFilter) ([]*model.MentorshipSlot, error) {
	return f.findByMentorFn(ctx, mentorID, filter)
}

func (f *fakeSlotRepository) FindByHacker(ctx context.Context, hackerID string, filter model.SlotFilter) ([]*model.MentorshipSlot, error) {
	return f.findByHackerFn(ctx, hackerID, filter)
}

func (f *fakeSlotRepository) CountFutureByHacker(ctx context.Context, hackerID string, now int64) (int64, error) {
	if f.countFutureByHackerFn == nil {
		return 0, nil
	}
	return f.countFutureByHackerFn(ctx, hackerID, now)
}

func (f *fakeSlotRepository) SetBookingFields(ctx context.Context, id string, fields model.BookingFields) error {
	return f.setBookingFieldsFn(ctx, id, fields)
}

func (f *fakeSlotRepository) ClearBookingFields(ctx context.Context, id string) error {
	return f.clearBookingFieldsFn(ctx, id)
}

func (f *fakeSlotRepository) UpdateAnnotations(ctx context.Context, id string, a *model.SlotAnnotations) error {
	return f.updateAnnotationsFn(ctx, id, a)
}

// ExecuteTransaction runs the callback inline; the session plumbing belongs
// to the mongo implementation.
func (f *fakeSlotRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(ctx)
}

type fakeConfigRepository struct {
	config *model.MentorshipConfig
	err    error
}

func (f *fakeConfigRepository) Get(ctx context.Context) (*model.MentorshipConfig, error) {
	return f.config, f.err
}

type fakeUserDirectory struct {
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findMentorsFn func(ctx context.Context, limit int64) ([]*model.User, error)
}

func (f *fakeUserDirectory) FindByID(ctx context.Context, id string) (*model.User, error) {
	if f.findByIDFn == nil {
		return &model.User{ID: id, Email: "mentor@example.com", FirstName: "Mentor"}, nil
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeUserDirectory) FindMentors(ctx context.Context, limit int64) ([]*model.User, error) {
	return f.findMentorsFn(ctx, limit)
}

type recordingDispatcher struct {
	confirmed []notifications.Event
	cancelled []notifications.Event
}

func (d *recordingDispatcher) BookingConfirmed(_ context.Context, ev notifications.Event) {
	d.confirmed = append(d.confirmed, ev)
}

func (d *recordingDispatcher) BookingCancelled(_ context.Context, ev notifications.Event) {
	d.cancelled = append(d.cancelled, ev)
}

var testNow = time.Date(2026, time.July, 25, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: logger.FormatText, Output: io.Discard}),
	}
}

type serviceFixture struct {
	repo       *fakeSlotRepository
	configRepo *fakeConfigRepository
	users      *fakeUserDirectory
	dispatcher *recordingDispatcher
}

func newTestService(fx *serviceFixture) MentorshipService {
	if fx.configRepo == nil {
		fx.configRepo = &fakeConfigRepository{config: &model.MentorshipConfig{IsMentorshipOpen: true}}
	}
	if fx.users == nil {
		fx.users = &fakeUserDirectory{}
	}
	if fx.dispatcher == nil {
		fx.dispatcher = &recordingDispatcher{}
	}
	cfg := testConfig()
	return NewMentorshipService(
		fx.repo,
		fx.configRepo,
		fx.users,
		fx.dispatcher,
		validator.NewBookingValidator(cfg.Log),
		clock.Fixed(testNow),
		cfg,
	)
}

func freeSlot(id string, start time.Time) *model.MentorshipSlot {
	return &model.MentorshipSlot{
		ID:        id,
		MentorID:  "mentor-1",
		StartTime: start.Unix(),
		EndTime:   start.Add(30 * time.Minute).Unix(),
		Location:  model.LocationOnline,
	}
}

func bookingRequest(slotID string) model.BookingRequest {
	return model.BookingRequest{
		SlotID:            slotID,
		HackerName:        "Ada Lovelace",
		TeamName:          "Team Difference Engine",
		HackerDescription: "Stuck on our ranking model",
	}
}

func TestBookMany_Success(t *testing.T) {
	slots := []*model.MentorshipSlot{
		freeSlot("slot-1", testNow.Add(2*time.Hour)),
		freeSlot("slot-2", testNow.Add(3*time.Hour)),
	}
	written := map[string]model.BookingFields{}
	fx := &serviceFixture{
		repo: &fakeSlotRepository{
			findManyByIDsFn: func(_ context.Context, ids []string) ([]*model.MentorshipSlot, error) {
				return slots, nil
			},
			setBookingFieldsFn: func(_ context.Context, id string, fields model.BookingFields) error {
				written[id] = fields
				return nil
			},
		},
	}
	svc := newTestService(fx)

	n, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{
		bookingRequest("slot-1"),
		bookingRequest("slot-2"),
	})
	if err != nil {
		t.Fatalf("BookMany: %v", err)
	}
	if n != 2 {
		t.Fatalf("booked %d slots, want 2", n)
	}
	if len(written) != 2 {
		t.Fatalf("wrote booking fields for %d slots, want 2", len(written))
	}
	if written["slot-1"].HackerID != "hacker-1" {
		t.Errorf("slot-1 hacker id = %q, want hacker-1", written["slot-1"].HackerID)
	}
	if len(fx.dispatcher.confirmed) != 2 {
		t.Errorf("dispatched %d confirmations, want 2", len(fx.dispatcher.confirmed))
	}
}

func TestBookMany_OfflineLocationOnlyForOfflineSlots(t *testing.T) {
	online := freeSlot("slot-online", testNow.Add(2*time.Hour))
	offline := freeSlot("slot-offline", testNow.Add(3*time.Hour))
	offline.Location = model.LocationOffline

	written := map[string]model.BookingFields{}
	svc := newTestService(&serviceFixture{
		repo: &fakeSlotRepository{
			findManyByIDsFn: func(_ context.Context, _ []string) ([]*model.MentorshipSlot, error) {
				return []*model.MentorshipSlot{online, offline}, nil
			},
			setBookingFieldsFn: func(_ context.Context, id string, fields model.BookingFields) error {
				written[id] = fields
				return nil
			},
		},
	})

	reqOnline := bookingRequest("slot-online")
	reqOnline.OfflineLocation = "Table 4"
	reqOffline := bookingRequest("slot-offline")
	reqOffline.OfflineLocation = "Table 4"

	if _, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{reqOnline, reqOffline}); err != nil {
		t.Fatalf("BookMany: %v", err)
	}
	if got := written["slot-online"].OfflineLocation; got != "" {
		t.Errorf("online slot got offline location %q, want empty", got)
	}
	if got := written["slot-offline"].OfflineLocation; got != "Table 4" {
		t.Errorf("offline slot location = %q, want Table 4", got)
	}
}

func TestBookMany_QuotaExceeded(t *testing.T) {
	svc := newTestService(&serviceFixture{
		repo: &fakeSlotRepository{
			countFutureByHackerFn: func(_ context.Context, _ string, _ int64) (int64, error) {
				return 1, nil
			},
		},
	})

	_, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{
		bookingRequest("slot-1"),
		bookingRequest("slot-2"),
	})
	if !apperr.Is(err, apperr.KindQuotaExceeded) {
		t.Fatalf("kind = %v, want quota exceeded", apperr.KindOf(err))
	}
}

func TestBookMany_TooManyRequests(t *testing.T) {
	svc := newTestService(&serviceFixture{repo: &fakeSlotRepository{}})

	_, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{
		bookingRequest("slot-1"), bookingRequest("slot-2"), bookingRequest("slot-3"),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestBookMany_EmptyRequest(t *testing.T) {
	svc := newTestService(&serviceFixture{repo: &fakeSlotRepository{}})

	if _, err := svc.BookMany(context.Background(), "hacker-1", nil); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Fatalf("kind = %v, want invalid input", apperr.KindOf(err))
	}
}

func TestBookMany_DuplicateSlotIDs(t *testing.T) {
	svc := newTestService(&serviceFixture{repo: &fakeSlotRepository{}})

	_, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{
		bookingRequest("slot-1"),
		bookingRequest("slot-1"),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestBookMany_MentorshipClosed(t *testing.T) {
	svc := newTestService(&serviceFixture{
		repo:       &fakeSlotRepository{},
		configRepo: &fakeConfigRepository{config: &model.MentorshipConfig{IsMentorshipOpen: false}},
	})

	_, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{bookingRequest("slot-1")})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("kind = %v, want conflict", apperr.KindOf(err))
	}
}

func TestBookMany_ConfigMissing(t *testing.T) {
	svc := newTestService(&serviceFixture{
		repo:       &fakeSlotRepository{},
		configRepo: &fakeConfigRepository{err: mentorshiperrors.ErrConfigMissing},
	})

	_, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{bookingRequest("slot-1")})
	if !apperr.Is(err, apperr.KindInvalidInput) {
		t.Fatalf("kind = %v, want invalid input", apperr.KindOf(err))
	}
}

func TestBookMany_AllOrNothing(t *testing.T) {
	free := freeSlot("slot-1", testNow.Add(2*time.Hour))
	taken := freeSlot("slot-2", testNow.Add(3*time.Hour))
	taken.HackerID = "someone-else"

	writes := 0
	fx := &serviceFixture{
		repo: &fakeSlotRepository{
			findManyByIDsFn: func(_ context.Context, _ []string) ([]*model.MentorshipSlot, error) {
				return []*model.MentorshipSlot{free, taken}, nil
			},
			setBookingFieldsFn: func(_ context.Context, _ string, _ model.BookingFields) error {
				writes++
				return nil
			},
		},
	}
	svc := newTestService(fx)

	_, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{
		bookingRequest("slot-1"),
		bookingRequest("slot-2"),
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("kind = %v, want conflict", apperr.KindOf(err))
	}
	if writes != 0 {
		t.Errorf("wrote %d slots before the conflict check, want 0", writes)
	}
	if len(fx.dispatcher.confirmed) != 0 {
		t.Errorf("dispatched %d confirmations on failed booking, want 0", len(fx.dispatcher.confirmed))
	}
}

func TestBookMany_SlotMissing(t *testing.T) {
	svc := newTestService(&serviceFixture{
		repo: &fakeSlotRepository{
			findManyByIDsFn: func(_ context.Context, _ []string) ([]*model.MentorshipSlot, error) {
				return []*model.MentorshipSlot{freeSlot("slot-1", testNow.Add(2 * time.Hour))}, nil
			},
		},
	})

	_, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{
		bookingRequest("slot-1"),
		bookingRequest("slot-2"),
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
}

func TestBookMany_LeadTime(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		wantKind apperr.Kind
	}{
		{"starts in 29 minutes", testNow.Add(29 * time.Minute), apperr.KindConflict},
		{"already started", testNow.Add(-10 * time.Minute), apperr.KindConflict},
		{"starts in 31 minutes", testNow.Add(31 * time.Minute), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&serviceFixture{
				repo: &fakeSlotRepository{
					findManyByIDsFn: func(_ context.Context, _ []string) ([]*model.MentorshipSlot, error) {
						return []*model.MentorshipSlot{freeSlot("slot-1", tt.start)}, nil
					},
					setBookingFieldsFn: func(_ context.Context, _ string, _ model.BookingFields) error {
						return nil
					},
				},
			})

			_, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{bookingRequest("slot-1")})
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("BookMany: %v", err)
				}
				return
			}
			if !apperr.Is(err, tt.wantKind) {
				t.Fatalf("kind = %v, want %v", apperr.KindOf(err), tt.wantKind)
			}
		})
	}
}

func TestBookMany_SanitizesStrings(t *testing.T) {
	var written model.BookingFields
	svc := newTestService(&serviceFixture{
		repo: &fakeSlotRepository{
			findManyByIDsFn: func(_ context.Context, _ []string) ([]*model.MentorshipSlot, error) {
				return []*model.MentorshipSlot{freeSlot("slot-1", testNow.Add(2 * time.Hour))}, nil
			},
			setBookingFieldsFn: func(_ context.Context, _ string, fields model.BookingFields) error {
				written = fields
				return nil
			},
		},
	})

	req := bookingRequest("slot-1")
	req.HackerName = "  Ada   Lovelace  "
	if _, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{req}); err != nil {
		t.Fatalf("BookMany: %v", err)
	}
	if written.HackerName != "Ada Lovelace" {
		t.Errorf("hacker name = %q, want normalized", written.HackerName)
	}
}

func TestCancelOne_Success(t *testing.T) {
	slot := freeSlot("slot-1", testNow.Add(2*time.Hour))
	slot.HackerID = "hacker-1"

	cleared := ""
	fx := &serviceFixture{
		repo: &fakeSlotRepository{
			findByIDFn: func(_ context.Context, id string) (*model.MentorshipSlot, error) {
				return slot, nil
			},
			clearBookingFieldsFn: func(_ context.Context, id string) error {
				cleared = id
				return nil
			},
		},
	}
	svc := newTestService(fx)

	if err := svc.CancelOne(context.Background(), "hacker-1", "slot-1"); err != nil {
		t.Fatalf("CancelOne: %v", err)
	}
	if cleared != "slot-1" {
		t.Errorf("cleared %q, want slot-1", cleared)
	}
	if len(fx.dispatcher.cancelled) != 1 {
		t.Errorf("dispatched %d cancellations, want 1", len(fx.dispatcher.cancelled))
	}
}

func TestCancelOne_NotOwner(t *testing.T) {
	slot := freeSlot("slot-1", testNow.Add(2*time.Hour))
	slot.HackerID = "someone-else"

	cleared := false
	fx := &serviceFixture{
		repo: &fakeSlotRepository{
			findByIDFn: func(_ context.Context, _ string) (*model.MentorshipSlot, error) {
				return slot, nil
			},
			clearBookingFieldsFn: func(_ context.Context, _ string) error {
				cleared = true
				return nil
			},
		},
	}
	svc := newTestService(fx)

	err := svc.CancelOne(context.Background(), "hacker-1", "slot-1")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("kind = %v, want unauthorized", apperr.KindOf(err))
	}
	if cleared {
		t.Error("unauthorized cancel cleared the booking")
	}
	if len(fx.dispatcher.cancelled) != 0 {
		t.Error("unauthorized cancel dispatched a notification")
	}
}

func TestCancelOne_LeadTime(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		wantErr bool
	}{
		{"starts in 44 minutes", testNow.Add(44 * time.Minute), true},
		{"starts in 46 minutes", testNow.Add(46 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := freeSlot("slot-1", tt.start)
			slot.HackerID = "hacker-1"
			svc := newTestService(&serviceFixture{
				repo: &fakeSlotRepository{
					findByIDFn: func(_ context.Context, _ string) (*model.MentorshipSlot, error) {
						return slot, nil
					},
					clearBookingFieldsFn: func(_ context.Context, _ string) error { return nil },
				},
			})

			err := svc.CancelOne(context.Background(), "hacker-1", "slot-1")
			if tt.wantErr {
				if !apperr.Is(err, apperr.KindConflict) {
					t.Fatalf("kind = %v, want conflict", apperr.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("CancelOne: %v", err)
			}
		})
	}
}

func TestCancelOne_NotFound(t *testing.T) {
	svc := newTestService(&serviceFixture{
		repo: &fakeSlotRepository{
			findByIDFn: func(_ context.Context, _ string) (*model.MentorshipSlot, error) {
				return nil, mentorshiperrors.ErrNotFound
			},
		},
	})

	if err := svc.CancelOne(context.Background(), "hacker-1", "slot-1"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
}

func TestBookMany_MentorLookupFailureStillBooks(t *testing.T) {
	svc := newTestService(&serviceFixture{
		repo: &fakeSlotRepository{
			findManyByIDsFn: func(_ context.Context, _ []string) ([]*model.MentorshipSlot, error) {
				return []*model.MentorshipSlot{freeSlot("slot-1", testNow.Add(2 * time.Hour))}, nil
			},
			setBookingFieldsFn: func(_ context.Context, _ string, _ model.BookingFields) error {
				return nil
			},
		},
		users: &fakeUserDirectory{
			findByIDFn: func(_ context.Context, _ string) (*model.User, error) {
				return nil, context.DeadlineExceeded
			},
		},
	})

	if _, err := svc.BookMany(context.Background(), "hacker-1", []model.BookingRequest{bookingRequest("slot-1")}); err != nil {
		t.Fatalf("BookMany: %v", err)
	}
}
