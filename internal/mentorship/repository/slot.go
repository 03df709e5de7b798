package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	mentorshiperrors "hackportal/internal/mentorship/errors"
	"hackportal/pkg/config"
	mongotx "hackportal/pkg/db/mongo"
	"hackportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "mentorships"
)

// SlotRepository owns persisted slot state. The booking service is the only
// caller of the booking-field writers.
type SlotRepository interface {
	FindByID(ctx context.Context, id string) (*model.MentorshipSlot, error)

	// FindManyByIDs returns exactly the slots whose ids were requested;
	// callers compare cardinality to detect missing documents. Meant to run
	// inside a transaction context.
	FindManyByIDs(ctx context.Context, ids []string) ([]*model.MentorshipSlot, error)

	FindByMentor(ctx context.Context, mentorID string, filter model.SlotFilter) ([]*model.MentorshipSlot, error)
	FindByHacker(ctx context.Context, hackerID string, filter model.SlotFilter) ([]*model.MentorshipSlot, error)
	CountFutureByHacker(ctx context.Context, hackerID string, now int64) (int64, error)

	SetBookingFields(ctx context.Context, id string, fields model.BookingFields) error
	ClearBookingFields(ctx context.Context, id string) error
	UpdateAnnotations(ctx context.Context, id string, a *model.SlotAnnotations) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoSlotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoSlotRepository(cfg *config.Config) SlotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout bounds standalone reads/writes. Contexts already bound to a
// transaction session pass through untouched so they keep their semantics.
func (r *mongoSlotRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoSlotRepository) FindByID(ctx context.Context, id string) (*model.MentorshipSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", mentorshiperrors.ErrInvalidID, id)
	}

	var slot model.MentorshipSlot
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mentorshiperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}

	return &slot, nil
}

func (r *mongoSlotRepository) FindManyByIDs(ctx context.Context, ids []string) ([]*model.MentorshipSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", mentorshiperrors.ErrInvalidID, id)
		}
		objectIDs = append(objectIDs, oid)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*model.MentorshipSlot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}

	return slots, nil
}

func (r *mongoSlotRepository) FindByMentor(ctx context.Context, mentorID string, filter model.SlotFilter) ([]*model.MentorshipSlot, error) {
	return r.findByField(ctx, "mentor_id", mentorID, filter)
}

func (r *mongoSlotRepository) FindByHacker(ctx context.Context, hackerID string, filter model.SlotFilter) ([]*model.MentorshipSlot, error) {
	return r.findByField(ctx, "hacker_id", hackerID, filter)
}

func (r *mongoSlotRepository) findByField(ctx context.Context, field, value string, filter model.SlotFilter) ([]*model.MentorshipSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := bson.M{field: value}
	timeBounds := bson.M{}
	if filter.StartAfter > 0 {
		timeBounds["$gte"] = filter.StartAfter
	}
	if filter.StartBefore > 0 {
		timeBounds["$lte"] = filter.StartBefore
	}
	if len(timeBounds) > 0 {
		query["start_time"] = timeBounds
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*model.MentorshipSlot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}

	return slots, nil
}

func (r *mongoSlotRepository) CountFutureByHacker(ctx context.Context, hackerID string, now int64) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"hacker_id":  hackerID,
		"start_time": bson.M{"$gt": now},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count future bookings: %w", err)
	}

	return count, nil
}

func (r *mongoSlotRepository) SetBookingFields(ctx context.Context, id string, fields model.BookingFields) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", mentorshiperrors.ErrInvalidID, id)
	}

	set := bson.M{
		"hacker_id":          fields.HackerID,
		"hacker_name":        fields.HackerName,
		"team_name":          fields.TeamName,
		"hacker_description": fields.HackerDescription,
	}
	update := bson.M{"$set": set}
	if fields.OfflineLocation != "" {
		set["offline_location"] = fields.OfflineLocation
	} else {
		update["$unset"] = bson.M{"offline_location": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to set booking fields: %w", err)
	}
	if result.MatchedCount == 0 {
		return mentorshiperrors.ErrNotFound
	}

	return nil
}

func (r *mongoSlotRepository) ClearBookingFields(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", mentorshiperrors.ErrInvalidID, id)
	}

	// The booking fields leave and arrive as a unit.
	update := bson.M{"$unset": bson.M{
		"hacker_id":          "",
		"hacker_name":        "",
		"team_name":          "",
		"hacker_description": "",
		"offline_location":   "",
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to clear booking fields: %w", err)
	}
	if result.MatchedCount == 0 {
		return mentorshiperrors.ErrNotFound
	}

	return nil
}

func (r *mongoSlotRepository) UpdateAnnotations(ctx context.Context, id string, a *model.SlotAnnotations) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", mentorshiperrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if a.MentorNotes != nil {
		set["mentor_notes"] = *a.MentorNotes
	}
	if a.MentorMarkAsDone != nil {
		set["mentor_mark_as_done"] = *a.MentorMarkAsDone
	}
	if a.MentorMarkAsAfk != nil {
		set["mentor_mark_as_afk"] = *a.MentorMarkAsAfk
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update annotations: %w", err)
	}
	if result.MatchedCount == 0 {
		return mentorshiperrors.ErrNotFound
	}

	return nil
}

func (r *mongoSlotRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
