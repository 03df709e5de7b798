package repository

import (
	"context"
	"errors"
	"time"

	ticketserrors "hackportal/internal/tickets/errors"
	"hackportal/pkg/config"
	"hackportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "tickets"
)

// TicketFilter narrows ticket listings. Nil booleans mean "any".
type TicketFilter struct {
	RequestorID string
	Resolved    *bool
	Taken       *bool
	Limit       int64
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	FindByID(ctx context.Context, id string) (*model.Ticket, error)
	FindAll(ctx context.Context, filter TicketFilter) ([]*model.Ticket, error)
	Update(ctx context.Context, id string, update *model.TicketUpdate) error
	Delete(ctx context.Context, id string) error
}

type mongoTicketRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTicketRepository(cfg *config.Config) TicketRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTicketRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoTicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ticket.ID = ""
	result, err := r.collection.InsertOne(ctx, ticket)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		ticket.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTicketRepository) FindByID(ctx context.Context, id string) (*model.Ticket, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ticketserrors.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ticket model.Ticket
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&ticket); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ticketserrors.ErrNotFound
		}
		return nil, err
	}
	ticket.ID = id
	return &ticket, nil
}

func (r *mongoTicketRepository) FindAll(ctx context.Context, filter TicketFilter) ([]*model.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.RequestorID != "" {
		query["requestor_id"] = filter.RequestorID
	}
	if filter.Resolved != nil {
		query["resolved"] = *filter.Resolved
	}
	if filter.Taken != nil {
		query["taken"] = *filter.Taken
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*model.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *mongoTicketRepository) Update(ctx context.Context, id string, update *model.TicketUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ticketserrors.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if update.Topic != "" {
		set["topic"] = update.Topic
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if update.Location != "" {
		set["location"] = update.Location
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	if update.Taken != nil {
		set["taken"] = *update.Taken
	}
	if update.Resolved != nil {
		set["resolved"] = *update.Resolved
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ticketserrors.ErrNotFound
	}
	return nil
}

func (r *mongoTicketRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ticketserrors.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ticketserrors.ErrNotFound
	}
	return nil
}
