package repository

import (
	"context"
	"errors"
	"time"

	apperrors "hackportal/internal/application/errors"
	"hackportal/pkg/config"
	"hackportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "applications"
)

// One application document per user, keyed by the user's uid.
type ApplicationRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.Application, error)
	Save(ctx context.Context, app *model.Application) error
}

type mongoApplicationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoApplicationRepository(cfg *config.Config) ApplicationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoApplicationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoApplicationRepository) FindByUser(ctx context.Context, userID string) (*model.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var app model.Application
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *mongoApplicationRepository) Save(ctx context.Context, app *model.Application) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	app.ID = app.UserID
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": app.UserID},
		app,
		options.Replace().SetUpsert(true),
	)
	return err
}
