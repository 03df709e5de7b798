package repository

import (
	"context"
	"errors"
	"fmt"

	mentorshiperrors "hackportal/internal/mentorship/errors"
	"hackportal/pkg/config"
	"hackportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	ConfigCollectionName = "config"
	configDocumentID     = "mentorship"
)

// ConfigRepository reads the single mentorship config document.
type ConfigRepository interface {
	Get(ctx context.Context) (*model.MentorshipConfig, error)
}

type mongoConfigRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoConfigRepository(cfg *config.Config) ConfigRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoConfigRepository{
		cfg:        cfg,
		collection: db.Collection(ConfigCollectionName),
	}
}

func (r *mongoConfigRepository) Get(ctx context.Context) (*model.MentorshipConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var mc model.MentorshipConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": configDocumentID}).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mentorshiperrors.ErrConfigMissing
		}
		return nil, fmt.Errorf("failed to read mentorship config: %w", err)
	}

	return &mc, nil
}
