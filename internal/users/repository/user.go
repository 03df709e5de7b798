package repository

import (
	"context"
	"errors"
	"time"

	userserrors "hackportal/internal/users/errors"
	"hackportal/pkg/config"
	"hackportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "users"
)

// User documents are keyed by the identity provider's uid, so _id is a
// plain string rather than an ObjectID.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindMentors(ctx context.Context, limit int64) ([]*model.User, error)
	Update(ctx context.Context, id string, update *model.UserUpdate) error
	Upsert(ctx context.Context, user *model.User) error
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userserrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) FindMentors(ctx context.Context, limit int64) ([]*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "first_name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"mentor": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, id string, update *model.UserUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if update.FirstName != "" {
		set["first_name"] = update.FirstName
	}
	if update.LastName != "" {
		set["last_name"] = update.LastName
	}
	if update.DateOfBirth != "" {
		set["date_of_birth"] = update.DateOfBirth
	}
	if update.School != "" {
		set["school"] = update.School
	}
	if update.Grade != nil {
		set["grade"] = *update.Grade
	}
	if update.Year != nil {
		set["year"] = *update.Year
	}
	if update.GenderIdentity != "" {
		set["gender_identity"] = update.GenderIdentity
	}
	if update.Portfolio != "" {
		set["portfolio"] = update.Portfolio
	}
	if update.Github != "" {
		set["github"] = update.Github
	}
	if update.Linkedin != "" {
		set["linkedin"] = update.Linkedin
	}
	if len(set) == 0 {
		return userserrors.ErrEmptyUpdate
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return userserrors.ErrNotFound
	}
	return nil
}

// Upsert writes a whole user document. Used by the seeder.
func (r *mongoUserRepository) Upsert(ctx context.Context, user *model.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": user.ID},
		user,
		options.Replace().SetUpsert(true),
	)
	return err
}
