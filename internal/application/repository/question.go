package repository

import (
	"context"
	"time"

	"hackportal/pkg/config"
	"hackportal/pkg/model"

	lru "github.com/hashicorp/golang-lru"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	QuestionCollectionName = "questions"

	questionCacheSize = 16
	questionCacheTTL  = 5 * time.Minute
)

type QuestionRepository interface {
	FindByState(ctx context.Context, state model.ApplicationState) ([]*model.Question, error)
	FindAll(ctx context.Context) ([]*model.Question, error)
}

// cachedQuestions pins one state's question list with its load time.
type cachedQuestions struct {
	questions []*model.Question
	loadedAt  time.Time
}

// mongoQuestionRepository caches per-state question lists in an LRU.
// Questions change rarely (admins edit them between events), so a short TTL
// keeps every form render from hitting the database.
type mongoQuestionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	cache      *lru.Cache
}

func NewMongoQuestionRepository(cfg *config.Config) QuestionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	cache, _ := lru.New(questionCacheSize)
	return &mongoQuestionRepository{
		cfg:        cfg,
		collection: db.Collection(QuestionCollectionName),
		cache:      cache,
	}
}

func (r *mongoQuestionRepository) FindByState(ctx context.Context, state model.ApplicationState) ([]*model.Question, error) {
	if v, ok := r.cache.Get(string(state)); ok {
		entry := v.(cachedQuestions)
		if time.Since(entry.loadedAt) < questionCacheTTL {
			return entry.questions, nil
		}
		r.cache.Remove(string(state))
	}

	questions, err := r.find(ctx, bson.M{"state": string(state)})
	if err != nil {
		return nil, err
	}

	r.cache.Add(string(state), cachedQuestions{questions: questions, loadedAt: time.Now()})
	return questions, nil
}

func (r *mongoQuestionRepository) FindAll(ctx context.Context) ([]*model.Question, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoQuestionRepository) find(ctx context.Context, query bson.M) ([]*model.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
