package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hackportal/internal/migrations/mongo/validators"
)

var (
	MentorshipIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "mentor_id", Value: 1},
			{Key: "start_time", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "hacker_id", Value: 1},
			{Key: "start_time", Value: 1},
		}},
		{Keys: bson.D{{Key: "start_time", Value: 1}}},
	}

	UserIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mentor", Value: 1}}},
	}

	TicketIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "requestor_id", Value: 1}}},
		{Keys: bson.D{
			{Key: "resolved", Value: 1},
			{Key: "taken", Value: 1},
		}},
	}

	QuestionIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "state", Value: 1},
			{Key: "order", Value: 1},
		}},
		{Keys: bson.D{{Key: "field", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
)

// RunMigration ensures the portal's collections, schema validators and
// indexes exist. Safe to run repeatedly.
func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("Running portal Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"mentorships": {
			Indexes:   MentorshipIndexes,
			Validator: validators.MentorshipValidator,
		},
		"users": {
			Indexes:   UserIndexes,
			Validator: validators.UserValidator,
		},
		"tickets": {
			Indexes:   TicketIndexes,
			Validator: validators.TicketValidator,
		},
		"questions": {
			Indexes:   QuestionIndexes,
			Validator: validators.QuestionValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	// The config and applications collections carry free-form documents;
	// they only need to exist.
	for _, name := range []string{"config", "applications"} {
		if err := ensureCollection(ctx, db, name, bson.M{}); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection()
		if len(validator) > 0 {
			opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else if len(validator) > 0 {
		fmt.Printf("Collection %s already exists, updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}
