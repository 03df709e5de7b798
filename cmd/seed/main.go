package main

import (
	"context"
	"fmt"
	"log"
	"time"

	applicationrepo "hackportal/internal/application/repository"
	"hackportal/internal/auth"
	mentorshiprepo "hackportal/internal/mentorship/repository"
	userrepo "hackportal/internal/users/repository"
	"hackportal/pkg/clock"
	"hackportal/pkg/config"
	"hackportal/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const JobName = "seed"

// Populates a local database with mentors, slots, questions and the
// mentorship config so the portal can be exercised without real data.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	users := userrepo.NewMongoUserRepository(cfg)

	mentorIDs := seedUsers(ctx, cfg, users)
	seedSlots(ctx, db, mentorIDs)
	seedQuestions(ctx, db)
	seedMentorshipConfig(ctx, db)
	printSampleSessions(cfg, mentorIDs)

	fmt.Println("Seeding completed successfully.")
}

func seedUsers(ctx context.Context, cfg *config.Config, users userrepo.UserRepository) []string {
	mentors := []*model.User{
		{
			ID:              uuid.NewString(),
			Email:           "nadia@example.com",
			FirstName:       "Nadia",
			LastName:        "Wijaya",
			Mentor:          true,
			Specialization:  "Mobile development",
			DiscordUsername: "nadia#2041",
			Intro:           "Android engineer, happy to debug Gradle with you.",
		},
		{
			ID:              uuid.NewString(),
			Email:           "bima@example.com",
			FirstName:       "Bima",
			LastName:        "Santoso",
			Mentor:          true,
			Specialization:  "Machine learning",
			DiscordUsername: "bima#7733",
			Intro:           "ML platform engineer. Bring your training loops.",
		},
	}
	hackers := []*model.User{
		{ID: uuid.NewString(), Email: "tari@example.com", FirstName: "Tari", LastName: "Putri", School: "SMA 8 Jakarta"},
		{ID: uuid.NewString(), Email: "eko@example.com", FirstName: "Eko", LastName: "Pratama", School: "Binus University"},
	}

	var mentorIDs []string
	for _, u := range append(mentors, hackers...) {
		if err := users.Upsert(ctx, u); err != nil {
			log.Fatalf("Seeding user %s failed: %v", u.Email, err)
		}
		if u.Mentor {
			mentorIDs = append(mentorIDs, u.ID)
		}
	}
	cfg.Log.Info("Users seeded", "mentors", len(mentors), "hackers", len(hackers))
	return mentorIDs
}

// seedSlots lays out back-to-back 30 minute windows for tomorrow morning,
// alternating online and offline.
func seedSlots(ctx context.Context, db *mongo.Database, mentorIDs []string) {
	now := clock.System().Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	var docs []any
	for _, mentorID := range mentorIDs {
		for i := 0; i < 8; i++ {
			start := dayStart.Add(time.Duration(i) * 30 * time.Minute)
			location := model.LocationOnline
			if i%2 == 1 {
				location = model.LocationOffline
			}
			docs = append(docs, model.MentorshipSlot{
				MentorID:  mentorID,
				StartTime: start.Unix(),
				EndTime:   start.Add(30 * time.Minute).Unix(),
				Location:  location,
			})
		}
	}

	if _, err := db.Collection(mentorshiprepo.CollectionName).InsertMany(ctx, docs); err != nil {
		log.Fatalf("Seeding slots failed: %v", err)
	}
	fmt.Printf("Seeded %d mentorship slots starting %s\n", len(docs), dayStart.Format(time.RFC3339))
}

func seedQuestions(ctx context.Context, db *mongo.Database) {
	questions := []any{
		model.Question{
			Order: 1, State: model.StateProfile, Field: "fullName",
			Text: "What is your full name?", Type: model.QuestionString,
			Validation: model.QuestionValidation{Required: true, MaxLength: 100},
		},
		model.Question{
			Order: 2, State: model.StateProfile, Field: "dateOfBirth",
			Text: "When were you born?", Type: model.QuestionDate,
			Validation: model.QuestionValidation{Required: true},
		},
		model.Question{
			Order: 3, State: model.StateInquiry, Field: "motivation",
			Text: "Why do you want to join?", Type: model.QuestionTextarea,
			Validation: model.QuestionValidation{Required: true, MinLength: 50, MaxLength: 1000},
		},
		model.Question{
			Order: 4, State: model.StateInquiry, Field: "shirtSize",
			Text: "What is your shirt size?", Type: model.QuestionDropdown,
			Options:    []string{"S", "M", "L", "XL"},
			Validation: model.QuestionValidation{Required: true},
		},
		model.Question{
			Order: 5, State: model.StateAdditionalQuestion, Field: "resume",
			Text: "Upload your resume", Type: model.QuestionFile,
			Validation: model.QuestionValidation{AllowedTypes: "application/pdf", MaxSizeMB: 2},
		},
	}

	if _, err := db.Collection(applicationrepo.QuestionCollectionName).InsertMany(ctx, questions); err != nil {
		log.Fatalf("Seeding questions failed: %v", err)
	}
	fmt.Printf("Seeded %d questions\n", len(questions))
}

func seedMentorshipConfig(ctx context.Context, db *mongo.Database) {
	now := clock.System().Now()
	doc := map[string]any{
		"_id":                "mentorship",
		"is_mentorship_open": true,
		"start_date":         now.Unix(),
		"end_date":           now.AddDate(0, 0, 3).Unix(),
	}

	if _, err := db.Collection("config").InsertOne(ctx, doc); err != nil {
		log.Printf("Seeding mentorship config skipped: %v", err)
		return
	}
	fmt.Println("Seeded mentorship config")
}

// printSampleSessions emits cookies for local curl testing when session
// keys are configured.
func printSampleSessions(cfg *config.Config, mentorIDs []string) {
	if len(cfg.SessionHashKey) == 0 {
		return
	}
	verifier := auth.NewSessionVerifier(cfg.SessionHashKey, cfg.SessionBlockKey)
	for _, mentorID := range mentorIDs {
		cookie, err := verifier.Encode(auth.Identity{UID: mentorID, Role: auth.RoleMentor})
		if err != nil {
			log.Printf("Encoding sample session failed: %v", err)
			continue
		}
		fmt.Printf("Sample mentor session (%s): %s=%s\n", mentorID, auth.CookieName, cookie)
	}
}
