package main

import (
	"os"

	applicationhandler "hackportal/internal/application/handler"
	applicationrepo "hackportal/internal/application/repository"
	applicationservice "hackportal/internal/application/service"
	"hackportal/internal/application/storage"
	"hackportal/internal/auth"
	mentorshiphandler "hackportal/internal/mentorship/handler"
	mentorshiprepo "hackportal/internal/mentorship/repository"
	mentorshipservice "hackportal/internal/mentorship/service"
	"hackportal/internal/mentorship/validator"
	"hackportal/internal/notifications"
	tickethandler "hackportal/internal/tickets/handler"
	ticketrepo "hackportal/internal/tickets/repository"
	ticketservice "hackportal/internal/tickets/service"
	userhandler "hackportal/internal/users/handler"
	userrepo "hackportal/internal/users/repository"
	userservice "hackportal/internal/users/service"
	"hackportal/pkg/app"
	"hackportal/pkg/clock"
	"hackportal/pkg/config"
	"hackportal/pkg/contracts"
	"hackportal/pkg/kafka"
	kafka_config "hackportal/pkg/kafka/config"
)

const (
	ServiceName        = "portal"
	NotificationsTopic = "mentorship.notifications"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetStorage()

	cfg.Log.Info("Starting portal service")

	verifier := auth.NewSessionVerifier(cfg.SessionHashKey, cfg.SessionBlockKey)
	dispatcher, closeProducer := initDispatcher(cfg)

	handlers, closeHooks := initHandlers(cfg, verifier, dispatcher)
	closeHooks = append(closeHooks, closeProducer)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handlers, closeHooks...)
	serverApp.Run()

	cfg.GracefulShutdown()
}

func initHandlers(cfg *config.Config, verifier *auth.SessionVerifier, dispatcher notifications.Dispatcher) ([]contracts.Handler, []func()) {
	clk := clock.System()

	users := userservice.NewUserService(userrepo.NewMongoUserRepository(cfg), cfg.Log)

	mentorships := mentorshipservice.NewMentorshipService(
		mentorshiprepo.NewMongoSlotRepository(cfg),
		mentorshiprepo.NewMongoConfigRepository(cfg),
		users,
		dispatcher,
		validator.NewBookingValidator(cfg.Log),
		clk,
		cfg,
	)

	tickets := ticketservice.NewTicketService(ticketrepo.NewMongoTicketRepository(cfg), cfg.Log)

	applications := applicationservice.NewApplicationService(
		applicationrepo.NewMongoApplicationRepository(cfg),
		applicationrepo.NewMongoQuestionRepository(cfg),
		storage.NewS3Uploader(cfg.Client.Storage, cfg.StorageBucket, cfg.Log),
		clk,
		cfg.Log,
	)

	cfg.Log.Info("Portal services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		mentorshiphandler.NewMentorshipHandler(mentorships, verifier, cfg.Log),
		userhandler.NewUserHandler(users, verifier, cfg.Log),
		tickethandler.NewTicketHandler(tickets, verifier, cfg.Log),
		applicationhandler.NewApplicationHandler(applications, verifier, cfg.Log),
	}, nil
}

// initDispatcher wires the Kafka producer when brokers are configured and
// falls back to log-only delivery otherwise.
func initDispatcher(cfg *config.Config) (notifications.Dispatcher, func()) {
	if os.Getenv(kafka_config.EnvKafkaBrokers) == "" {
		cfg.Log.Info("No Kafka brokers configured, notifications will be logged only")
		return notifications.NewLogDispatcher(cfg.Log), func() {}
	}

	producer, err := kafka.NewProducer(kafka_config.Load(), NotificationsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	return notifications.NewKafkaDispatcher(producer, cfg.Log), func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}
