package main

import (
	"net/http"

	"github.com/aangsquared/Events-Planner/src/internal/adaptors/cache"
	"github.com/aangsquared/Events-Planner/src/internal/adaptors/persistance"
	"github.com/aangsquared/Events-Planner/src/internal/adaptors/ticketmaster"
	"github.com/aangsquared/Events-Planner/src/internal/config"
	eventhandler "github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/handler/event"
	registrationhandler "github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/handler/registration"
	userhandler "github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/handler/user"
	"github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/middleware"
	"github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/routes"
	eventservice "github.com/aangsquared/Events-Planner/src/internal/usecase/event"
	registrationservice "github.com/aangsquared/Events-Planner/src/internal/usecase/registration"
	userservice "github.com/aangsquared/Events-Planner/src/internal/usecase/user"
	"github.com/aangsquared/Events-Planner/src/pkg/migrate"
	"github.com/aangsquared/Events-Planner/src/pkg/utilities"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Loadconfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logrus.Info("Configuration loaded successfully")

	utilities.SetJWTSecret(cfg.JWT_SECRET)

	database, err := persistance.NewDatabase(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logrus.Info("Connected to database")

	migrator := migrate.NewMigrate(database.GetDB(), "./src/migrations")
	if err := migrator.RunMigrations(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	logrus.Info("Database migrations completed")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.REDIS_ADDR,
		Password: cfg.REDIS_PASS,
		DB:       cfg.REDIS_DB,
	})
	defer redisClient.Close()

	eventRepo := persistance.NewEventRepo(database)
	registrationRepo := persistance.NewRegistrationRepo(database)
	userRepo := persistance.NewUserRepo(database)

	legCache := cache.NewLegCache(redisClient)
	sessionStore := cache.NewSessionStore(redisClient)
	tmClient := ticketmaster.NewClient(cfg.TICKETMASTER_API_KEY, cfg.TICKETMASTER_BASE_URL)
	mailer := utilities.NewMailer(cfg.SMTP_HOST, cfg.SMTP_PORT, cfg.SMTP_USER, cfg.SMTP_PASS)

	eventService := eventservice.NewService(&eventRepo, &registrationRepo, tmClient, legCache)
	registrationService := registrationservice.NewService(&registrationRepo, &eventRepo, &eventService, mailer)
	userService := userservice.NewService(&userRepo, sessionStore)

	eventHandler := eventhandler.NewEventHandler(eventService)
	registrationHandler := registrationhandler.NewRegistrationHandler(registrationService)
	userHandler := userhandler.NewUserHandler(userService)

	auth := middleware.NewAuth(sessionStore)
	router := routes.InitRoutes(auth, userHandler, eventHandler, registrationHandler)

	port := cfg.APP_PORT
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	logrus.Infof("Server listening on port %s", port)
	if err := server.ListenAndServe(); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
