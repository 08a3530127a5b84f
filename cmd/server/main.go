// @title Conference Schedule API
// @version 1.0
// @description API for managing conference presentations, rooms, and schedules.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"confschedule/config"
	"confschedule/internal/adapters/email"
	delivery "confschedule/internal/delivery/http"
	"confschedule/internal/delivery/http/controllers"
	"confschedule/internal/delivery/http/middleware"
	"confschedule/internal/repository/postgres"
	"confschedule/internal/seed"
	"confschedule/internal/services"
)

func main() {
	seedDemo := flag.Bool("seed", false, "insert demo data when the database is empty")
	flag.Parse()

	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	presentationRepo := postgres.NewPresentationRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	userService := services.NewUserService(userRepo)
	roomService := services.NewRoomService(roomRepo)
	presentationService := services.NewPresentationService(presentationRepo, userRepo)
	conflictChecker := services.NewConflictChecker(scheduleRepo)
	schedulingService := services.NewSchedulingService(
		userRepo, roomRepo, presentationRepo, scheduleRepo,
		conflictChecker, emailService, logger,
	)
	queryService := services.NewScheduleQueryService(userRepo, roomRepo, presentationRepo, scheduleRepo)

	if *seedDemo {
		if err := seed.Run(ctx,
			seed.Services{
				Users:         userService,
				Rooms:         roomService,
				Presentations: presentationService,
				Scheduling:    schedulingService,
			},
			seed.Repos{Users: userRepo, Rooms: roomRepo},
			logger,
		); err != nil {
			logger.Error("failed to seed demo data", "err", err)
			os.Exit(1)
		}
	}

	userController := controllers.NewUserController(logger, userService)
	roomController := controllers.NewRoomController(logger, roomService)
	presentationController := controllers.NewPresentationController(logger, presentationService, queryService)
	scheduleController := controllers.NewScheduleController(logger, schedulingService, queryService)

	mux := delivery.NewRouter(userController, roomController, presentationController, scheduleController)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.Metrics(handler)
	handler = middleware.RequestID(handler)

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
