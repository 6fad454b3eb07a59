package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/swasthya/subcenter-api/config"
	"github.com/swasthya/subcenter-api/internal/email"
	"github.com/swasthya/subcenter-api/internal/handler"
	attendanceHandler "github.com/swasthya/subcenter-api/internal/handler/attendance"
	authHandler "github.com/swasthya/subcenter-api/internal/handler/auth"
	locationHandler "github.com/swasthya/subcenter-api/internal/handler/location"
	patientHandler "github.com/swasthya/subcenter-api/internal/handler/patient"
	staffHandler "github.com/swasthya/subcenter-api/internal/handler/staff"
	"github.com/swasthya/subcenter-api/internal/middleware"
	"github.com/swasthya/subcenter-api/internal/repository/postgres"
	"github.com/swasthya/subcenter-api/internal/repository/redis"
	"github.com/swasthya/subcenter-api/internal/router"
	attendanceService "github.com/swasthya/subcenter-api/internal/service/attendance"
	authService "github.com/swasthya/subcenter-api/internal/service/auth"
	locationService "github.com/swasthya/subcenter-api/internal/service/location"
	patientService "github.com/swasthya/subcenter-api/internal/service/patient"
	staffService "github.com/swasthya/subcenter-api/internal/service/staff"
	"github.com/swasthya/subcenter-api/pkg/auth"
	"github.com/swasthya/subcenter-api/pkg/logger"
	"github.com/swasthya/subcenter-api/pkg/security"
	"github.com/swasthya/subcenter-api/pkg/timewindow"
	"github.com/swasthya/subcenter-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Logging.Pretty,
	})

	if err := validator.Register(); err != nil {
		log.Fatal(err, "failed to register request validations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}
	defer redisClient.Close()

	// Repositories
	staffRepo := postgres.NewStaffRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	revisitRepo := postgres.NewRevisitRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	tokenRepo := redis.NewTokenRepository(redisClient)

	// Shared infrastructure
	hasher := security.NewBcryptHasher(0)
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	mailer := email.NewNoop()
	if cfg.SMTP.Host != "" {
		mailer = email.NewSMTPService(cfg.SMTP)
	}

	// Services
	authSvc := authService.NewService(staffRepo, tokenRepo, hasher, tokens, mailer, log)
	staffSvc := staffService.NewService(staffRepo)
	locationSvc := locationService.NewService(locationRepo, cfg.Location.CacheTTL)
	attendanceSvc := attendanceService.NewService(staffRepo, attendanceRepo, locationSvc, hasher, mailer, cfg.Attendance, log)
	window := timewindow.NewPolicy(time.Duration(cfg.Records.EditWindowHours) * time.Hour)
	patientSvc := patientService.NewService(patientRepo, revisitRepo, window)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	h := handler.NewHandler(db)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		staffHandler.NewHandler(staffSvc),
		attendanceHandler.NewHandler(attendanceSvc),
		patientHandler.NewHandler(patientSvc, authSvc),
		locationHandler.NewHandler(locationSvc),
		h,
		log,
		router.Config{
			RateLimitRPS: cfg.RateLimit.RPS,
			RateBurst:    cfg.RateLimit.Burst,
			CORSConfig:   corsConfig,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{"port": cfg.Server.Port}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
