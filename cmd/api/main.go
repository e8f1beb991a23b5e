package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/booking-api/internal/config"
	"github.com/jwalitptl/booking-api/internal/handler"
	appointmentHandler "github.com/jwalitptl/booking-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/booking-api/internal/handler/auth"
	doctorHandler "github.com/jwalitptl/booking-api/internal/handler/doctor"
	patientHandler "github.com/jwalitptl/booking-api/internal/handler/patient"
	scheduleHandler "github.com/jwalitptl/booking-api/internal/handler/schedule"
	"github.com/jwalitptl/booking-api/internal/middleware"
	"github.com/jwalitptl/booking-api/internal/repository/postgres"
	redisrepo "github.com/jwalitptl/booking-api/internal/repository/redis"
	"github.com/jwalitptl/booking-api/internal/router"
	authService "github.com/jwalitptl/booking-api/internal/service/auth"
	bookingService "github.com/jwalitptl/booking-api/internal/service/booking"
	doctorService "github.com/jwalitptl/booking-api/internal/service/doctor"
	patientService "github.com/jwalitptl/booking-api/internal/service/patient"
	scheduleService "github.com/jwalitptl/booking-api/internal/service/schedule"
	jwtauth "github.com/jwalitptl/booking-api/pkg/auth"
	"github.com/jwalitptl/booking-api/pkg/logger"
	"github.com/jwalitptl/booking-api/pkg/metrics"
	"github.com/jwalitptl/booking-api/pkg/security"
	"github.com/jwalitptl/booking-api/pkg/validator"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redisrepo.NewClient(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer redisClient.Close()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New("booking_api")
	appMetrics.Register(registry)

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db, appMetrics)
	tokenRepo := redisrepo.NewTokenRepository(redisClient)

	appLogger := logger.NewLogger(nil)

	// Services
	tokenTTL := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	jwtSvc := jwtauth.NewJWTService(cfg.JWT.Secret, tokenTTL)
	hasher := security.NewBcryptHasher(security.DefaultCost)

	authSvc := authService.NewService(patientRepo, tokenRepo, jwtSvc, hasher, tokenTTL)
	patientSvc := patientService.NewService(patientRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	scheduleSvc := scheduleService.NewService(scheduleRepo)
	bookingSvc := bookingService.NewService(appointmentRepo, appMetrics, appLogger)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)
	scheduleH := scheduleHandler.NewHandler(scheduleSvc)
	appointmentH := appointmentHandler.NewHandler(bookingSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		patientH,
		doctorH,
		scheduleH,
		appointmentH,
		h,
		router.RouterConfig{
			RateLimit:     100,
			RateBurst:     200,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "booking_api_http",
			Registry:      registry,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
