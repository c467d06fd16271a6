package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/medclinic-admin/internal/config"
	"github.com/jwalitptl/medclinic-admin/internal/email"
	appointmentHandler "github.com/jwalitptl/medclinic-admin/internal/handler/appointment"
	auditHandler "github.com/jwalitptl/medclinic-admin/internal/handler/audit"
	authHandler "github.com/jwalitptl/medclinic-admin/internal/handler/auth"
	facilityHandler "github.com/jwalitptl/medclinic-admin/internal/handler/facility"
	"github.com/jwalitptl/medclinic-admin/internal/handler/health"
	mastersHandler "github.com/jwalitptl/medclinic-admin/internal/handler/masters"
	organizationHandler "github.com/jwalitptl/medclinic-admin/internal/handler/organization"
	patientHandler "github.com/jwalitptl/medclinic-admin/internal/handler/patient"
	prometheusHandler "github.com/jwalitptl/medclinic-admin/internal/handler/prometheus"
	rbacHandler "github.com/jwalitptl/medclinic-admin/internal/handler/rbac"
	schedulingHandler "github.com/jwalitptl/medclinic-admin/internal/handler/scheduling"
	specialityHandler "github.com/jwalitptl/medclinic-admin/internal/handler/speciality"
	userHandler "github.com/jwalitptl/medclinic-admin/internal/handler/user"
	"github.com/jwalitptl/medclinic-admin/internal/middleware"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	redisrepo "github.com/jwalitptl/medclinic-admin/internal/repository/redis"
	"github.com/jwalitptl/medclinic-admin/internal/router"
	"github.com/jwalitptl/medclinic-admin/internal/seed"
	appointmentService "github.com/jwalitptl/medclinic-admin/internal/service/appointment"
	auditService "github.com/jwalitptl/medclinic-admin/internal/service/audit"
	authService "github.com/jwalitptl/medclinic-admin/internal/service/auth"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	facilityService "github.com/jwalitptl/medclinic-admin/internal/service/facility"
	"github.com/jwalitptl/medclinic-admin/internal/service/lookup"
	mastersService "github.com/jwalitptl/medclinic-admin/internal/service/masters"
	notificationService "github.com/jwalitptl/medclinic-admin/internal/service/notification"
	organizationService "github.com/jwalitptl/medclinic-admin/internal/service/organization"
	patientService "github.com/jwalitptl/medclinic-admin/internal/service/patient"
	rbacService "github.com/jwalitptl/medclinic-admin/internal/service/rbac"
	"github.com/jwalitptl/medclinic-admin/internal/service/scheduling"
	specialityService "github.com/jwalitptl/medclinic-admin/internal/service/speciality"
	userService "github.com/jwalitptl/medclinic-admin/internal/service/user"
	"github.com/jwalitptl/medclinic-admin/pkg/auth"
	"github.com/jwalitptl/medclinic-admin/pkg/circuitbreaker"
	"github.com/jwalitptl/medclinic-admin/pkg/logger"
	redisbroker "github.com/jwalitptl/medclinic-admin/pkg/messaging/redis"
	"github.com/jwalitptl/medclinic-admin/pkg/metrics"
	"github.com/jwalitptl/medclinic-admin/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config) error {
	level := logger.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)
	if cfg.Log.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	appLog := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Console:    cfg.Log.Console,
	})
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New("medclinic", registry)

	// Storage
	store, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()
	repos := repository.InstrumentAll(store.repos, m)

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	if cfg.Storage.Seed {
		opts := seed.Options{BootstrapPassword: cfg.Auth.BootstrapPassword, Hasher: hasher}
		if err := seed.Load(ctx, repos, opts, appLog.With("seed")); err != nil {
			return err
		}
	}

	// Audit trail
	auditLog, err := auditService.NewZapLogger(cfg.Audit.OutputPaths)
	if err != nil {
		return err
	}
	auditor := auditService.NewService(auditLog, cfg.Audit.Retain)
	defer func() { _ = auditor.Sync() }()

	// Initialize services
	deps := entity.Deps{Auditor: auditor, Logger: appLog}
	lookupSvc := lookup.NewService(repos.Facilities, repos.Roles)
	facilitySvc := facilityService.NewService(repos.Facilities, deps)
	organizationSvc := organizationService.NewService(repos.Organizations, lookupSvc, deps)
	rbacSvc := rbacService.NewService(repos.Roles, deps)
	userSvc := userService.NewService(repos.Users, lookupSvc, hasher, deps)
	patientSvc := patientService.NewService(repos.Patients, deps)
	specialitySvc := specialityService.NewService(repos.Specialities, deps)
	mastersSvc := mastersService.NewService()

	var doctors scheduling.DoctorSource = scheduling.NewStaticDirectory(seed.Doctors())
	if cfg.Scheduling.DoctorSource == "users" {
		doctors = scheduling.NewUserDirectory(repos.Users, lookupSvc)
	}
	resolver := scheduling.NewResolver(doctors)
	appointmentSvc := appointmentService.NewService(repos.Appointments, resolver, deps)

	var notifier appointmentService.Notifier
	if cfg.Notification.Enabled {
		smtp := cfg.Notification.SMTP
		mailer := email.WithBreaker(email.NewSMTPService(email.Config{
			Host:     smtp.Host,
			Port:     smtp.Port,
			Username: smtp.Username,
			Password: smtp.Password,
			From:     smtp.From,
		}), circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "smtp",
			MaxFailures: cfg.Notification.BreakerFailures,
			Timeout:     cfg.Notification.BreakerTimeout,
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("circuit breaker state changed")
			},
		}))
		notifier = notificationService.NewService(mailer, appLog)
	}
	bookingCfg := appointmentService.BookingConfig{TTL: cfg.Drafts.TTL}
	if cfg.Events.Enabled {
		events, err := redisrepo.NewClient(ctx, redisrepo.Config{
			URL:      cfg.Storage.Redis.URL,
			PoolSize: cfg.Storage.Redis.PoolSize,
		})
		if err != nil {
			return err
		}
		defer func() { _ = events.Close() }()
		bookingCfg.Events = redisbroker.NewPublisher(events, cfg.Events.Channel)
	}
	booking := appointmentService.NewBooking(bookingCfg, appointmentSvc, mastersSvc, notifier, m, appLog)

	jwtSvc := auth.NewJWTService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenExpiry)
	authSvc := authService.NewService(authService.Config{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockoutDuration:  cfg.Auth.LockoutDuration,
	}, userSvc, jwtSvc, hasher, auditor, appLog)

	// Setup router
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORS.AllowedOrigins
	routerCfg := router.RouterConfig{
		CORSConfig:  cors,
		Timeout:     cfg.Server.RequestTimeout,
		MaxBodySize: cfg.Server.MaxBodyBytes,
		Metrics:     m,
		Public: []router.Handler{
			health.NewHandler(store.checks),
			prometheusHandler.New(registry),
		},
		Protected: []router.Handler{
			facilityHandler.NewHandler(facilitySvc),
			organizationHandler.NewHandler(organizationSvc),
			rbacHandler.NewHandler(rbacSvc),
			userHandler.NewHandler(userSvc),
			patientHandler.NewHandler(patientSvc),
			specialityHandler.NewHandler(specialitySvc),
			appointmentHandler.NewHandler(appointmentSvc, booking),
			schedulingHandler.NewHandler(resolver),
			mastersHandler.NewHandler(mastersSvc),
			auditHandler.NewHandler(auditor),
		},
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerCfg.RateBurst = cfg.RateLimit.Burst
	}
	r := router.NewRouter(middleware.NewAuthMiddleware(authSvc), authHandler.NewHandler(authSvc), routerCfg)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("storage", cfg.Storage.Driver).
			Str("doctor_source", cfg.Scheduling.DoctorSource).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}
