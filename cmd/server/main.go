// Package main runs the campus events HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusevents/config"
	"campusevents/internal/adapters/auth"
	emailadapter "campusevents/internal/adapters/email"
	"campusevents/internal/adapters/storage"
	httpdelivery "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Campus Events API
// @version 1.0
// @description Backend for campus event listings: organizations, events with admin approval, and RSVPs.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		logger.Error("database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("migrate", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(0)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	sessionTTL := time.Duration(cfg.JWTExpiryHours) * time.Hour

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("mailer", "err", err)
		os.Exit(1)
	}

	pictures := storage.NewNoop()
	if cfg.S3Bucket != "" {
		s3Pictures, err := storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
		if err != nil {
			logger.Warn("picture storage disabled", "err", err)
		} else {
			pictures = s3Pictures
		}
	}

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	userService := services.NewUserService(userRepo, orgRepo, hasher, tokenIssuer, sessionTTL, pictures)
	eventService := services.NewEventService(eventRepo, rsvpRepo, orgRepo, categoryRepo, emailService, serviceTimeout)
	rsvpService := services.NewRSVPService(eventRepo, rsvpRepo, serviceTimeout)
	orgService := services.NewOrganizationService(orgRepo, userRepo)

	// Controllers
	secureCookies := cfg.Environment == "production"
	eventController := controllers.NewEventController(logger, eventService, rsvpService, categoryRepo)
	orgController := controllers.NewOrganizationController(logger, orgService, eventService)
	authController := controllers.NewAuthController(logger, userService, sessionTTL, secureCookies)
	profileController := controllers.NewProfileController(logger, userService, pictures)

	mux := httpdelivery.NewRouter(eventController, orgController, authController, profileController)
	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.LoggingMiddleware(logger,
			middleware.WithActor(tokenVerifier, userService, logger,
				middleware.CSRF(mux))))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	logger.Info("server stopped")
}
