// Package main runs the Limitless Club booking and registration server with graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/limitless-club/booking/config"
	"github.com/limitless-club/booking/internal/auth"
	"github.com/limitless-club/booking/internal/bookings"
	"github.com/limitless-club/booking/internal/emailtemplates"
	"github.com/limitless-club/booking/internal/lookups"
	"github.com/limitless-club/booking/internal/media"
	"github.com/limitless-club/booking/internal/metrics"
	"github.com/limitless-club/booking/internal/middleware"
	"github.com/limitless-club/booking/internal/receipts"
	"github.com/limitless-club/booking/internal/registrations"
	"github.com/limitless-club/booking/internal/students"
	"github.com/limitless-club/booking/pkg/airtable"
	"github.com/limitless-club/booking/pkg/cloudinary"
	"github.com/limitless-club/booking/pkg/mailer"
	"github.com/limitless-club/booking/pkg/redis"
	"github.com/limitless-club/booking/pkg/response"
	"github.com/limitless-club/booking/pkg/storage"
	"github.com/limitless-club/booking/web"
)

func main() {
	// `server hash-password <plain>` prints a value for AUTH_PASSWORD_HASH.
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := auth.HashPassword(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if !cfg.Airtable.Configured() {
		logger.Warn("AIRTABLE_API_KEY or AIRTABLE_BASE_ID not set; record store calls will fail")
	}

	ctx := context.Background()
	m := metrics.New(prometheus.DefaultRegisterer)
	at := airtable.New(cfg.Airtable.APIKey, cfg.Airtable.BaseID, cfg.Airtable.RequestTimeout(), logger)

	// Media: Cloudinary first, S3 when Cloudinary fails or is not configured.
	var uploaders []media.Uploader
	if cfg.Cloudinary.Configured() {
		uploaders = append(uploaders, media.NewCloudinary(cloudinary.New(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)))
	}
	if cfg.AWS.SlipsBucket != "" {
		s3Client, err := storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Bucket:          cfg.AWS.SlipsBucket,
			PublicBaseURL:   cfg.AWS.PublicBaseURL,
		}, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		} else {
			uploaders = append(uploaders, media.NewS3(s3Client))
		}
	}
	if len(uploaders) == 0 {
		logger.Warn("no media store configured; uploads will fail")
	}
	uploader := media.NewFallback(m, logger, uploaders...)

	mail := newMailer(cfg.Email, logger)

	// Record store repositories
	studentRepo := students.NewRepository(at, cfg.Airtable.StudentsTable, logger)
	templateRepo := emailtemplates.NewRepository(at, cfg.Airtable.TemplateEmailTable, logger)
	registrationRepo := registrations.NewRepository(at, cfg.Airtable.RegistrationTable, logger)
	bookingRepo := bookings.NewRepository(at, cfg.Airtable.BookingsTable, logger)
	lookupRepo := lookups.NewRepository(at, lookups.Tables{
		Rooms:        cfg.Airtable.RoomsTable,
		BookingTypes: cfg.Airtable.BookingTypesTable,
	}, logger)

	// Actions
	studentHandler := students.NewHandler(students.NewService(studentRepo, templateRepo, mail, m, logger), logger)
	receiptHandler := receipts.NewHandler(receipts.NewService(studentRepo, uploader, mail, m, logger), logger)
	registrationHandler := registrations.NewHandler(registrations.NewService(registrationRepo, uploader, logger), logger)
	bookingHandler := bookings.NewHandler(bookings.NewService(bookingRepo, lookupRepo, uploader, logger), lookupRepo, logger)
	lookupHandler := lookups.NewHandler(lookupRepo, lookups.DefaultRetry(m, logger), logger)
	templateHandler := emailtemplates.NewHandler(templateRepo, logger)

	// Staff session
	sessions := auth.NewSessionService(cfg.Auth.SessionSecret, cfg.Auth.SessionHours)
	authHandler := auth.NewHandler(auth.Credentials{
		Username:     cfg.Auth.Username,
		Password:     cfg.Auth.Password,
		PasswordHash: cfg.Auth.PasswordHash,
	}, sessions, auth.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.Server.IsProduction()}, logger)

	// Login throttling: Redis when reachable, in-process counter otherwise.
	var rdb *redis.Client
	var loginCounter middleware.Counter
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting in memory", zap.Error(err))
		} else {
			defer rdb.Close()
			loginCounter = middleware.NewRedisCounter(rdb.Client)
		}
	}
	loginLimit := middleware.RateLimit("login", cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window(),
		loginCounter, middleware.NewMemoryCounter(), logger)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	pages, err := web.Templates()
	if err != nil {
		logger.Fatal("parse templates", zap.Error(err))
	}
	router, err := newRouter(cfg.Server, pages)
	if err != nil {
		logger.Fatal("router", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(m.Middleware())
	router.Use(middleware.OptionalSession(sessions, cfg.Auth.CookieName))

	// Health
	router.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if rdb != nil {
			status["redis"] = rdb.Healthy(c.Request.Context())
		}
		response.OK(c, status)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Room booking (public)
	router.GET("/", bookingHandler.Index)
	router.GET("/booking", bookingHandler.Form)
	router.POST("/booking", bookingHandler.Submit)
	router.GET("/api/rooms", lookupHandler.Rooms)
	router.GET("/api/booking-types", lookupHandler.BookingTypes)

	// Student registration (public, reached by reference id)
	router.GET("/create/id", studentHandler.Page)
	router.POST("/create/id/:id", studentHandler.UpdateProfile)
	router.POST("/registrations/:uuid/slips", registrationHandler.UploadSlips)
	router.POST("/registrations/:uuid/payer", registrationHandler.UpdatePayer)

	// Auth
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", loginLimit, authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	// Staff (session required)
	staff := router.Group("")
	staff.Use(middleware.RequireSession(sessions, cfg.Auth.CookieName))
	{
		staff.GET("/send-email/:id", receiptHandler.Page)
		staff.POST("/send-email/:id", receiptHandler.Send)
		staff.GET("/templates", templateHandler.List)
		staff.POST("/students/sale-owner", studentHandler.AssignSaleOwner)
	}

	var handler http.Handler = router
	if cfg.CSRF.Key != "" {
		handler = middleware.CSRF([]byte(cfg.CSRF.Key), cfg.Server.IsProduction(), cfg.CSRF.TrustedOrigins)(router)
	} else {
		logger.Warn("CSRF_KEY not set; form posts are not CSRF protected")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newMailer(cfg config.EmailConfig, logger *zap.Logger) mailer.Sender {
	switch cfg.Provider {
	case "resend":
		return mailer.NewResendSender(cfg.ResendAPIKey, cfg.FromAddress, cfg.FromName, logger)
	case "noop":
		return mailer.NewNoopSender(logger)
	default:
		return mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.FromAddress,
			FromName: cfg.FromName,
		}, logger)
	}
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
