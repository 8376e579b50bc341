package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"courseportal/internal/config"
	"courseportal/internal/database"
	"courseportal/internal/middleware"
	"courseportal/internal/modules/admin"
	"courseportal/internal/modules/announcement"
	"courseportal/internal/modules/auth"
	"courseportal/internal/modules/catalog"
	"courseportal/internal/modules/document"
	"courseportal/internal/modules/enrollment"
	"courseportal/internal/modules/knowledge"
	jwtsvc "courseportal/internal/pkg/jwt"
	"courseportal/internal/pkg/logger"
	"courseportal/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		log.Error("database migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	yearRepo := repository.NewAcademicYearRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	knowledgeRepo := repository.NewKnowledgeRepository(db)
	logRepo := repository.NewSystemLogRepository(db)

	// Services
	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL)

	var mailer auth.Mailer
	switch {
	case cfg.DevExposeLinks:
		// config.Load refuses this flag outside dev environments.
		mailer = auth.DevConsoleMailer{}
		log.Warn("DEV_EXPOSE_MAGIC_LINKS enabled, magic links are logged to the console")
	case cfg.SMTP.Configured():
		mailer = auth.NewSMTPMailer(cfg.SMTP)
	default:
		mailer = auth.DevConsoleMailer{}
		log.Warn("SMTP not configured, falling back to console link delivery")
	}

	authService := auth.NewService(
		userRepo, jwtService, mailer, logRepo,
		cfg.LinkTokenPepper, cfg.MagicLinkTTL, cfg.ResendCooldown,
		cfg.FrontendURL, cfg.AdminSetupKey,
	)
	catalogService := catalog.NewService(collegeRepo, schoolRepo, yearRepo, moduleRepo)
	enrollmentService := enrollment.NewService(enrollmentRepo, moduleRepo, yearRepo, logRepo)
	documentService := document.NewService(documentRepo, moduleRepo, enrollmentRepo, document.NewStorage(cfg.UploadsDir), logRepo)
	announcementService := announcement.NewService(announcementRepo, moduleRepo, enrollmentRepo)
	knowledgeService := knowledge.NewService(knowledgeRepo, userRepo)
	adminService := admin.NewService(userRepo, collegeRepo, schoolRepo, moduleRepo, enrollmentRepo, documentRepo, knowledgeRepo, logRepo)

	// Handlers
	authHandler := auth.NewHandler(authService, cfg.FrontendURL)
	catalogHandler := catalog.NewHandler(catalogService)
	enrollmentHandler := enrollment.NewHandler(enrollmentService)
	documentHandler := document.NewHandler(documentService)
	announcementHandler := announcement.NewHandler(announcementService)
	knowledgeHandler := knowledge.NewHandler(knowledgeService)
	adminHandler := admin.NewHandler(adminService)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())
	router.MaxMultipartMemory = 8 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public auth endpoints carry a per-IP budget against link spraying.
	authLimiter := middleware.NewRateLimiter(rate.Every(6*time.Second), 10)
	public := v1.Group("")
	public.Use(authLimiter.Middleware())
	authHandler.RegisterPublicRoutes(public)

	// Catalog reads are open to anonymous browsing, with a looser per-IP
	// budget than the auth endpoints.
	browseLimiter := middleware.NewRateLimiter(rate.Every(200*time.Millisecond), 30)
	browse := v1.Group("")
	browse.Use(browseLimiter.Middleware())

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(jwtService))
	authHandler.RegisterProtectedRoutes(protected)
	enrollmentHandler.RegisterRoutes(protected)
	knowledgeHandler.RegisterRoutes(protected)

	staff := v1.Group("")
	staff.Use(middleware.RequireAuth(jwtService), middleware.StaffOnly())

	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(jwtService), middleware.AdminOnly())

	catalogHandler.RegisterRoutes(browse, adminGroup)
	documentHandler.RegisterRoutes(protected, staff)
	announcementHandler.RegisterRoutes(protected, staff)
	adminHandler.RegisterRoutes(adminGroup)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", slog.String("addr", cfg.ListenAddr), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", slog.Any("error", err))
	}
}
