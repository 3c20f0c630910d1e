package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"paperdesk_backend/database"
	"paperdesk_backend/internal/config"
	"paperdesk_backend/internal/email"
	"paperdesk_backend/internal/handlers"
	"paperdesk_backend/internal/logger"
	"paperdesk_backend/internal/middleware"
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/routes"
	"paperdesk_backend/internal/services"
	"paperdesk_backend/internal/services/payment"
	"paperdesk_backend/internal/storage"
	"paperdesk_backend/internal/validator"
	"paperdesk_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "dialect", cfg.Database.Dialect)

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	janitor := workers.NewJanitorWorker(gormDB, cfg.Bundle.TempDir)
	janitor.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    address,
		Handler: ginRouter,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	userRepo := repositories.NewUserRepository(gormDB)
	appHandlers := initializeHandlers(serviceContainer, userRepo)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	notifier := initializeNotifier(cfg)

	paymentProvider, err := payment.NewStripeProvider(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize payment provider", "error", err)
	}

	userRepo := repositories.NewUserRepository(gormDB)
	catalogRepo := repositories.NewCatalogRepository(gormDB)
	orderRepo := repositories.NewOrderRepository(gormDB)
	singletonRepo := repositories.NewSingletonRepository(gormDB)
	pageRepo := repositories.NewContentRepository[models.Page](gormDB)
	postRepo := repositories.NewContentRepository[models.Post](gormDB)
	essayRepo := repositories.NewContentRepository[models.Essay](gormDB)
	phaseRepo := repositories.NewContentRepository[models.Phase](gormDB)
	pointRepo := repositories.NewContentRepository[models.Point](gormDB)

	return &services.ServiceContainer{
		AuthService:      services.NewAuthService(userRepo, notifier, cfg),
		UserService:      services.NewUserService(userRepo),
		CatalogService:   services.NewCatalogService(catalogRepo),
		OrderService:     services.NewOrderService(orderRepo, catalogRepo, userRepo, paymentProvider, notifier),
		BundleService:    services.NewBundleService(orderRepo, storageInstance, cfg),
		UploadService:    services.NewUploadService(storageInstance, cfg),
		SingletonService: services.NewSingletonService(singletonRepo),

		PageService:  services.NewPageService(pageRepo),
		PostService:  services.NewPostService(postRepo),
		EssayService: services.NewEssayService(essayRepo),
		PhaseService: services.NewPhaseService(phaseRepo),
		PointService: services.NewPointService(pointRepo),
	}
}

// initializeNotifier builds the mail stack. Without configured accounts
// the mock provider keeps the rest of the application usable in
// development.
func initializeNotifier(cfg *config.Config) *email.Notifier {
	templates, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}
	if cfg.Mail.TemplatesDir != "" {
		if err := templates.LoadTemplates(cfg.Mail.TemplatesDir); err != nil {
			logger.Fatal("Failed to load email template overrides", "error", err)
		}
	}

	var provider email.Provider
	if len(cfg.Mail.Accounts) == 0 {
		logger.Warn("No mail accounts configured, using mock email provider")
		provider = &MockEmailProvider{}
	} else {
		provider, err = email.NewSMTPProvider(cfg)
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
	}

	return email.NewNotifier(provider, templates, cfg)
}

func initializeHandlers(container *services.ServiceContainer, userRepo repositories.UserRepository) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:    handlers.NewUserHandler(baseHandler, container.UserService, userRepo),
		OrderHandler:   handlers.NewOrderHandler(baseHandler, container.OrderService, container.BundleService, userRepo),
		CatalogHandler: handlers.NewCatalogHandler(baseHandler, container.CatalogService, userRepo),
		CompanyHandler: handlers.NewCompanyHandler(baseHandler, container.SingletonService, userRepo),
		UploadHandler:  handlers.NewUploadHandler(baseHandler, container.UploadService, userRepo),

		PageHandler:  handlers.NewContentHandler(baseHandler, container.PageService, userRepo, "pages"),
		PostHandler:  handlers.NewContentHandler(baseHandler, container.PostService, userRepo, "posts"),
		EssayHandler: handlers.NewContentHandler(baseHandler, container.EssayService, userRepo, "essays"),
		PhaseHandler: handlers.NewContentHandler(baseHandler, container.PhaseService, userRepo, "phases"),
		PointHandler: handlers.NewContentHandler(baseHandler, container.PointService, userRepo, "points"),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("first_admin_email or first_admin_password is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		FirstName:    "Platform",
		LastName:     "Admin",
		Email:        adminEmail,
		MobileNumber: "0000000000",
		Password:     string(hashedPassword),
		IsActive:     true,
		IsAdmin:      true,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return nil
}
