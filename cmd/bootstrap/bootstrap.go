package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dental-clinic/config"
	deliveryHttp "dental-clinic/internal/delivery/http"
	"dental-clinic/internal/delivery/http/handler"
	"dental-clinic/internal/delivery/http/middleware"
	"dental-clinic/internal/infrastructure/cache"
	"dental-clinic/internal/infrastructure/database"
	"dental-clinic/internal/infrastructure/storage"
	"dental-clinic/internal/repository"
	"dental-clinic/internal/service"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/jwt"
	"dental-clinic/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// NewLogger builds the JSON logrus logger used everywhere. An invalid
// level falls back to info.
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	// Initialize upload storage
	files, err := storage.NewLocalStorage(cfg.App.UploadDir)
	if err != nil {
		app.Close()
		return nil, err
	}

	ctx := context.Background()
	if _, err := service.SeedDefaultSettings(ctx, db, repository.NewSettingRepository(), log); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to seed default settings: %w", err)
	}

	settingsCache := service.NewSettingsCache(redisClient, cfg.Cache.SettingsTTL, log)

	// A cold cache is not fatal, the sync only saves the first reads.
	syncService := service.NewSettingsSyncService(db, redisClient, settingsCache, log)
	if err := syncService.SyncOnStartup(ctx); err != nil {
		log.Warnf("Settings cache sync failed: %+v", err)
	}

	app.Server = initializeServer(cfg, log, db, redisClient, settingsCache, files)
	return app, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	settingsCache *service.SettingsCache,
	files *storage.LocalStorage,
) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	patientRepo := repository.NewPatientRepository()
	visitRepo := repository.NewPatientVisitRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	invoiceRepo := repository.NewInvoiceRepository()
	invoiceItemRepo := repository.NewInvoiceItemRepository()
	labWorkRepo := repository.NewLabWorkRepository()
	labWorkCostRepo := repository.NewLabWorkCostRepository()
	labInventoryRepo := repository.NewLabInventoryRepository()
	staffRepo := repository.NewStaffRepository()
	attendanceRepo := repository.NewStaffAttendanceRepository()
	salaryRepo := repository.NewStaffSalaryRepository()
	medicationRepo := repository.NewMedicationRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	toothFindingRepo := repository.NewToothFindingRepository()
	generalizedFindingRepo := repository.NewGeneralizedFindingRepository()
	investigationRepo := repository.NewInvestigationRepository()
	followUpRepo := repository.NewFollowUpRepository()
	settingRepo := repository.NewSettingRepository()
	signatureRepo := repository.NewDoctorSignatureRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, settingRepo, auditService)
	visitUsecase := usecase.NewVisitUsecase(db, log, visitRepo, patientRepo, files, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, invoiceRepo, auditService)
	invoiceUsecase := usecase.NewInvoiceUsecase(db, log, invoiceRepo, invoiceItemRepo, appointmentRepo, patientRepo, auditService, cfg.App.IsDevelopment())
	labWorkUsecase := usecase.NewLabWorkUsecase(db, log, labWorkRepo, patientRepo, auditService)
	labWorkCostUsecase := usecase.NewLabWorkCostUsecase(db, log, labWorkCostRepo, auditService)
	labInventoryUsecase := usecase.NewLabInventoryUsecase(db, log, labInventoryRepo, auditService)
	staffUsecase := usecase.NewStaffUsecase(db, log, staffRepo, attendanceRepo, salaryRepo, auditService)
	medicationUsecase := usecase.NewMedicationUsecase(db, log, medicationRepo, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, medicationRepo, visitRepo, auditService)
	examinationUsecase := usecase.NewExaminationUsecase(db, log, visitRepo, toothFindingRepo, generalizedFindingRepo, investigationRepo, auditService)
	followUpUsecase := usecase.NewFollowUpUsecase(db, log, followUpRepo, visitRepo, auditService)
	settingUsecase := usecase.NewSettingUsecase(db, log, settingRepo, settingsCache, auditService)
	signatureUsecase := usecase.NewDoctorSignatureUsecase(db, log, signatureRepo, auditService)
	reportUsecase := usecase.NewReportUsecase(db, log, appointmentRepo, labWorkRepo, invoiceRepo, patientRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:            handler.NewAuthHandler(authUsecase, customValidator),
		Patient:         handler.NewPatientHandler(patientUsecase, visitUsecase, appointmentUsecase, invoiceUsecase, labWorkUsecase, customValidator),
		Visit:           handler.NewVisitHandler(visitUsecase, examinationUsecase, prescriptionUsecase, followUpUsecase, invoiceUsecase, customValidator),
		Appointment:     handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Invoice:         handler.NewInvoiceHandler(invoiceUsecase, customValidator),
		LabWork:         handler.NewLabWorkHandler(labWorkUsecase, customValidator),
		LabWorkCost:     handler.NewLabWorkCostHandler(labWorkCostUsecase, customValidator),
		LabInventory:    handler.NewLabInventoryHandler(labInventoryUsecase, customValidator),
		Staff:           handler.NewStaffHandler(staffUsecase, customValidator),
		Medication:      handler.NewMedicationHandler(medicationUsecase, prescriptionUsecase, customValidator),
		Examination:     handler.NewExaminationHandler(examinationUsecase, followUpUsecase, customValidator),
		Setting:         handler.NewSettingHandler(settingUsecase, customValidator),
		DoctorSignature: handler.NewDoctorSignatureHandler(signatureUsecase, customValidator),
		Upload:          handler.NewUploadHandler(visitUsecase, settingUsecase),
		Report:          handler.NewReportHandler(reportUsecase),
		AuditLog:        handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, loggingMiddleware, files.Dir())
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal is received or the
// listener fails.
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	}

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
