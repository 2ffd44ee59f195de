package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/config"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/handler"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/middleware"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/notify"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/repository"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/taskqueue"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	staffRepo := repository.NewStaffRepository(db)
	clinicianRepo := repository.NewClinicianRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// The task engine publishes domain events; email delivery is optional.
	publishers := taskqueue.FanoutPublisher{taskqueue.LogPublisher{}}
	if cfg.SMTPHost != "" {
		publishers = append(publishers, notify.NewEmailNotifier(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, clinicianRepo,
		))
	}
	taskService := taskqueue.NewService(taskRepo, clinicianRepo, publishers, nil)

	// Initialize handlers
	staffHandler := handler.NewStaffHandler(staffRepo)
	clinicianHandler := handler.NewClinicianHandler(clinicianRepo)
	taskHandler := handler.NewTaskHandler(taskService, cfg.RetentionDefault)

	// Public routes
	r.POST("/register", staffHandler.Register)
	r.POST("/login", staffHandler.Login)

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Clinician directory
		authorized.GET("/clinicians", clinicianHandler.List)

		// Task queue routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.POST("/tasks/:id/status", taskHandler.ChangeStatus)
		authorized.POST("/tasks/:id/assign", taskHandler.Assign)
		authorized.POST("/tasks/:id/notes", taskHandler.AddNote)
		authorized.GET("/tasks/:id/notes", taskHandler.GetNotes)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func runMigrations(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Println("✅ Migrations applied")
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
