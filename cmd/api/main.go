package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localgov-backend/internal/config"
	"localgov-backend/internal/handlers"
	"localgov-backend/internal/jobs"
	"localgov-backend/internal/repository"
	"localgov-backend/internal/routes"
	"localgov-backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()

	// 2. Connect DB
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	// Init Firebase (optional, push is best-effort)
	utils.InitFCM(cfg.FCMCredentials)

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	// 3. Wire repositories into handlers
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(userRepo, cfg.UploadDir),
		User:         handlers.NewUserHandler(userRepo, cfg.UploadDir),
		Appointment:  handlers.NewAppointmentHandler(appointmentRepo, serviceRepo, notificationRepo),
		Document:     handlers.NewDocumentHandler(documentRepo, cfg.UploadDir),
		Notification: handlers.NewNotificationHandler(notificationRepo),
		Service:      handlers.NewServiceHandler(serviceRepo),
		Payment:      handlers.NewPaymentHandler(paymentRepo, appointmentRepo, serviceRepo, userRepo, notificationRepo),
		Admin:        handlers.NewAdminHandler(userRepo, appointmentRepo, documentRepo),
	}

	// 4. Router + global middleware
	r := gin.Default()
	r.Use(cors.Default())

	routes.SetupRoutes(r, h)

	// Uploaded photos are served statically, documents go through the
	// authenticated download endpoint instead
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		utils.APIResponse(c, 200, true, "Server OK!", nil)
	})

	// 5. Background reminders
	reminder := jobs.NewReminder(appointmentRepo, notificationRepo)
	reminderCron := reminder.Start()

	// 6. Run with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server running on port " + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	reminderCron.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Bye")
}
