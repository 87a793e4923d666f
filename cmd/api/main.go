package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/card-tracker/internal/config"
	"github.com/Dan9191/card-tracker/internal/handler"
	"github.com/Dan9191/card-tracker/internal/middleware"
	"github.com/Dan9191/card-tracker/internal/repository"
	"github.com/Dan9191/card-tracker/internal/scheduler"
	"github.com/Dan9191/card-tracker/internal/service"
	"github.com/Dan9191/card-tracker/internal/utils/email"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Local .env is optional
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc, err := service.NewService(repo, logger, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize service: %v", err)
	}
	h := handler.NewHandler(svc, logger)

	// Payment reminders
	var sched *scheduler.Scheduler
	if cfg.RemindersEnabled() {
		sched = scheduler.NewScheduler(svc, email.NewSender(cfg, logger), logger, cfg)
		if err := sched.Start(); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
	} else {
		logger.Info("Payment reminders disabled")
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	// Protected routes
	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	h.Routes(api)
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, API routes are not authenticated")
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-ctx.Done():
			logger.Warn("Reminder job still running at shutdown")
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
