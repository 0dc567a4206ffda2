package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/config"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/constants"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/gateway"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/handlers"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFile)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the store and bring its schema up to date
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		logging.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Payments stay disabled until the gateway credentials are set
	var paymentGateway gateway.Gateway
	if gw, err := gateway.New(cfg); err != nil {
		logging.Logger.WithError(err).Warn("Payment gateway disabled")
	} else {
		paymentGateway = gw
		logging.Logger.WithField("gateway", gw.Kind()).Info("Payment gateway configured")
	}

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	}

	if cfg.IdentitySecret == "" {
		logging.Logger.Warn("IDENTITY_SHARED_SECRET is not set; token issuing is disabled")
	}
	authService := services.NewAuthService(cfg.TokenSecret, constants.TokenLifetime).WithIssuerSecret(cfg.IdentitySecret)

	sessionStore, err := handlers.NewSessionStore(cfg)
	if err != nil {
		logging.Logger.Fatalf("Failed to create session store: %v", err)
	}

	router := handlers.NewRouter(handlers.Services{
		Auth:        authService,
		Users:       services.NewUserService(store.Users),
		Tasks:       services.NewTaskService(store.Tasks, aiService),
		Submissions: services.NewSubmissionService(store.Submissions, store.Tasks),
		Payments:    services.NewPaymentService(store.Payments, paymentGateway, cfg.PaymentCurrency, cfg.CoinsPerUnit),
		Comments:    services.NewCommentService(store.Comments, store.Reviews),
	}, handlers.RouterOptions{
		Production:   cfg.IsProduction(),
		CORSOrigins:  cfg.CORSOrigins,
		ClientURL:    cfg.ClientURL,
		SessionStore: sessionStore,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logging.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.WithError(err).Error("Server forced to shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logging.Logger.WithError(err).Error("Failed to close database")
	}

	logging.Logger.Info("Server stopped")
}
