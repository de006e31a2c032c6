package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/harborbank/bank-api/internal/auth"
	"github.com/harborbank/bank-api/internal/cache"
	"github.com/harborbank/bank-api/internal/command"
	"github.com/harborbank/bank-api/internal/config"
	"github.com/harborbank/bank-api/internal/events"
	"github.com/harborbank/bank-api/internal/handler"
	"github.com/harborbank/bank-api/internal/middleware"
	"github.com/harborbank/bank-api/internal/models"
	"github.com/harborbank/bank-api/internal/query"
	"github.com/harborbank/bank-api/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "main").Logger()

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Database connection (write store, source of truth)
	db, err := repository.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	store := repository.NewStore(db)

	// Redis connection (read model cache + event streaming)
	redis, err := cache.NewClient(cfg.RedisAddr, "", 0)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redis.Close()

	publisher := events.NewPublisher(redis.Client)
	accountCache := cache.NewViewCache[models.AccountView](redis.Client, 5*time.Minute)
	historyCache := cache.NewViewCache[[]models.TransactionView](redis.Client, 5*time.Minute)

	// --- service wiring ---
	commandSvc := command.NewAccountCommandService(store, publisher, accountCache, historyCache)
	querySvc := query.NewAccountQueryService(store, accountCache, historyCache)
	principalSvc := auth.NewPrincipalService(store, []byte(cfg.JWTSecret))

	accountHandler := handler.NewAccountHandler(commandSvc, querySvc)
	authHandler := handler.NewAuthHandler(principalSvc)

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/v1/accounts", accountHandler.Register)
	router.POST("/v1/auth/login", authHandler.Login)

	me := router.Group("/v1/accounts/me", middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
	{
		me.GET("", accountHandler.GetAccount)
		me.POST("/deposit", accountHandler.Deposit)
		me.POST("/withdraw", accountHandler.Withdraw)
		me.POST("/transfer", accountHandler.Transfer)
		me.GET("/transactions", accountHandler.ListTransactions)
		me.DELETE("", accountHandler.CloseAccount)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Audit trail: every committed balance mutation ends up in the log via
	// the event stream.
	go func() {
		subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
			Group:    "bank-api-audit",
			Consumer: "audit-consumer-1",
			Stream:   events.TransactionEventsStream,
			Handler:  auditEvent,
		})
		if err := subscriber.Start(ctx); err != nil {
			logger.Info().Err(err).Msg("subscriber stopped")
		}
	}()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info().Msg("shutting down")
		cancel()
	}()

	logger.Info().Str("port", cfg.Port).Msg("bank-api starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

// auditEvent writes each transaction event to the log.
func auditEvent(_ context.Context, event events.Event) error {
	logger.Info().Str("type", event.Type).Interface("data", event.Data).Msg("audit")
	return nil
}
