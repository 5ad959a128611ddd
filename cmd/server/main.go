package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/RouqX7/AthleteConnect/internal/auth"
	"github.com/RouqX7/AthleteConnect/internal/config"
	"github.com/RouqX7/AthleteConnect/internal/database"
	"github.com/RouqX7/AthleteConnect/internal/handlers"
	"github.com/RouqX7/AthleteConnect/internal/middleware"
	"github.com/RouqX7/AthleteConnect/internal/models"
	"github.com/RouqX7/AthleteConnect/internal/services"
	"github.com/RouqX7/AthleteConnect/internal/utils"
	"github.com/RouqX7/AthleteConnect/internal/validation"
)

// providers bundles the connected store backends; exactly one is non-nil.
type providers struct {
	cfg     *config.DatabaseConfig
	mongo   *database.MongoDB
	surreal *database.SurrealDB
}

// newStore builds the configured provider's collection adapter for one
// entity kind. Both providers satisfy PagedStore.
func newStore[T any](p *providers, collection, kind string) database.PagedStore[T] {
	if p.cfg.Provider == config.ProviderSurreal {
		return database.NewSurrealCollection[T](p.surreal, collection, kind)
	}
	return database.NewMongoCollection[T](p.mongo, collection, kind)
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.Debug {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &providers{cfg: cfg.Database}
	switch cfg.Database.Provider {
	case config.ProviderSurreal:
		surreal, err := database.NewSurrealDB(database.SurrealConfig{
			URL:       cfg.Database.URI,
			Namespace: cfg.Database.SurrealNamespace,
			Database:  cfg.Database.Name,
			User:      cfg.Database.SurrealUser,
			Pass:      cfg.Database.SurrealPass,
		})
		if err != nil {
			logger.Fatal("failed to connect to SurrealDB", zap.Error(err))
		}
		defer surreal.Close()
		p.surreal = surreal
	default:
		mongo, err := database.NewMongoDB(ctx, cfg.Database.URI, cfg.Database.Name)
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongo.Close(context.Background()); err != nil {
				logger.Warn("failed to disconnect from MongoDB", zap.Error(err))
			}
		}()
		p.mongo = mongo
	}
	logger.Info("connected to document store", zap.String("provider", cfg.Database.Provider))

	validate := validation.New()

	credentials := newStore[auth.Credential](p, "credentials", "credential")
	provider := auth.NewJWTProvider(credentials, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)

	server := &handlers.Server{
		Posts:         services.NewPostService(newStore[models.Post](p, "posts", "post"), validate, logger),
		Comments:      services.NewCommentService(newStore[models.Comment](p, "comments", "comment"), validate, logger),
		Events:        services.NewEventService(newStore[models.Event](p, "events", "event"), validate, logger),
		Messages:      services.NewMessageService(newStore[models.Message](p, "messages", "message"), validate, logger),
		Reactions:     services.NewReactionService(newStore[models.Reaction](p, "reactions", "reaction"), validate, logger),
		Notifications: services.NewNotificationService(newStore[models.Notification](p, "notifications", "notification"), validate, logger),
		Follows:       services.NewFollowService(newStore[models.Follow](p, "follows", "follow"), validate, logger),
		Tryouts:       services.NewTryoutService(newStore[models.Tryout](p, "tryouts", "tryout"), validate, logger),
		Profiles:      services.NewProfileService(provider, newStore[models.Profile](p, "users", "user"), validate, logger),
		Metrics:       utils.NewMetricsCollector(),
		MetricsRoute:  cfg.Server.MetricsEnabled,
		Logger:        logger,
	}

	authenticator := middleware.NewAuthenticator(provider, logger)
	handler := middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins))(
		authenticator.Middleware(server.Routes()),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
