package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	c "github.com/remindwell/storefront/internal/cache"
	"github.com/remindwell/storefront/internal/config"
	"github.com/remindwell/storefront/internal/contact"
	h "github.com/remindwell/storefront/internal/http"
	"github.com/remindwell/storefront/internal/logger"
	"github.com/remindwell/storefront/internal/publisher"
	"github.com/remindwell/storefront/internal/repository"
	s "github.com/remindwell/storefront/internal/service"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	loadedDotEnv := config.LoadEnv()
	cfg := config.Load()

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	if loadedDotEnv {
		lg.Info("loaded environment from .env")
	}

	ctx := context.Background()

	// Storage: MongoDB when configured, otherwise process memory
	var (
		mongoDB      *mongo.Database
		cartRepo     repository.CartRepository
		contactsRepo contact.Repository
	)
	if cfg.MongoURI != "" {
		mongoDB, err = repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			lg.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		mongoRepo := repository.NewMongoRepository(mongoDB)
		if err := mongoRepo.CreateIndexes(ctx); err != nil {
			lg.Fatal("failed to create indexes", zap.Error(err))
		}
		cartRepo = mongoRepo
		contactsRepo = contact.NewMongoRepository(mongoDB)
		lg.Info("connected to MongoDB", zap.String("database", cfg.MongoDBName))
	} else {
		cartRepo = repository.NewMemoryRepository()
		contactsRepo = contact.NewMemoryRepository()
		lg.Warn("MONGO_URI not set, carts are kept in memory")
	}

	var cache c.CartCache = c.NoopCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			lg.Fatal("redis connection failed", zap.Error(err))
		}
		cache = c.NewRedisCache(redisClient)
		lg.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))
	}

	var events publisher.Publisher = publisher.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		events = publisher.NewKafkaPublisher(cfg.KafkaBrokers...)
		lg.Info("publishing cart events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", publisher.Topic))
	}

	cartService := s.NewCartService(cartRepo, cache, events, lg)
	runCtx, stopRun := context.WithCancel(ctx)
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		cartService.Run(runCtx)
	}()

	handlers := h.Handlers{
		Cart:         h.NewCartHandler(cartService, lg, cfg.RequestTimeout, cfg.MaxRequestBodySize),
		Configurator: h.NewConfiguratorHandler(lg, cfg.MaxRequestBodySize),
		Contact:      h.NewContactHandler(contact.NewService(contactsRepo, lg), lg, cfg.RequestTimeout, cfg.MaxRequestBodySize),
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      h.NewRouter(handlers, lg, cfg.RequestTimeout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		lg.Info("storefront listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down storefront")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
	}
	// Run flushes queued cart events before the publisher is closed.
	stopRun()
	<-runDone

	if err := events.Close(); err != nil {
		lg.Warn("error closing event publisher", zap.Error(err))
	}
	if mongoDB != nil {
		if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
			lg.Warn("error disconnecting MongoDB", zap.Error(err))
		}
	}
	lg.Info("storefront stopped")
}
