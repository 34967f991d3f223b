package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"

	"github.com/PencariData/search-service-api/internal/cache"
	"github.com/PencariData/search-service-api/internal/config"
	"github.com/PencariData/search-service-api/internal/domain"
	"github.com/PencariData/search-service-api/internal/elastic"
	"github.com/PencariData/search-service-api/internal/handler"
	"github.com/PencariData/search-service-api/internal/logqueue"
	"github.com/PencariData/search-service-api/internal/logstore"
	"github.com/PencariData/search-service-api/internal/repository"
	"github.com/PencariData/search-service-api/internal/service"
	pkglog "github.com/PencariData/search-service-api/pkg/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "search-service",
	})
	logger := pkglog.L()

	// Initialize Elasticsearch client
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create elasticsearch client")
	}

	// Verify ES connection
	res, err := esClient.Info()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to elasticsearch")
	}
	res.Body.Close()
	logger.Info().Strs("addresses", cfg.Elasticsearch.Addresses).Msg("elasticsearch connected")

	// Initialize repositories
	indexClient := elastic.NewClient(esClient)
	accommodationRepo := repository.NewESAccommodationRepository(indexClient, cfg.Elasticsearch.IndexAccommodation)
	destinationRepo := repository.NewESDestinationRepository(indexClient, cfg.Elasticsearch.IndexDestination)

	// Initialize result caches
	searchCache, suggestionCache, err := buildCaches(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize cache backend")
	}
	defer searchCache.Close()
	defer suggestionCache.Close()
	logger.Info().Str("backend", cfg.Cache.Backend).Msg("result cache ready")

	// Initialize log store
	db, err := logstore.Open(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open log store")
	}
	searchLogStore := logstore.NewGormSearchLogStore(db)
	suggestionLogStore := logstore.NewGormSuggestionLogStore(db)
	clickLogStore := logstore.NewGormClickLogStore(db)
	logger.Info().Str("driver", cfg.Database.Driver).Msg("log store connected")

	// Initialize event queues, one consumer per record type
	searchLogQueue := logqueue.New[*domain.SearchLog](cfg.Queue.SearchLogCapacity)
	suggestionLogQueue := logqueue.New[*domain.SuggestionLog](cfg.Queue.SuggestionLogCapacity)
	clickLogQueue := logqueue.New[*domain.ClickLog](cfg.Queue.ClickLogCapacity)

	searchLogConsumer := logqueue.NewConsumer("search-log", searchLogQueue,
		logqueue.SinkFunc[*domain.SearchLog](searchLogStore.Append))
	suggestionLogConsumer := logqueue.NewConsumer("suggestion-log", suggestionLogQueue,
		logqueue.SinkFunc[*domain.SuggestionLog](suggestionLogStore.Append))
	clickLogConsumer := logqueue.NewConsumer("click-log", clickLogQueue,
		logqueue.SinkFunc[*domain.ClickLog](clickLogStore.Append))

	consumerCtx, stopConsumers := context.WithCancel(context.Background())
	go searchLogConsumer.Run(consumerCtx)
	go suggestionLogConsumer.Run(consumerCtx)
	go clickLogConsumer.Run(consumerCtx)

	// Initialize services
	searchService := service.NewAccommodationSearchService(
		accommodationRepo, searchLogStore, searchLogQueue,
		searchCache, cfg.Cache.Prefix, cfg.Cache.ResultTTL,
		cfg.Limits.SearchMaxLimit,
	)
	suggestionService := service.NewSuggestionSearchService(
		accommodationRepo, destinationRepo, suggestionLogQueue,
		suggestionCache, cfg.Cache.Prefix, cfg.Cache.SuggestionTTL,
		cfg.Limits.SuggestionMaxLimit, cfg.Limits.AccommodationSuggestionMaxLimit,
	)
	interactionService := service.NewInteractionService(clickLogQueue)

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(searchService, suggestionService, interactionService)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Register routes
	httpHandler.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("search-service starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("received shutdown signal")

	// Stop accepting requests first, then drain the consumers
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http server shutdown error")
	}

	searchLogQueue.Close()
	suggestionLogQueue.Close()
	clickLogQueue.Close()
	stopConsumers()

	for _, done := range []<-chan struct{}{
		searchLogConsumer.Done(),
		suggestionLogConsumer.Done(),
		clickLogConsumer.Done(),
	} {
		select {
		case <-done:
		case <-time.After(shutdownTimeout):
			logger.Warn().Msg("log consumer shutdown timed out")
		}
	}

	logger.Info().Msg("search-service stopped")
}

// buildCaches selects the result-cache backend. Memory is the default and
// keeps entries process-local; Redis shares one client across both views.
func buildCaches(cfg *config.Config) (cache.Cache[service.CachedSearchResult], cache.Cache[service.CachedSuggestions], error) {
	switch cfg.Cache.Backend {
	case "redis":
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedis[service.CachedSearchResult](client),
			cache.NewRedis[service.CachedSuggestions](client), nil
	default:
		return cache.NewMemory[service.CachedSearchResult](),
			cache.NewMemory[service.CachedSuggestions](), nil
	}
}
