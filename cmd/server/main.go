package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"favorites-service/internal/catalog"
	catalogHTTP "favorites-service/internal/catalog/delivery/http"
	favoriteHTTP "favorites-service/internal/favorite/delivery/http"
	favoriteRepo "favorites-service/internal/favorite/repository"
	favoriteCommand "favorites-service/internal/favorite/usecase/command"
	favoriteQuery "favorites-service/internal/favorite/usecase/query"
	"favorites-service/internal/favorite/viewcache"
	"favorites-service/internal/middleware"
	userHTTP "favorites-service/internal/user/delivery/http"
	userRepo "favorites-service/internal/user/repository"
	userCommand "favorites-service/internal/user/usecase/command"
	userQuery "favorites-service/internal/user/usecase/query"
	"favorites-service/kafka"
	"favorites-service/pkg/cache"
	"favorites-service/pkg/database"
	"favorites-service/pkg/logger"
	"favorites-service/pkg/tracing"
)

func main() {
	// Load .env if present; real deployments use environment variables
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "favorites-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting favorites service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "favoritesdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Dedicated connection for health pings, separate from the gorm pool
	healthDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer healthDB.Close()

	// Run migrations
	customerRepository := userRepo.NewGormCustomerRepository(db)
	if err := customerRepository.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run customer migrations")
	}
	favoriteRepository := favoriteRepo.NewGormFavoriteRepository(db)
	if err := favoriteRepository.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run favorite migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Cache store: Redis, or in-memory when Redis is unreachable
	var store cache.Store
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisClient, err := cache.NewRedisClient(redisAddr, getEnv("REDIS_PASSWORD", ""))
	if err != nil {
		logger.Logger.Warn().Err(err).Str("addr", redisAddr).Msg("Redis unavailable, falling back to in-memory cache")
		store = cache.NewMemoryStore()
	} else {
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
		logger.Logger.Info().Str("addr", redisAddr).Msg("Connected to Redis")
	}

	// Audit event publisher; disabled when no brokers are configured
	var audit *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		audit, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Str("brokers", brokers).Msg("Kafka unavailable, audit events disabled")
			audit = nil
		} else {
			defer audit.Close()
			logger.Logger.Info().Str("brokers", brokers).Msg("Connected to Kafka")
		}
	}

	// Catalog client over the external products API
	catalogClient := catalog.NewClient(getEnv("FAKESTORE_API_URL", "https://fakestoreapi.com"), store, cache.DefaultTTL)

	// Favorites view cache and transaction manager
	views := viewcache.New(store, favoriteRepository, cache.DefaultTTL)
	txManager := favoriteRepo.NewGormTxManager(db)

	// Favorite handlers
	favoriteHandler := favoriteHTTP.NewFavoriteHandler(
		favoriteCommand.NewCreateFavoriteHandler(catalogClient, txManager, views, audit),
		favoriteCommand.NewDeactivateFavoriteHandler(txManager, views, audit),
		favoriteQuery.NewListFavoritesHandler(views),
		favoriteQuery.NewGetFavoriteHandler(favoriteRepository),
	)

	// Customer handlers
	customerHandler := userHTTP.NewCustomerHandler(
		userCommand.NewRegisterCustomerHandler(customerRepository),
		userCommand.NewLoginCustomerHandler(customerRepository),
		userCommand.NewUpdateCustomerHandler(customerRepository),
		userCommand.NewDeleteCustomerHandler(customerRepository, views, audit),
		userQuery.NewGetCustomerHandler(customerRepository),
	)

	catalogHandler := catalogHTTP.NewCatalogHandler(catalogClient)

	// Setup router
	router := mux.NewRouter()
	customerHandler.RegisterRoutes(router)
	favoriteHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	customerHandler.RegisterHealthCheck(router, healthDB)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(middleware.Tracing(serviceName, middleware.Logging(router)))

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
