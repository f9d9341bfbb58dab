package api

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/messersm/pyscan/docs"
	"github.com/messersm/pyscan/logging"
)

// @title        pyscan API
// @version      1.0
// @description  REST API for the pyscan concurrent TCP connect-scanner.
// @BasePath     /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in   header
// @name Authorization

// Run initializes dependencies and starts the API server. Configuration is
// read from the environment, optionally seeded from a .env file.
func Run() error {
	_ = godotenv.Load()
	logger := logging.Configure()

	redisAddr := getenv("REDIS_ADDR", "localhost:6379")
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
	}

	store := NewRedisStore(redisClient)
	StartWorkers(store, getenvInt("SCAN_WORKERS", 4))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware(logger))
	router.Use(SecurityHeadersMiddleware())
	router.Use(RateLimitMiddleware(redisClient, int64(getenvInt("RATE_LIMIT", 60)), time.Minute, logger))

	v1 := router.Group("/api/v1")
	if apiKey := os.Getenv("API_KEY"); apiKey != "" {
		v1.Use(AuthMiddleware(apiKey, logger))
	}

	server := NewServer(store)
	server.RegisterRoutes(v1)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addr := getenv("LISTEN_ADDR", ":8080")
	logger.Info("starting pyscan API server", "addr", addr)
	return router.Run(addr)
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
