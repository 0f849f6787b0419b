package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/cschleeper/hotel-rating-tool/internal/ai/gemini"
	"github.com/cschleeper/hotel-rating-tool/internal/config"
	miniodb "github.com/cschleeper/hotel-rating-tool/internal/database/minio"
	"github.com/cschleeper/hotel-rating-tool/internal/database/postgres"
	redisdb "github.com/cschleeper/hotel-rating-tool/internal/database/redis"
	"github.com/cschleeper/hotel-rating-tool/internal/event"
	"github.com/cschleeper/hotel-rating-tool/internal/handlers"
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
	"github.com/cschleeper/hotel-rating-tool/internal/repository"
	"github.com/cschleeper/hotel-rating-tool/internal/services"
)

func setupLogging() *slog.Logger {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
	return logger
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	logger := setupLogging()
	cfg := config.New()

	// A structurally invalid rating configuration is a fatal startup defect,
	// never a per-request error.
	rc, err := ratingconfig.Load(cfg.RatingConfigPath)
	if err != nil {
		logger.Error("rating configuration invalid", "path", cfg.RatingConfigPath, "error", err)
		os.Exit(1)
	}
	logger.Info("rating configuration loaded",
		"path", cfg.RatingConfigPath,
		"profile", rc.Profile,
		"version", rc.Version)

	ratingService := services.NewRatingService(rc, logger)

	if _, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg); err != nil {
		logger.Error("database connection failed, retrying in background", "error", err)
		go postgres.RetryConnectOnFailed(30*time.Second, cfg.PostgresCfg)
	}

	var cache *redisdb.Client
	if c, err := redisdb.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB); err != nil {
		logger.Warn("redis unavailable, lookup cache disabled", "error", err)
	} else {
		cache = c
		defer cache.Close()
	}

	var store *miniodb.MinioClient
	if mc, err := miniodb.NewMinioClient(cfg.MinioCfg); err != nil {
		logger.Warn("minio unavailable, photo archive disabled", "error", err)
	} else {
		store = mc
	}

	var publisher *event.QuotePublisher
	if conn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg); err != nil {
		logger.Warn("rabbitmq unavailable, quote events disabled", "error", err)
	} else {
		publisher = event.NewQuotePublisher(conn)
		defer conn.Close()
	}

	var clients []gemini.GeminiClient
	for _, key := range cfg.GeminiAPICfg.APIKeys {
		client, err := gemini.NewGenAIClient(key, cfg.GeminiAPICfg.FlashName, cfg.GeminiAPICfg.ProName)
		if err != nil {
			logger.Warn("gemini client init failed", "error", err)
			continue
		}
		clients = append(clients, *client)
	}
	if len(clients) == 0 {
		logger.Warn("no gemini clients configured, property lookup will fail")
	}
	selector := gemini.NewGeminiClientSelector(clients)

	brands := services.NewBrandService(rc.PerRoom)
	photos := services.NewPhotoFetcher(logger)
	lookupService := services.NewLookupService(selector, photos, brands, cache, store, logger)
	quoteService := services.NewQuoteService(repository.NewQuoteRepository(postgres.DB), publisher, store, logger)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Hotel rating service is healthy")
	})

	handlers.NewPropertyLookupHandler(lookupService).Register(app)
	handlers.NewRatingHandler(ratingService).Register(app)
	handlers.NewQuoteHandler(quoteService, ratingService).Register(app)

	logger.Info("starting server", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
