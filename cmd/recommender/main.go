package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/ozanguner/hybrid-recommender/internal/bot"
	"github.com/ozanguner/hybrid-recommender/internal/recommender"
	"github.com/ozanguner/hybrid-recommender/internal/rules"
	"github.com/ozanguner/hybrid-recommender/internal/storage"
	"github.com/ozanguner/hybrid-recommender/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize event source
	var source storage.EventSource
	switch cfg.Data.Source {
	case "postgres":
		logger.Info("Using PostgreSQL event source")
		source, err = storage.NewPostgresEventSource(storage.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
			Table:    cfg.Database.Table,
		})
		if err != nil {
			logger.Fatal("Failed to initialize event source", zap.Error(err))
		}
	default:
		logger.Info("Using JSON event source",
			zap.String("events", cfg.Data.EventsPath),
			zap.String("meta", cfg.Data.MetaPath))
		source = storage.NewJSONEventSource(cfg.Data.EventsPath, cfg.Data.MetaPath)
	}
	defer source.Close()

	// Build or load the derived artifacts
	cache := storage.NewGobCache(cfg.Data.CacheDir)
	rctx, err := recommender.BuildContext(context.Background(), source, cache, recommender.BuildOptions{
		Upgrade: cfg.Data.Upgrade,
		Rules: rules.Config{
			MinSupport:   cfg.Engine.MinSupport,
			Metric:       rules.Metric(cfg.Engine.Metric),
			MinThreshold: cfg.Engine.MinThreshold,
		},
	}, logger)
	if err != nil {
		logger.Fatal("Failed to build recommendation context", zap.Error(err))
	}

	// Initialize the engine
	engine := recommender.New(rctx, recommender.Config{
		FinalCount:           cfg.Engine.FinalCount,
		RuleCount:            cfg.Engine.RuleCount,
		UserCount:            cfg.Engine.UserCount,
		ItemCount:            cfg.Engine.ItemCount,
		DiffCategoryCount:    cfg.Engine.DiffCategoryCount,
		SameCategoryCount:    cfg.Engine.SameCategoryCount,
		CorrelationThreshold: cfg.Engine.CorrelationThreshold,
		Seed:                 cfg.Engine.Seed,
	}, logger)

	// Initialize bot
	b, err := bot.New(cfg.Telegram.Token, engine, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Start the bot
	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
