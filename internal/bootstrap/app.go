package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"graidea-reviews/internal/ai"
	"graidea-reviews/internal/app"
	"graidea-reviews/internal/cache"
	"graidea-reviews/internal/config"
	"graidea-reviews/internal/index"
	"graidea-reviews/internal/model"
	mysqlClient "graidea-reviews/internal/platform/mysql"
	rabbitmqClient "graidea-reviews/internal/platform/rabbitmq"
	redisClient "graidea-reviews/internal/platform/redis"
	"graidea-reviews/internal/repository"
	"graidea-reviews/internal/worker"
)

type App struct {
	Config *config.Config
	MySQL  *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection

	Indexer          *app.IndexerService
	Reviews          *app.ReviewService
	Recommender      *app.RecommendService
	ReindexPublisher *rabbitmqClient.ReindexPublisher
	ReindexWorker    *worker.ReindexWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.Review{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	reviewRepo := repository.NewReviewRepository(mysqlDB)
	if cfg.App.SeedSampleData {
		if err := reviewRepo.SeedSampleReviews(ctx); err != nil {
			return nil, fmt.Errorf("seed sample reviews failed: %w", err)
		}
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	embedder := ai.NewEmbeddingClient(ai.Config{
		BaseURL: cfg.Embedding.BaseURL,
		APIKey:  cfg.Embedding.APIKey,
		Model:   cfg.Embedding.Model,
	})
	holder := index.NewHolder()
	summaryCache := cache.NewSummaryCache(redisCli, time.Duration(cfg.Redis.SummaryTTLSeconds)*time.Second)

	indexer := app.NewIndexerService(reviewRepo, embedder, holder, cfg.Embedding.BatchSize)
	reviews := app.NewReviewService(reviewRepo, embedder, holder, summaryCache, cfg.Retrieval.DefaultTopK)
	recommender := app.NewRecommendService(reviews, cfg.Retrieval.RecommendPoolSize, cfg.Retrieval.RecommendTopN)

	publisher := rabbitmqClient.NewReindexPublisher(mqConn, cfg.RabbitMQ.ReindexQueue)
	reindexWorker := worker.NewReindexWorker(mqConn, indexer, cfg.RabbitMQ.ReindexQueue)
	if err := reindexWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start reindex worker failed: %w", err)
	}

	// Best-effort initial load; a failure here degrades to "index not
	// ready" instead of refusing to start.
	loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if _, err := indexer.Reload(loadCtx); err != nil {
		log.Printf("initial index load failed: %v", err)
	}

	return &App{
		Config:           cfg,
		MySQL:            mysqlDB,
		Redis:            redisCli,
		MQConn:           mqConn,
		Indexer:          indexer,
		Reviews:          reviews,
		Recommender:      recommender,
		ReindexPublisher: publisher,
		ReindexWorker:    reindexWorker,
		StartedAt:        time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.ReindexWorker != nil {
		a.ReindexWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
