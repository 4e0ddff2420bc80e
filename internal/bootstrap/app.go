package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "dailydiet/internal/app"
	"dailydiet/internal/cache"
	"dailydiet/internal/config"
	"dailydiet/internal/model"
	mysqlClient "dailydiet/internal/platform/mysql"
	rabbitmqClient "dailydiet/internal/platform/rabbitmq"
	redisClient "dailydiet/internal/platform/redis"
	"dailydiet/internal/repository"
	"dailydiet/internal/worker"
)

type App struct {
	Config        *config.Config
	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	SummaryWorker *worker.SummaryRefreshWorker

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
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Meal{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	mealRepo := repository.NewMealRepository(mysqlDB)
	summaryCache := cache.NewSummaryCache(redisCli, time.Duration(cfg.Redis.SummaryTTLSeconds)*time.Second)
	// The worker only recomputes summaries, so its service carries no publisher
	// or read-through cache of its own.
	rebuilder := appsvc.NewMealService(mealRepo, nil, nil)
	summaryWorker := worker.NewSummaryRefreshWorker(mqConn, rebuilder, summaryCache, cfg.RabbitMQ.MealEventQueue)
	if err := summaryWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start summary worker failed: %w", err)
	}

	return &App{
		Config:        cfg,
		MySQL:         mysqlDB,
		Redis:         redisCli,
		MQConn:        mqConn,
		SummaryWorker: summaryWorker,
		StartedAt:     time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.SummaryWorker != nil {
		a.SummaryWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
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
