package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adanyl0v/go-tasks-api/internal/config"
	"github.com/adanyl0v/go-tasks-api/internal/repositories"
	"github.com/adanyl0v/go-tasks-api/internal/repositories/memory"
	"github.com/adanyl0v/go-tasks-api/internal/repositories/mongodb"
	"github.com/adanyl0v/go-tasks-api/internal/repositories/postgres"
)

var (
	globalTaskRepository repositories.TaskRepository
	globalPostgresPool   *pgxpool.Pool
	globalMongoClient    *mongo.Client
)

func MustConnectStorage() {
	cfg := config.Global()

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		globalTaskRepository = memory.NewTaskRepository()
		globalLogger.Info().Msg("using in-memory storage")
		return
	case config.StoragePostgres:
		mustConnectPostgres()
	case config.StorageMongo:
		mustConnectMongo()
	default:
		globalLogger.Error().
			Str("driver", cfg.Storage.Driver).
			Msg("unknown storage driver")
		panic(fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver))
	}

	globalTaskRepository = repositories.WithBreaker(globalLogger, globalTaskRepository, repositories.BreakerSettings{
		Name:        cfg.Storage.Driver,
		MaxFailures: cfg.Storage.BreakerMaxFailures,
		Timeout:     cfg.Storage.BreakerTimeout,
	})
}

func DisconnectStorage() {
	if globalPostgresPool != nil {
		globalPostgresPool.Close()
		globalLogger.Info().Msg("disconnected from postgres")
	}

	if globalMongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), config.Global().Mongo.ConnectTimeout)
		defer cancel()

		err := globalMongoClient.Disconnect(ctx)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to disconnect from mongo")
			return
		}
		globalLogger.Info().Msg("disconnected from mongo")
	}
}

func mustConnectPostgres() {
	cfg := config.Global().Postgres
	connURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host,
		cfg.Port, cfg.Database, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	globalPostgresPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = globalPostgresPool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")

	repo := postgres.NewTaskRepository(globalLogger, globalPostgresPool)
	err = repo.EnsureSchema(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ensure postgres schema")
		panic(err)
	}
	globalTaskRepository = repo
}

func mustConnectMongo() {
	cfg := config.Global().Mongo

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	var err error
	globalMongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to mongo")
		panic(err)
	}

	err = globalMongoClient.Ping(ctx, nil)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping mongo")
		panic(err)
	}
	globalLogger.Info().
		Str("database", cfg.Database).
		Str("collection", cfg.Collection).
		Msg("connected to mongo")

	globalTaskRepository = mongodb.NewTaskRepository(globalLogger, globalMongoClient, cfg.Database, cfg.Collection)
}
