package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/samandartukhtayev/migration-fixtures/config"
	"github.com/samandartukhtayev/migration-fixtures/logging"
	"github.com/samandartukhtayev/migration-fixtures/repository"
	"github.com/samandartukhtayev/migration-fixtures/seeder"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("seeding failed", zap.String("backend", cfg.Backend), zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	return seeder.New(store, seeder.DefaultTarget, os.Stdout, logger).Run(ctx)
}

// openStore connects the configured backend and returns a func releasing it
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.UserStore, func(), error) {
	switch cfg.Backend {
	case config.BackendMongo:
		client, err := repository.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to mongo")

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("failed to disconnect mongo client", zap.Error(err))
			}
		}
		return repository.NewMongoUserStore(client, seeder.DefaultTarget), closeFn, nil

	case config.BackendPostgres:
		db, err := repository.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to postgres", zap.String("driver", cfg.Postgres.Driver), zap.String("host", cfg.Postgres.Host))

		store := repository.NewPostgresUserStore(db, seeder.DefaultTarget)
		if err := store.EnsureCollection(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil

	case config.BackendMemory:
		logger.Info("using in-memory store, nothing is persisted")
		return repository.NewMemoryUserStore(seeder.DefaultTarget), func() {}, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}
