package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"todo-list/internal/domain"
	"todo-list/internal/logging"
	"todo-list/internal/repository"
	"todo-list/internal/repository/collection"
	"todo-list/internal/repository/memory"
	"todo-list/internal/repository/postgres"
	"todo-list/internal/repository/sqlite"
	"todo-list/internal/store"
)

// CreateRepository opens the backend selected by cfg.Storage.Driver.
func CreateRepository(ctx context.Context, cfg *Config, log logging.Logger) (repository.Repository, error) {
	s := cfg.Storage
	perm := os.FileMode(s.DirPermissions)

	switch s.Driver {
	case repository.DriverMemory:
		return memory.New(), nil

	case repository.DriverSQLite:
		if s.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(s.Path), perm); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		return sqlite.NewWithOptions(s.Path, sqlite.Options{
			QueryTimeout: s.QueryTimeout,
			WriteTimeout: s.WriteTimeout,
		})

	case repository.DriverPostgres:
		return postgres.Open(ctx, s.DSN)

	case repository.DriverRedis:
		backend, err := collection.DialRedis(ctx, s.RedisAddr, s.RedisPassword, s.RedisDB)
		if err != nil {
			return nil, err
		}
		return collection.New(backend, s.Key, log), nil

	case repository.DriverFile:
		backend, err := collection.NewFileBackend(s.Dir, perm)
		if err != nil {
			return nil, err
		}
		return collection.New(backend, s.Key, log), nil
	}

	return nil, &ConfigError{Field: "storage.driver", Message: "unknown storage driver " + s.Driver}
}

// CreateIDGenerator returns the generator named by cfg.Store.IDStrategy.
// The sequence strategy continues after the largest numeric id in existing.
func CreateIDGenerator(cfg *Config, existing []domain.Task) store.IDGenerator {
	if cfg.Store.IDStrategy == store.StrategySequence {
		return store.NewSequenceGeneratorAfter(existing)
	}
	return store.UUIDGenerator{}
}

// OpenStore wires a repository, id generator and optional sample data into
// a TaskStore. The caller owns the returned store and must Close it.
func OpenStore(ctx context.Context, cfg *Config, log logging.Logger) (*store.TaskStore, error) {
	repo, err := CreateRepository(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	// Sample tasks carry their own ids, so seeding happens before the
	// sequence generator looks at what is stored.
	if cfg.ShouldSeed() {
		if _, err := store.New(repo, store.UUIDGenerator{}, log).Seed(ctx, store.SampleTasks()); err != nil {
			_ = repo.Close()
			return nil, err
		}
	}

	existing, err := repo.List(ctx)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	taskStore := store.New(repo, CreateIDGenerator(cfg, existing), log)
	return taskStore, nil
}
