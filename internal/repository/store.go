package repository

import (
	"context"
	"fmt"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/config"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/database"
	"gorm.io/gorm"
)

// DriverMongo selects the document store; every other DB_DRIVER is a SQL dialect.
const DriverMongo = "mongodb"

// Store is an open connection to the configured backend and its repositories.
type Store struct {
	Repositories
	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// Open connects to the backend selected by cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.DBDriver == DriverMongo {
		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Repositories: NewMongoRepositories(client, db),
			migrate: func(ctx context.Context) error {
				return database.EnsureMongoIndexes(ctx, db)
			},
			close: client.Disconnect,
		}, nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return NewGormStore(db), nil
}

// NewGormStore wraps an already open SQL connection.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Repositories: NewGormRepositories(db),
		migrate: func(context.Context) error {
			return database.Migrate(db)
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// Migrate creates tables and indexes, or collection indexes for MongoDB.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate store: %w", err)
	}
	return nil
}

// Close releases the connection.
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}
