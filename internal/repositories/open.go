package repositories

import (
	"context"
	"fmt"

	"catalog/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CloseFunc releases the connection behind a store.
type CloseFunc func(ctx context.Context) error

// Open connects the store selected by cfg.Driver. SQL stores are migrated
// before they are returned.
func Open(ctx context.Context, cfg config.StoreConfig) (BulkProductRepository, CloseFunc, error) {
	switch cfg.Driver {
	case config.StoreMemory:
		return NewMemoryProductRepository(), func(context.Context) error { return nil }, nil

	case config.StoreSQLite, config.StorePostgres:
		dialector := sqlite.Open(cfg.DSN)
		if cfg.Driver == config.StorePostgres {
			dialector = postgres.Open(cfg.DSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
		}
		repo := NewGORMProductRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			return nil, nil, err
		}
		closeDB := func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return repo, closeDB, nil

	case config.StoreMongo:
		db, err := ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return NewMongoProductRepository(db), db.Client().Disconnect, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
