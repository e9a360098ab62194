package main

import (
	"context"
	"fmt"

	"github.com/lalitbiswal91/device-management/internal/database"
	"github.com/lalitbiswal91/device-management/internal/devicestore"
	"github.com/lalitbiswal91/device-management/internal/devicestore/boltds"
	"github.com/lalitbiswal91/device-management/internal/devicestore/gormds"
	"github.com/lalitbiswal91/device-management/internal/devicestore/memds"
	"github.com/lalitbiswal91/device-management/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	storePostgres = "postgres"
	storeSqlite   = "sqlite"
	storeBolt     = "bolt"
	storeMemory   = "memory"
)

var storeKinds = []string{storePostgres, storeSqlite, storeBolt, storeMemory}

type storeConfig struct {
	Kind       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SqlitePath string
	BoltPath   string
}

// openSQL connects to the sql database selected by the config.
func openSQL(ctx context.Context, logger *zap.SugaredLogger, c storeConfig) (*gorm.DB, error) {
	switch c.Kind {
	case storePostgres:
		return database.NewDatabase(ctx, logger, c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
	case storeSqlite:
		return database.NewSqliteDatabase(ctx, logger, c.SqlitePath)
	default:
		return nil, fmt.Errorf("store %q is not backed by a sql database", c.Kind)
	}
}

// openStore opens the device store selected by the config, sql stores are
// migrated to the latest schema first.
func openStore(ctx context.Context, logger *zap.SugaredLogger, c storeConfig) (devicestore.Store, error) {
	switch c.Kind {
	case storePostgres, storeSqlite:
		db, err := openSQL(ctx, logger, c)
		if err != nil {
			return nil, err
		}
		if err := database.Migrations().Migrate(ctx, db); err != nil {
			if sqlDB, dberr := db.DB(); dberr == nil {
				_ = sqlDB.Close()
			}
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		return gormds.New(db), nil
	case storeBolt:
		return boltds.New(c.BoltPath)
	case storeMemory:
		logger.Warn("using the memory store, devices are lost on restart")
		return memds.New(), nil
	default:
		return nil, fmt.Errorf("unknown store %q, must be one of %v", c.Kind, storeKinds)
	}
}

// rollbackSQL rolls back the last migration, or every migration when all is
// set, of the sql database selected by the config.
func rollbackSQL(ctx context.Context, logger *zap.SugaredLogger, c storeConfig, all bool) error {
	db, err := openSQL(ctx, logger, c)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer util.LogError(logger, "closing database", sqlDB.Close)

	if all {
		return database.Migrations().RollbackAll(ctx, db)
	}
	return database.Migrations().RollbackLast(ctx, db)
}
