package database

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cenkalti/backoff/v4"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDatabase connects to PostgreSQL, retrying with exponential backoff until
// the server accepts the connection or ctx is done.
func NewDatabase(
	ctx context.Context,
	logger *zap.SugaredLogger,
	host string,
	user string,
	password string,
	dbname string,
	port string,
	sslmode string,
) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)
	return open(ctx, logger, postgres.Open(dsn))
}

// NewSqliteDatabase opens (creating if needed) a SQLite database file.
func NewSqliteDatabase(ctx context.Context, logger *zap.SugaredLogger, path string) (*gorm.DB, error) {
	db, err := open(ctx, logger, sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

var testDatabaseCounter atomic.Int32

// NewTestDatabase returns a migrated, private in-memory SQLite database.
func NewTestDatabase() (*gorm.DB, error) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDatabaseCounter.Add(1))
	db, err := open(ctx, logger, sqlite.Open(name))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrations().Migrate(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

func open(ctx context.Context, logger *zap.SugaredLogger, dialector gorm.Dialector) (*gorm.DB, error) {
	var db *gorm.DB
	connectDb := func() error {
		var err error
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: NewLogger(logger),
		})
		if err != nil {
			logger.Warnw("database connection failed, retrying", "error", err)
			return err
		}
		return nil
	}
	err := backoff.Retry(connectDb, backoff.WithContext(backoff.NewExponentialBackOff(), ctx))
	if err != nil {
		return nil, err
	}
	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		return nil, err
	}
	return db, nil
}
