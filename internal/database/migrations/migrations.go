package migrations

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer trace.Tracer

func init() {
	tracer = otel.Tracer("github.com/lalitbiswal91/device-management/internal/database")
}

type Migrations struct {
	Migrations  []*gormigrate.Migration
	GormOptions *gormigrate.Options
}

func (m *Migrations) Migrate(ctx context.Context, db *gorm.DB) error {
	ctx, span := tracer.Start(ctx, "Migrate")
	defer span.End()
	return gormigrate.New(db.WithContext(ctx).Debug(), m.GormOptions, m.Migrations).Migrate()
}

// MigrateTo applies migrations up to and including migrationID.
func (m *Migrations) MigrateTo(ctx context.Context, db *gorm.DB, migrationID string) error {
	ctx, span := tracer.Start(ctx, "MigrateTo")
	defer span.End()
	return gormigrate.New(db.WithContext(ctx), m.GormOptions, m.Migrations).MigrateTo(migrationID)
}

func (m *Migrations) RollbackLast(ctx context.Context, db *gorm.DB) error {
	ctx, span := tracer.Start(ctx, "RollbackLast")
	defer span.End()

	db = db.WithContext(ctx)
	if err := gormigrate.New(db, m.GormOptions, m.Migrations).RollbackLast(); err != nil {
		return err
	}
	return m.deleteMigrationTableIfEmpty(db)
}

// RollbackAll rolls back every applied migration and drops the migration table.
func (m *Migrations) RollbackAll(ctx context.Context, db *gorm.DB) error {
	ctx, span := tracer.Start(ctx, "RollbackAll")
	defer span.End()

	db = db.WithContext(ctx)
	gm := gormigrate.New(db, m.GormOptions, m.Migrations)
	for {
		count, err := m.CountMigrationsApplied(db)
		if err != nil {
			return err
		}
		if count == 0 {
			break
		}
		if err := gm.RollbackLast(); err != nil {
			return err
		}
	}
	return m.deleteMigrationTableIfEmpty(db)
}

func (m *Migrations) deleteMigrationTableIfEmpty(db *gorm.DB) error {
	if !db.Migrator().HasTable(m.GormOptions.TableName) {
		return nil
	}
	count, err := m.CountMigrationsApplied(db)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := db.Migrator().DropTable(m.GormOptions.TableName); err != nil {
			return fmt.Errorf("could not drop migration table: %w", err)
		}
	}
	return nil
}

func (m *Migrations) CountMigrationsApplied(db *gorm.DB) (int, error) {
	if !db.Migrator().HasTable(m.GormOptions.TableName) {
		return 0, nil
	}
	var count int64
	if err := db.Table(m.GormOptions.TableName).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// MigrationAction is one reversible schema step.  It applies the step when
// apply is true and reverts it otherwise.
type MigrationAction func(tx *gorm.DB, apply bool) error

func callerLocation(skip int) string {
	if _, file, no, ok := runtime.Caller(skip + 1); ok {
		return fmt.Sprintf("[ %s:%d ]", file, no)
	}
	return ""
}

func reversible(caller string, apply func(*gorm.DB) error, unapply func(*gorm.DB) error) MigrationAction {
	return func(tx *gorm.DB, forward bool) error {
		fn := unapply
		if forward {
			fn = apply
		}
		if err := fn(tx); err != nil {
			return errors.Wrap(err, caller)
		}
		return nil
	}
}

func CreateTableAction(table interface{}) MigrationAction {
	return reversible(callerLocation(1),
		func(tx *gorm.DB) error { return tx.AutoMigrate(table) },
		func(tx *gorm.DB) error { return tx.Migrator().DropTable(table) },
	)
}

func ExecAction(applySql string, unapplySql string) MigrationAction {
	exec := func(sql string) func(*gorm.DB) error {
		return func(tx *gorm.DB) error {
			if sql == "" {
				return nil
			}
			return tx.Exec(sql).Error
		}
	}
	return reversible(callerLocation(1), exec(applySql), exec(unapplySql))
}

func CreateMigrationFromActions(id string, actions ...MigrationAction) *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: id,
		Migrate: func(tx *gorm.DB) error {
			tx = tx.Debug()
			for _, action := range actions {
				if err := action(tx, true); err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			tx = tx.Debug()
			for i := len(actions) - 1; i >= 0; i-- {
				if err := actions[i](tx, false); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
