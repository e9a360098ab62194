package migration_20241014_0000

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	. "github.com/lalitbiswal91/device-management/internal/database/migrations"
)

type Device struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"not null"`
	Brand        string    `gorm:"not null"`
	CreationTime time.Time `gorm:"not null"`
}

func Migrate() *gormigrate.Migration {
	migrationId := "20241014-0000"
	return CreateMigrationFromActions(migrationId,
		CreateTableAction(&Device{}),
	)
}
