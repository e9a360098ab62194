package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/lalitbiswal91/device-management/internal/database/migration_20241014_0000"
	"github.com/lalitbiswal91/device-management/internal/database/migration_20241021_0000"
	"github.com/lalitbiswal91/device-management/internal/database/migrations"
)

// Migrations returns the ordered schema migrations of the device database.
// For help writing migration steps, see the gorm documentation on migrations: https://gorm.io/docs/migration.html
func Migrations() *migrations.Migrations {
	return &migrations.Migrations{
		GormOptions: &gormigrate.Options{
			TableName:      "apiserver_migrations",
			IDColumnName:   "id",
			IDColumnSize:   40,
			UseTransaction: false,
		},
		Migrations: []*gormigrate.Migration{
			migration_20241014_0000.Migrate(),
			migration_20241021_0000.Migrate(),
		},
	}
}
