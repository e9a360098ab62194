package migration_20241021_0000

import (
	"github.com/go-gormigrate/gormigrate/v2"
	. "github.com/lalitbiswal91/device-management/internal/database/migrations"
)

// Search by brand filters on this column.
func Migrate() *gormigrate.Migration {
	migrationId := "20241021-0000"
	return CreateMigrationFromActions(migrationId,
		ExecAction(
			`CREATE INDEX IF NOT EXISTS "idx_devices_brand" ON "devices" ("brand")`,
			`DROP INDEX IF EXISTS "idx_devices_brand"`,
		),
	)
}
