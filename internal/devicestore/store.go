// Package devicestore defines the persistence gateway used by the device
// service, and hosts its implementations in sub packages:
//
//	gormds: PostgreSQL or SQLite through gorm
//	boltds: an embedded bbolt file
//	memds: process memory, mostly for tests
package devicestore

import (
	"context"
	"errors"

	"github.com/lalitbiswal91/device-management/internal/models"
)

// ErrClosed is returned by a Store that has been closed.
var ErrClosed = errors.New("device store is closed")

// Store persists Device records.  Implementations must be safe for concurrent use.
type Store interface {
	// FindByID returns the device with the given id, or nil with a nil error
	// when no such device exists.
	FindByID(ctx context.Context, id uint64) (*models.Device, error)
	// FindAll returns every device.  The result is never nil.
	FindAll(ctx context.Context) ([]*models.Device, error)
	// FindByBrand returns the devices whose brand equals brand exactly.
	FindByBrand(ctx context.Context, brand string) ([]*models.Device, error)
	// Save inserts device when its ID is zero, assigning a new ID, and
	// otherwise replaces the stored record with that ID.
	Save(ctx context.Context, device *models.Device) (*models.Device, error)
	// DeleteByID removes the device.  Removing a missing id is not an error.
	DeleteByID(ctx context.Context, id uint64) error
	// Ping reports whether the backing storage is usable.
	Ping(ctx context.Context) error
	Close() error
}
