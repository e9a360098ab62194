package gormds

import (
	"context"
	"errors"

	"github.com/lalitbiswal91/device-management/internal/devicestore"
	"github.com/lalitbiswal91/device-management/internal/models"
	"gorm.io/gorm"
)

var _ devicestore.Store = (*Store)(nil)

// Store keeps devices in the "devices" table of a relational database.  The
// schema is owned by the database migrations.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindByID(ctx context.Context, id uint64) (*models.Device, error) {
	var device models.Device
	result := s.db.WithContext(ctx).Take(&device, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &device, nil
}

func (s *Store) FindAll(ctx context.Context) ([]*models.Device, error) {
	devices := []*models.Device{}
	if err := s.db.WithContext(ctx).Order("id").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (s *Store) FindByBrand(ctx context.Context, brand string) ([]*models.Device, error) {
	devices := []*models.Device{}
	if err := s.db.WithContext(ctx).Where("brand = ?", brand).Order("id").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (s *Store) Save(ctx context.Context, device *models.Device) (*models.Device, error) {
	saved := *device
	if err := s.db.WithContext(ctx).Save(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&models.Device{}, "id = ?", id).Error
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
