// Package devices implements the device operations behind the REST API:
// create, read, list, partial update, delete and search by brand.
package devices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lalitbiswal91/device-management/internal/devicestore"
	"github.com/lalitbiswal91/device-management/internal/models"
	"github.com/lalitbiswal91/device-management/internal/util"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer trace.Tracer

func init() {
	tracer = otel.Tracer("github.com/lalitbiswal91/device-management/internal/devices")
}

// ErrNotFound matches every NotFoundError.
var ErrNotFound = errors.New("device not found")

// NotFoundError reports that no device exists with ID.
type NotFoundError struct {
	ID uint64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Device not found with Id: %d", e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type Service struct {
	logger *zap.SugaredLogger
	store  devicestore.Store
	now    func() time.Time
}

type Option func(*Service)

// WithClock sets the source of device creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(logger *zap.SugaredLogger, store devicestore.Store, options ...Option) *Service {
	s := &Service{
		logger: logger,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Service) Logger(ctx context.Context) *zap.SugaredLogger {
	return util.WithTrace(ctx, s.logger)
}

// Add stores a new device built from request.  The request is expected to
// have been validated already.
func (s *Service) Add(ctx context.Context, request models.AddDevice) (*models.Device, error) {
	ctx, span := tracer.Start(ctx, "Add")
	defer span.End()

	device, err := s.store.Save(ctx, &models.Device{
		Name:  request.Name,
		Brand: request.Brand,
		// Databases keep microseconds at most.
		CreationTime: s.now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		return nil, fmt.Errorf("saving device: %w", err)
	}
	span.SetAttributes(attribute.Int64("id", int64(device.ID)))
	s.Logger(ctx).Infow("device added", "id", device.ID, "name", device.Name, "brand", device.Brand)
	return device, nil
}

// Get returns the device with id, or nil when there is none.
func (s *Service) Get(ctx context.Context, id uint64) (*models.Device, error) {
	ctx, span := tracer.Start(ctx, "Get", trace.WithAttributes(attribute.Int64("id", int64(id))))
	defer span.End()

	s.Logger(ctx).Debugw("fetching device", "id", id)
	device, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching device %d: %w", id, err)
	}
	return device, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Device, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	devices, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	span.SetAttributes(attribute.Int("count", len(devices)))
	return devices, nil
}

// Update applies the non nil fields of request that differ from the stored
// device.  When nothing differs the stored device is returned and nothing is
// written.  A missing device yields a NotFoundError.
func (s *Service) Update(ctx context.Context, id uint64, request models.UpdateDevice) (*models.Device, error) {
	ctx, span := tracer.Start(ctx, "Update", trace.WithAttributes(attribute.Int64("id", int64(id))))
	defer span.End()

	logger := s.Logger(ctx)
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching device %d: %w", id, err)
	}
	if existing == nil {
		return nil, NotFoundError{ID: id}
	}

	device, changed := merge(*existing, request)
	if !changed {
		logger.Infow("no updates were made to the device", "id", id)
		return existing, nil
	}
	if device.Name != existing.Name {
		logger.Infow("updating device name", "id", id, "from", existing.Name, "to", device.Name)
	}
	if device.Brand != existing.Brand {
		logger.Infow("updating device brand", "id", id, "from", existing.Brand, "to", device.Brand)
	}

	saved, err := s.store.Save(ctx, &device)
	if err != nil {
		return nil, fmt.Errorf("saving device %d: %w", id, err)
	}
	span.SetAttributes(attribute.Bool("changed", true))
	return saved, nil
}

// merge returns device with the present, differing fields of request
// applied, and whether any field changed.  ID and CreationTime are kept.
func merge(device models.Device, request models.UpdateDevice) (models.Device, bool) {
	changed := false
	if request.Name != nil && *request.Name != device.Name {
		device.Name = *request.Name
		changed = true
	}
	if request.Brand != nil && *request.Brand != device.Brand {
		device.Brand = *request.Brand
		changed = true
	}
	return device, changed
}

// Delete removes the device with id.  Deleting a missing device succeeds.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	ctx, span := tracer.Start(ctx, "Delete", trace.WithAttributes(attribute.Int64("id", int64(id))))
	defer span.End()

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting device %d: %w", id, err)
	}
	s.Logger(ctx).Infow("device deleted", "id", id)
	return nil
}

// SearchByBrand returns the devices whose brand is exactly brand.
func (s *Service) SearchByBrand(ctx context.Context, brand string) ([]*models.Device, error) {
	ctx, span := tracer.Start(ctx, "SearchByBrand", trace.WithAttributes(attribute.String("brand", brand)))
	defer span.End()

	devices, err := s.store.FindByBrand(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("searching devices by brand: %w", err)
	}
	span.SetAttributes(attribute.Int("count", len(devices)))
	return devices, nil
}

// Ping reports whether the device store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
