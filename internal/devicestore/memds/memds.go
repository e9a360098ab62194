package memds

import (
	"context"
	"sort"
	"sync"

	"github.com/lalitbiswal91/device-management/internal/devicestore"
	"github.com/lalitbiswal91/device-management/internal/models"
)

var _ devicestore.Store = (*Store)(nil)

// Store keeps devices in a map.  Callers always receive copies.
type Store struct {
	mu      sync.RWMutex
	devices map[uint64]models.Device
	lastID  uint64
	closed  bool
}

func New() *Store {
	return &Store{
		devices: map[uint64]models.Device{},
	}
}

func (s *Store) FindByID(ctx context.Context, id uint64) (*models.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, devicestore.ErrClosed
	}
	device, found := s.devices[id]
	if !found {
		return nil, nil
	}
	return &device, nil
}

func (s *Store) FindAll(ctx context.Context) ([]*models.Device, error) {
	return s.filter(ctx, func(*models.Device) bool { return true })
}

func (s *Store) FindByBrand(ctx context.Context, brand string) ([]*models.Device, error) {
	return s.filter(ctx, func(d *models.Device) bool { return d.Brand == brand })
}

func (s *Store) filter(ctx context.Context, match func(*models.Device) bool) ([]*models.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, devicestore.ErrClosed
	}
	result := []*models.Device{}
	for _, device := range s.devices {
		device := device
		if match(&device) {
			result = append(result, &device)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) Save(ctx context.Context, device *models.Device) (*models.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, devicestore.ErrClosed
	}
	saved := *device
	if saved.ID == 0 {
		s.lastID++
		saved.ID = s.lastID
	} else if saved.ID > s.lastID {
		s.lastID = saved.ID
	}
	s.devices[saved.ID] = saved
	return &saved, nil
}

func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return devicestore.ErrClosed
	}
	delete(s.devices, id)
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return devicestore.ErrClosed
	}
	return ctx.Err()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.devices = nil
	return nil
}
