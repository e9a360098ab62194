package boltds

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/lalitbiswal91/device-management/internal/devicestore"
	"github.com/lalitbiswal91/device-management/internal/models"
	bolt "go.etcd.io/bbolt"
)

var _ devicestore.Store = (*Store)(nil)

var bucketDevices = []byte("devices")

// Store keeps devices as json values in a bbolt bucket, keyed by the
// big endian encoding of the id so cursor order is id order.  Ids come
// from the bucket sequence.
type Store struct {
	db *bolt.DB
}

// New opens, creating if needed, the bbolt file at path.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDevices)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func key(id uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, id)
	return k
}

func translate(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return devicestore.ErrClosed
	}
	return err
}

func (s *Store) FindByID(ctx context.Context, id uint64) (*models.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result *models.Device
	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketDevices).Get(key(id))
		if value == nil {
			return nil
		}
		result = &models.Device{}
		return json.Unmarshal(value, result)
	})
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

func (s *Store) FindAll(ctx context.Context) ([]*models.Device, error) {
	return s.list(ctx, func(*models.Device) bool { return true })
}

func (s *Store) FindByBrand(ctx context.Context, brand string) ([]*models.Device, error) {
	return s.list(ctx, func(d *models.Device) bool { return d.Brand == brand })
}

func (s *Store) list(ctx context.Context, filter func(*models.Device) bool) ([]*models.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	devices := []*models.Device{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDevices).ForEach(func(_, v []byte) error {
			var device models.Device
			if err := json.Unmarshal(v, &device); err != nil {
				return err
			}
			if filter(&device) {
				devices = append(devices, &device)
			}
			return nil
		})
	})
	if err != nil {
		return nil, translate(err)
	}
	return devices, nil
}

func (s *Store) Save(ctx context.Context, device *models.Device) (*models.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	saved := *device
	err := s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketDevices)
		if saved.ID == 0 {
			id, err := bkt.NextSequence()
			if err != nil {
				return err
			}
			saved.ID = id
		} else if saved.ID > bkt.Sequence() {
			if err := bkt.SetSequence(saved.ID); err != nil {
				return err
			}
		}
		payload, err := json.Marshal(&saved)
		if err != nil {
			return err
		}
		return bkt.Put(key(saved.ID), payload)
	})
	if err != nil {
		return nil, translate(err)
	}
	return &saved, nil
}

func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDevices).Delete(key(id))
	}))
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketDevices) == nil {
			return errors.New("devices bucket is missing")
		}
		return nil
	}))
}

func (s *Store) Close() error {
	return s.db.Close()
}
