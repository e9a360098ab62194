// Package tests holds behavioral tests every devicestore.Store must pass.
package tests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lalitbiswal91/device-management/internal/devicestore"
	"github.com/lalitbiswal91/device-management/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a new, empty store.  The store is closed when the test ends.
type Factory func(t *testing.T) devicestore.Store

func RunStoreTests(t *testing.T, factory Factory) {
	cases := []struct {
		name string
		fn   func(t *testing.T, store devicestore.Store)
	}{
		{"SaveAssignsIDs", TestSaveAssignsIDs},
		{"FindByIDMissing", TestFindByIDMissing},
		{"SaveReplacesExisting", TestSaveReplacesExisting},
		{"ReturnedDevicesAreCopies", TestReturnedDevicesAreCopies},
		{"FindAll", TestFindAll},
		{"FindByBrand", TestFindByBrand},
		{"DeleteByID", TestDeleteByID},
		{"ConcurrentSaves", TestConcurrentSaves},
		{"Ping", TestPing},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			store := factory(t)
			t.Cleanup(func() {
				_ = store.Close()
			})
			c.fn(t, store)
		})
	}
}

var created = time.Date(2024, 10, 14, 8, 30, 0, 123456000, time.UTC)

func newDevice(name, brand string) *models.Device {
	return &models.Device{Name: name, Brand: brand, CreationTime: created}
}

func RequireSameDevice(t *testing.T, expected, actual *models.Device) {
	t.Helper()
	require.NotNil(t, actual)
	require.Equal(t, expected.ID, actual.ID)
	require.Equal(t, expected.Name, actual.Name)
	require.Equal(t, expected.Brand, actual.Brand)
	require.True(t, expected.CreationTime.Equal(actual.CreationTime),
		"creation time: expected %s, actual %s", expected.CreationTime, actual.CreationTime)
}

func TestSaveAssignsIDs(t *testing.T, store devicestore.Store) {
	require := require.New(t)
	ctx := context.Background()

	first, err := store.Save(ctx, newDevice("IPhone", "Apple"))
	require.NoError(err)
	require.NotZero(first.ID)

	second, err := store.Save(ctx, newDevice("Galaxy", "Samsung"))
	require.NoError(err)
	require.Greater(second.ID, first.ID)

	found, err := store.FindByID(ctx, first.ID)
	require.NoError(err)
	RequireSameDevice(t, first, found)
}

func TestFindByIDMissing(t *testing.T, store devicestore.Store) {
	found, err := store.FindByID(context.Background(), 404)
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestSaveReplacesExisting(t *testing.T, store devicestore.Store) {
	require := require.New(t)
	ctx := context.Background()

	device, err := store.Save(ctx, newDevice("IPhone", "Apple"))
	require.NoError(err)

	device.Brand = "Samsung"
	updated, err := store.Save(ctx, device)
	require.NoError(err)
	require.Equal(device.ID, updated.ID)

	found, err := store.FindByID(ctx, device.ID)
	require.NoError(err)
	RequireSameDevice(t, updated, found)
	require.Equal("IPhone", found.Name)
	require.Equal("Samsung", found.Brand)

	all, err := store.FindAll(ctx)
	require.NoError(err)
	require.Len(all, 1)
}

func TestReturnedDevicesAreCopies(t *testing.T, store devicestore.Store) {
	require := require.New(t)
	ctx := context.Background()

	input := newDevice("IPhone", "Apple")
	saved, err := store.Save(ctx, input)
	require.NoError(err)
	require.Zero(input.ID, "Save must not modify its argument")

	saved.Name = "changed"
	found, err := store.FindByID(ctx, saved.ID)
	require.NoError(err)
	require.Equal("IPhone", found.Name)
}

func TestFindAll(t *testing.T, store devicestore.Store) {
	require := require.New(t)
	ctx := context.Background()

	all, err := store.FindAll(ctx)
	require.NoError(err)
	require.NotNil(all)
	require.Empty(all)

	var names []string
	for _, name := range []string{"IPhone", "Galaxy", "Pixel"} {
		_, err := store.Save(ctx, newDevice(name, "Any"))
		require.NoError(err)
		names = append(names, name)
	}

	all, err = store.FindAll(ctx)
	require.NoError(err)
	var actual []string
	for _, d := range all {
		actual = append(actual, d.Name)
	}
	assert.ElementsMatch(t, names, actual)
}

func TestFindByBrand(t *testing.T, store devicestore.Store) {
	require := require.New(t)
	ctx := context.Background()

	iphone, err := store.Save(ctx, newDevice("IPhone", "Apple"))
	require.NoError(err)
	_, err = store.Save(ctx, newDevice("Galaxy", "Samsung"))
	require.NoError(err)
	mac, err := store.Save(ctx, newDevice("MacBook", "Apple"))
	require.NoError(err)

	found, err := store.FindByBrand(ctx, "Apple")
	require.NoError(err)
	require.Len(found, 2)
	ids := []uint64{found[0].ID, found[1].ID}
	assert.ElementsMatch(t, []uint64{iphone.ID, mac.ID}, ids)

	// matching is exact and case sensitive
	for _, brand := range []string{"apple", "APPLE", "Appl", "Apple ", "Nokia", ""} {
		found, err := store.FindByBrand(ctx, brand)
		require.NoError(err)
		require.NotNil(found)
		require.Empty(found, "brand %q", brand)
	}
}

func TestDeleteByID(t *testing.T, store devicestore.Store) {
	require := require.New(t)
	ctx := context.Background()

	first, err := store.Save(ctx, newDevice("IPhone", "Apple"))
	require.NoError(err)
	second, err := store.Save(ctx, newDevice("Galaxy", "Samsung"))
	require.NoError(err)

	require.NoError(store.DeleteByID(ctx, second.ID))
	found, err := store.FindByID(ctx, second.ID)
	require.NoError(err)
	require.Nil(found)

	// deleting again, or deleting an id that never existed, is a no-op
	require.NoError(store.DeleteByID(ctx, second.ID))
	require.NoError(store.DeleteByID(ctx, 9999))

	remaining, err := store.FindAll(ctx)
	require.NoError(err)
	require.Len(remaining, 1)
	require.Equal(first.ID, remaining[0].ID)

	// ids are never reused
	third, err := store.Save(ctx, newDevice("Pixel", "Google"))
	require.NoError(err)
	require.Greater(third.ID, second.ID)
}

func TestConcurrentSaves(t *testing.T, store devicestore.Store) {
	require := require.New(t)
	ctx := context.Background()

	const count = 20
	ids := make(chan uint64, count)
	wg := sync.WaitGroup{}
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := store.Save(ctx, newDevice("IPhone", "Apple"))
			if assert.NoError(t, err) {
				ids <- d.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[uint64]bool{}
	for id := range ids {
		require.False(seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	require.Len(seen, count)
}

func TestPing(t *testing.T, store devicestore.Store) {
	require.NoError(t, store.Ping(context.Background()))
}
