package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lalitbiswal91/device-management/internal/devicestore/boltds"
	"github.com/lalitbiswal91/device-management/internal/devicestore/gormds"
	"github.com/lalitbiswal91/device-management/internal/devicestore/memds"
	"github.com/lalitbiswal91/device-management/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t).Sugar()
	dir := t.TempDir()

	tests := []struct {
		kind     string
		expected interface{}
	}{
		{storeMemory, &memds.Store{}},
		{storeBolt, &boltds.Store{}},
		{storeSqlite, &gormds.Store{}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			store, err := openStore(ctx, logger, storeConfig{
				Kind:       tt.kind,
				SqlitePath: filepath.Join(dir, "devices.db"),
				BoltPath:   filepath.Join(dir, "devices.bolt"),
			})
			require.NoError(t, err)
			defer func() {
				require.NoError(t, store.Close())
			}()
			require.IsType(t, tt.expected, store)
			require.NoError(t, store.Ping(ctx))

			saved, err := store.Save(ctx, &models.Device{Name: "IPhone", Brand: "Apple"})
			require.NoError(t, err)
			found, err := store.FindByID(ctx, saved.ID)
			require.NoError(t, err)
			require.Equal(t, "IPhone", found.Name)
		})
	}
}

func TestOpenStoreUnknown(t *testing.T) {
	_, err := openStore(context.Background(), zaptest.NewLogger(t).Sugar(), storeConfig{Kind: "mongo"})
	require.ErrorContains(t, err, `unknown store "mongo"`)

	_, err = openSQL(context.Background(), zaptest.NewLogger(t).Sugar(), storeConfig{Kind: storeBolt})
	require.Error(t, err)
}

func TestRollbackSQL(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core).Sugar()
	config := storeConfig{
		Kind:       storeSqlite,
		SqlitePath: filepath.Join(t.TempDir(), "devices.db"),
	}

	store, err := openStore(ctx, logger, config)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, rollbackSQL(ctx, logger, config, false))
	require.NoError(t, rollbackSQL(ctx, logger, config, true))
	require.Zero(t, logs.FilterMessage("closing database").Len())

	db, err := openSQL(ctx, logger, config)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, sqlDB.Close())
	}()
	require.False(t, db.Migrator().HasTable("devices"))

	_, err = openSQL(ctx, logger, storeConfig{Kind: storeMemory})
	require.Error(t, err)
	require.Error(t, rollbackSQL(ctx, logger, storeConfig{Kind: storeMemory}, false))
}
