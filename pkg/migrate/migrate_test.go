package migrate

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/pastaprego-backend/pkg/config"
	"github.com/angelmondragon/pastaprego-backend/pkg/db"
	"github.com/angelmondragon/pastaprego-backend/pkg/enums"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
)

func openSQLite(t *testing.T) *db.Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db.Wrap(conn, enums.StorageDriverSQLite)
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestValidateFSRejectsBadFiles(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"bad name": {
			"m/create.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		},
		"missing down": {
			"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n")},
		},
		"duplicate version": {
			"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
			"m/20260101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		},
		"empty": {
			"m/readme.txt": {Data: []byte("nothing")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, ValidateFS(fsys, "m"))
		})
	}
}

func TestDialect(t *testing.T) {
	d, err := Dialect(enums.StorageDriverPostgres)
	require.NoError(t, err)
	require.Equal(t, "postgres", d)

	d, err = Dialect(enums.StorageDriverSQLite)
	require.NoError(t, err)
	require.Equal(t, "sqlite3", d)

	_, err = Dialect(enums.StorageDriverFile)
	require.Error(t, err)
}

func TestRunUpCreatesCartRecords(t *testing.T) {
	client := openSQLite(t)
	sqlDB, err := client.DB().DB()
	require.NoError(t, err)

	require.NoError(t, Run(context.Background(), sqlDB, enums.StorageDriverSQLite, "up"))
	require.True(t, client.DB().Migrator().HasTable("cart_records"))

	require.NoError(t, Run(context.Background(), sqlDB, enums.StorageDriverSQLite, "down"))
	require.False(t, client.DB().Migrator().HasTable("cart_records"))
}

func TestMaybeRunHonoursFlag(t *testing.T) {
	client := openSQLite(t)
	cfg := &config.Config{}

	require.NoError(t, MaybeRun(context.Background(), cfg, logger.Nop(), client))
	require.False(t, client.DB().Migrator().HasTable("cart_records"))

	cfg.DB.AutoMigrate = true
	require.NoError(t, MaybeRun(context.Background(), cfg, logger.Nop(), client))
	require.True(t, client.DB().Migrator().HasTable("cart_records"))
}
