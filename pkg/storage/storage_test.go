package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/pastaprego-backend/pkg/config"
	"github.com/angelmondragon/pastaprego-backend/pkg/db"
	"github.com/angelmondragon/pastaprego-backend/pkg/db/models"
	"github.com/angelmondragon/pastaprego-backend/pkg/enums"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
	"github.com/angelmondragon/pastaprego-backend/pkg/redis"
)

type fakeCmdable struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCmdable) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (f *fakeCmdable) Set(_ context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Get(_ context.Context, key string) *goredis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeCmdable) SetNX(_ context.Context, key string, value any, _ time.Duration) *goredis.BoolCmd {
	if _, ok := f.data[key]; ok {
		return goredis.NewBoolResult(false, nil)
	}
	f.data[key] = fmt.Sprint(value)
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	return goredis.NewIntResult(int64(len(keys)), nil)
}

func newSQLStore(t *testing.T) *SQL {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.CartRecord{}))
	store, err := NewSQL(db.Wrap(conn, enums.StorageDriverSQLite))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func drivers(t *testing.T) map[string]Store {
	t.Helper()
	file, err := NewFile(t.TempDir())
	require.NoError(t, err)
	rds, err := NewRedis(redis.NewFromCmdable(newFakeCmdable()), 0)
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemory(),
		"file":   file,
		"redis":  rds,
		"sql":    newSQLStore(t),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, store := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(ctx, "cart")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Save(ctx, "cart", []byte(`[{"product_id":"p1"}]`)))
			got, err := store.Load(ctx, "cart")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"product_id":"p1"}]`, string(got))

			require.NoError(t, store.Save(ctx, "cart", []byte(`[]`)))
			got, err = store.Load(ctx, "cart")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			require.NoError(t, store.Save(ctx, "cart:other", []byte(`[{"product_id":"b1"}]`)))
			got, err = store.Load(ctx, "cart")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got), "records must be isolated by name")

			require.NoError(t, store.Ping(ctx))
		})
	}
}

func TestMemoryCopiesPayload(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	payload := []byte("abc")
	require.NoError(t, store.Save(ctx, "r", payload))
	payload[0] = 'x'

	got, err := store.Load(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileSanitizesNamesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "cart:../../etc", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cart_.._.._etc.json", entries[0].Name())
	assert.Equal(t, filepath.Join(dir, entries[0].Name()), store.path("cart:../../etc"))
}

func TestFilePingFailsWhenDirRemoved(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	store, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, store.Ping(context.Background()))
}

func TestRedisUsesNamespacedKeyAndTTL(t *testing.T) {
	fake := newFakeCmdable()
	store, err := NewRedis(redis.NewFromCmdable(fake), time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "cart:s1", []byte("[]")))

	assert.Equal(t, "[]", fake.data["pp:record:cart:s1"])
	assert.Equal(t, time.Hour, fake.ttls["pp:record:cart:s1"])
}

func TestConstructorsRejectMissingDeps(t *testing.T) {
	_, err := NewRedis(nil, 0)
	assert.Error(t, err)
	_, err = NewSQL(nil)
	assert.Error(t, err)
	_, err = NewFile("")
	assert.Error(t, err)
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.Storage.Driver = "memory"
	store, err := Open(ctx, cfg, logger.Nop(), nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, store)

	cfg.Storage.Driver = "file"
	cfg.Storage.Dir = t.TempDir()
	store, err = Open(ctx, cfg, logger.Nop(), nil)
	require.NoError(t, err)
	assert.IsType(t, &File{}, store)

	cfg.Storage.Driver = "redis"
	_, err = Open(ctx, cfg, logger.Nop(), nil)
	assert.Error(t, err, "redis driver needs a client")

	cfg.Storage.Driver = "sqlite"
	cfg.DB.DSN = "file:openselects?mode=memory&cache=shared"
	cfg.DB.AutoMigrate = true
	store, err = Open(ctx, cfg, logger.Nop(), nil)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Save(ctx, "cart", []byte("[]")))
}
