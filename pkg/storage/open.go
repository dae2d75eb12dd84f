package storage

import (
	"context"
	"fmt"

	"github.com/angelmondragon/pastaprego-backend/pkg/config"
	"github.com/angelmondragon/pastaprego-backend/pkg/db"
	"github.com/angelmondragon/pastaprego-backend/pkg/enums"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
	"github.com/angelmondragon/pastaprego-backend/pkg/migrate"
	"github.com/angelmondragon/pastaprego-backend/pkg/redis"
)

// Open builds the Store selected by PASTAPREGO_STORAGE_DRIVER. The redis
// client is only consulted for the redis driver and may be nil otherwise.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger, redisClient *redis.Client) (Store, error) {
	driver := cfg.Storage.DriverKind()
	ctx = logg.WithField(ctx, "storage_driver", driver.String())

	switch driver {
	case enums.StorageDriverMemory:
		logg.Warn(ctx, "memory storage selected; carts will not survive a restart")
		return NewMemory(), nil

	case enums.StorageDriverFile:
		return NewFile(cfg.Storage.Dir)

	case enums.StorageDriverRedis:
		return NewRedis(redisClient, cfg.Redis.RecordTTL)

	case enums.StorageDriverPostgres, enums.StorageDriverSQLite:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		return NewSQL(client)

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
