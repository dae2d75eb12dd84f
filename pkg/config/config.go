package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/pastaprego-backend/pkg/enums"
)

type Config struct {
	App        AppConfig
	Storage    StorageConfig
	DB         DBConfig
	Redis      RedisConfig
	Storefront StorefrontConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PASTAPREGO_APP_ENV" required:"true"`
	Port         string `envconfig:"PASTAPREGO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PASTAPREGO_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PASTAPREGO_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PASTAPREGO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where cart records live.
type StorageConfig struct {
	Driver string `envconfig:"PASTAPREGO_STORAGE_DRIVER" default:"file"`
	Dir    string `envconfig:"PASTAPREGO_STORAGE_DIR" default:"data"`
	Record string `envconfig:"PASTAPREGO_CART_RECORD" default:"cart"`
}

// DriverKind returns the parsed driver. Load has already validated it.
func (s StorageConfig) DriverKind() enums.StorageDriver {
	driver, err := enums.ParseStorageDriver(s.Driver)
	if err != nil {
		return enums.StorageDriverFile
	}
	return driver
}

type DBConfig struct {
	DSN         string `envconfig:"PASTAPREGO_DB_DSN"`
	AutoMigrate bool   `envconfig:"PASTAPREGO_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"PASTAPREGO_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PASTAPREGO_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PASTAPREGO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PASTAPREGO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PASTAPREGO_REDIS_URL"`
	Address      string        `envconfig:"PASTAPREGO_REDIS_ADDR"`
	Password     string        `envconfig:"PASTAPREGO_REDIS_PASSWORD"`
	DB           int           `envconfig:"PASTAPREGO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PASTAPREGO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PASTAPREGO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PASTAPREGO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PASTAPREGO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PASTAPREGO_REDIS_WRITE_TIMEOUT" default:"5s"`
	RecordTTL    time.Duration `envconfig:"PASTAPREGO_REDIS_RECORD_TTL" default:"0s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type StorefrontConfig struct {
	DeliveryFeeCents int64         `envconfig:"PASTAPREGO_DELIVERY_FEE_CENTS" default:"250"`
	OrderPrefix      string        `envconfig:"PASTAPREGO_ORDER_PREFIX" default:"ORD-"`
	TransitionDelay  time.Duration `envconfig:"PASTAPREGO_TRANSITION_DELAY" default:"600ms"`
	SessionCookie    string        `envconfig:"PASTAPREGO_SESSION_COOKIE" default:"cart_session"`
	SecureCookie     bool          `envconfig:"PASTAPREGO_SESSION_COOKIE_SECURE" default:"false"`
	AllowedOrigins   []string      `envconfig:"PASTAPREGO_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	MaxOpenCarts     int           `envconfig:"PASTAPREGO_MAX_OPEN_CARTS" default:"10000"`
}

func (c *Config) validate() error {
	driver, err := enums.ParseStorageDriver(c.Storage.Driver)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvStorageDriver, err)
	}
	if strings.TrimSpace(c.Storage.Record) == "" {
		return fmt.Errorf("%s must not be empty", EnvCartRecord)
	}
	switch driver {
	case enums.StorageDriverPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the postgres storage driver", EnvDBDSN)
		}
	case enums.StorageDriverSQLite:
		if c.DB.DSN == "" {
			c.DB.DSN = "file:pastaprego.db?_busy_timeout=5000"
		}
	case enums.StorageDriverRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("either %s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
		}
	case enums.StorageDriverFile:
		if strings.TrimSpace(c.Storage.Dir) == "" {
			return fmt.Errorf("%s is required for the file storage driver", EnvStorageDir)
		}
	}
	if c.Storefront.DeliveryFeeCents < 0 {
		return fmt.Errorf("%s must be non-negative", EnvDeliveryFeeCents)
	}
	if c.Storefront.TransitionDelay < 0 {
		return fmt.Errorf("%s must be non-negative", EnvTransitionDelay)
	}
	if c.Storefront.MaxOpenCarts <= 0 {
		return fmt.Errorf("%s must be positive", EnvMaxOpenCarts)
	}
	return nil
}
