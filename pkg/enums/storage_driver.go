package enums

import (
	"fmt"
	"strings"
)

// StorageDriver selects the backend holding persisted cart records.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverFile     StorageDriver = "file"
	StorageDriverRedis    StorageDriver = "redis"
	StorageDriverSQLite   StorageDriver = "sqlite"
	StorageDriverPostgres StorageDriver = "postgres"
)

var validStorageDrivers = []StorageDriver{
	StorageDriverMemory,
	StorageDriverFile,
	StorageDriverRedis,
	StorageDriverSQLite,
	StorageDriverPostgres,
}

// String implements fmt.Stringer.
func (d StorageDriver) String() string {
	return string(d)
}

// IsValid reports whether the value is a known StorageDriver.
func (d StorageDriver) IsValid() bool {
	for _, candidate := range validStorageDrivers {
		if candidate == d {
			return true
		}
	}
	return false
}

// IsSQL reports whether the driver goes through gorm.
func (d StorageDriver) IsSQL() bool {
	return d == StorageDriverSQLite || d == StorageDriverPostgres
}

// ParseStorageDriver converts raw input into a StorageDriver. Matching is case-insensitive.
func ParseStorageDriver(value string) (StorageDriver, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validStorageDrivers {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid storage driver %q", value)
}
