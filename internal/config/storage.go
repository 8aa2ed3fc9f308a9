package config

import (
	"fmt"
	"os"
	"strings"
)

type StorageDriver string

const (
	MemoryStorage   StorageDriver = "memory"
	SQLiteStorage   StorageDriver = "sqlite"
	PostgresStorage StorageDriver = "postgres"
)

type Storage struct {
	Driver     StorageDriver
	SQLitePath string
	SQLiteName string
	Database   *Database // set for PostgresStorage only
}

func NewStorage() (*Storage, error) {
	driver := SQLiteStorage
	if s, ok := lookupEnv("SCORES_DRIVER"); ok {
		driver = StorageDriver(strings.ToLower(s))
	}

	storage := &Storage{Driver: driver}

	switch driver {
	case MemoryStorage:
	case SQLiteStorage:
		storage.SQLitePath = lookupEnvOr("SQLITE_PATH", "scores.db")
		storage.SQLiteName = lookupEnvOr("SQLITE_TABLE", "results")
	case PostgresStorage:
		db, err := NewDatabase()
		if err != nil {
			return nil, fmt.Errorf("unable to read postgres config: %w", err)
		}
		storage.Database = db
	default:
		return nil, fmt.Errorf("unknown SCORES_DRIVER %q", driver)
	}

	return storage, nil
}

// lookupEnv treats variables set to an empty string as unset.
func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return v, ok && v != ""
}

func lookupEnvOr(key, fallback string) string {
	if v, ok := lookupEnv(key); ok {
		return v
	}
	return fallback
}
