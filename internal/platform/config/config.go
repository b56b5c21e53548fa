package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageDriverBolt     = "bolt"
	StorageDriverPostgres = "postgres"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName   string
	HTTPPort      string
	StorageDriver string
	BoltPath      string
	PostgresDSN   string
}

func Load() (Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "databazaar"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	driver := strings.TrimSpace(strings.ToLower(os.Getenv("STORAGE_DRIVER")))
	if driver == "" {
		driver = StorageDriverBolt
	}
	if driver != StorageDriverBolt && driver != StorageDriverPostgres {
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", driver)
	}

	boltPath := os.Getenv("BOLT_PATH")
	if boltPath == "" {
		boltPath = "databazaar.db"
	}

	return Config{
		ServiceName:   service,
		HTTPPort:      port,
		StorageDriver: driver,
		BoltPath:      boltPath,
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
	}, nil
}
