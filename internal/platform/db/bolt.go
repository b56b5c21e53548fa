package db

import (
	"errors"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

// Bolt wraps the embedded single-file database used as the default durable
// record store.
type Bolt struct {
	DB *bolt.DB
}

func OpenBolt(path string) (*Bolt, error) {
	if path == "" {
		return nil, errors.New("bolt path is required")
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}
	return &Bolt{DB: db}, nil
}

func (b *Bolt) Close() error {
	if b == nil || b.DB == nil {
		return nil
	}
	return b.DB.Close()
}
