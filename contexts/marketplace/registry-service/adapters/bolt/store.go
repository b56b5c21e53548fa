package boltadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"

	"databazaar/contexts/marketplace/registry-service/ports"
)

// The two record collections live in separate buckets named by numeric
// namespace so they can never collide inside the shared database file.
const (
	dataItemNamespace  = 0
	purchaserNamespace = 1
)

func namespaceBucket(namespace int) []byte {
	return []byte(fmt.Sprintf("records_%d", namespace))
}

// Store persists both record collections in a single embedded bolt database.
// Records are stored as JSON keyed by id; listing re-sorts into the
// creation-time order the repository ports promise, since bolt iterates in
// byte-sorted key order.
type Store struct {
	db *bolt.DB
}

func NewStore(db *bolt.DB) (*Store, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, namespace := range []int{dataItemNamespace, purchaserNamespace} {
			if _, err := tx.CreateBucketIfNotExists(namespaceBucket(namespace)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create registry buckets: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) GetDataItem(_ context.Context, id string) (ports.DataItem, bool, error) {
	var item ports.DataItem
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(namespaceBucket(dataItemNamespace)).Get([]byte(id))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &item)
	})
	if err != nil {
		return ports.DataItem{}, false, err
	}
	return item, found, nil
}

func (s *Store) PutDataItem(_ context.Context, item ports.DataItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(namespaceBucket(dataItemNamespace)).Put([]byte(item.ID), raw)
	})
}

func (s *Store) RemoveDataItem(_ context.Context, id string) (ports.DataItem, bool, error) {
	var item ports.DataItem
	found := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(namespaceBucket(dataItemNamespace))
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			return err
		}
		found = true
		return bucket.Delete([]byte(id))
	})
	if err != nil {
		return ports.DataItem{}, false, err
	}
	return item, found, nil
}

func (s *Store) ListDataItems(_ context.Context) ([]ports.DataItem, error) {
	items := []ports.DataItem{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(namespaceBucket(dataItemNamespace)).ForEach(func(_, raw []byte) error {
			var item ports.DataItem
			if err := json.Unmarshal(raw, &item); err != nil {
				return err
			}
			items = append(items, item)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) GetPurchaser(_ context.Context, id string) (ports.Purchaser, bool, error) {
	var purchaser ports.Purchaser
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(namespaceBucket(purchaserNamespace)).Get([]byte(id))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &purchaser)
	})
	if err != nil {
		return ports.Purchaser{}, false, err
	}
	return purchaser, found, nil
}

func (s *Store) PutPurchaser(_ context.Context, purchaser ports.Purchaser) error {
	raw, err := json.Marshal(purchaser)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(namespaceBucket(purchaserNamespace)).Put([]byte(purchaser.ID), raw)
	})
}

func (s *Store) RemovePurchaser(_ context.Context, id string) (ports.Purchaser, bool, error) {
	var purchaser ports.Purchaser
	found := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(namespaceBucket(purchaserNamespace))
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &purchaser); err != nil {
			return err
		}
		found = true
		return bucket.Delete([]byte(id))
	})
	if err != nil {
		return ports.Purchaser{}, false, err
	}
	return purchaser, found, nil
}

func (s *Store) ListPurchasers(_ context.Context) ([]ports.Purchaser, error) {
	purchasers := []ports.Purchaser{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(namespaceBucket(purchaserNamespace)).ForEach(func(_, raw []byte) error {
			var purchaser ports.Purchaser
			if err := json.Unmarshal(raw, &purchaser); err != nil {
				return err
			}
			purchasers = append(purchasers, purchaser)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(purchasers, func(i, j int) bool {
		if purchasers[i].CreatedAt.Equal(purchasers[j].CreatedAt) {
			return purchasers[i].ID < purchasers[j].ID
		}
		return purchasers[i].CreatedAt.Before(purchasers[j].CreatedAt)
	})
	return purchasers, nil
}

// UUIDGenerator creates canonical identifiers for stored records.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.DataItemRepository = (*Store)(nil)
var _ ports.PurchaserRepository = (*Store)(nil)
var _ ports.IDGenerator = UUIDGenerator{}
var _ ports.Clock = SystemClock{}
