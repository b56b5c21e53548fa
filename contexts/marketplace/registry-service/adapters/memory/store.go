package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"databazaar/contexts/marketplace/registry-service/ports"
)

// Store keeps both record collections in process memory. It backs tests and
// the in-memory module wiring; the bolt and postgres adapters are the durable
// equivalents.
type Store struct {
	mu         sync.RWMutex
	items      map[string]ports.DataItem
	purchasers map[string]ports.Purchaser
}

func NewStore() *Store {
	return &Store{
		items:      make(map[string]ports.DataItem),
		purchasers: make(map[string]ports.Purchaser),
	}
}

func (s *Store) GetDataItem(ctx context.Context, id string) (ports.DataItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return ports.DataItem{}, false, nil
	}
	return item, true, nil
}

func (s *Store) PutDataItem(ctx context.Context, item ports.DataItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[item.ID] = item
	return nil
}

func (s *Store) RemoveDataItem(ctx context.Context, id string) (ports.DataItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return ports.DataItem{}, false, nil
	}
	delete(s.items, id)
	return item, true, nil
}

func (s *Store) ListDataItems(ctx context.Context) ([]ports.DataItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.DataItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sortDataItems(items)
	return items, nil
}

func (s *Store) GetPurchaser(ctx context.Context, id string) (ports.Purchaser, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchaser, ok := s.purchasers[id]
	if !ok {
		return ports.Purchaser{}, false, nil
	}
	return clonePurchaser(purchaser), true, nil
}

func (s *Store) PutPurchaser(ctx context.Context, purchaser ports.Purchaser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purchasers[purchaser.ID] = clonePurchaser(purchaser)
	return nil
}

func (s *Store) RemovePurchaser(ctx context.Context, id string) (ports.Purchaser, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchaser, ok := s.purchasers[id]
	if !ok {
		return ports.Purchaser{}, false, nil
	}
	delete(s.purchasers, id)
	return clonePurchaser(purchaser), true, nil
}

func (s *Store) ListPurchasers(ctx context.Context) ([]ports.Purchaser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchasers := make([]ports.Purchaser, 0, len(s.purchasers))
	for _, purchaser := range s.purchasers {
		purchasers = append(purchasers, clonePurchaser(purchaser))
	}
	sort.Slice(purchasers, func(i, j int) bool {
		if purchasers[i].CreatedAt.Equal(purchasers[j].CreatedAt) {
			return purchasers[i].ID < purchasers[j].ID
		}
		return purchasers[i].CreatedAt.Before(purchasers[j].CreatedAt)
	})
	return purchasers, nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func sortDataItems(items []ports.DataItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func clonePurchaser(in ports.Purchaser) ports.Purchaser {
	out := in
	out.PurchasedItems = append([]string(nil), in.PurchasedItems...)
	return out
}

var _ ports.DataItemRepository = (*Store)(nil)
var _ ports.PurchaserRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
