package boltadapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	bolt "github.com/boltdb/bolt"

	"databazaar/contexts/marketplace/registry-service/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "registry.db")
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("open bolt db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close bolt db: %v", err)
		}
	})

	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestDataItemRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := ports.DataItem{
		ID:          "11111111-2222-4333-8444-555555555555",
		Seller:      "seller_1",
		Title:       "Dataset",
		Description: "hourly numbers",
		Price:       100,
		DataFormat:  "csv",
		CreatedAt:   time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := store.PutDataItem(ctx, item); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok, err := store.GetDataItem(ctx, item.ID)
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if got != item {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestPutDataItemOverwritesExistingRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := ports.DataItem{ID: "11111111-2222-4333-8444-555555555555", Title: "v1"}
	if err := store.PutDataItem(ctx, item); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	item.Title = "v2"
	if err := store.PutDataItem(ctx, item); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	got, _, err := store.GetDataItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "v2" {
		t.Fatalf("expected overwrite, got %q", got.Title)
	}

	listed, err := store.ListDataItems(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("overwrite duplicated the record: %d entries", len(listed))
	}
}

func TestRemoveDataItemReturnsRemovedRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := ports.DataItem{ID: "11111111-2222-4333-8444-555555555555", Title: "Dataset"}
	if err := store.PutDataItem(ctx, item); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	removed, ok, err := store.RemoveDataItem(ctx, item.ID)
	if err != nil || !ok {
		t.Fatalf("remove failed: ok=%v err=%v", ok, err)
	}
	if removed.Title != "Dataset" {
		t.Fatalf("remove returned wrong record: %+v", removed)
	}

	if _, ok, _ := store.GetDataItem(ctx, item.ID); ok {
		t.Fatalf("record survives remove")
	}

	_, ok, err = store.RemoveDataItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("second remove errored: %v", err)
	}
	if ok {
		t.Fatalf("second remove reported success")
	}
}

func TestListDataItemsOrdersByCreationNotKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	// Key order (byte-sorted) is the reverse of creation order here.
	older := ports.DataItem{ID: "ffffffff-0000-4000-8000-000000000001", CreatedAt: base}
	newer := ports.DataItem{ID: "00000000-0000-4000-8000-000000000002", CreatedAt: base.Add(time.Hour)}
	for _, record := range []ports.DataItem{newer, older} {
		if err := store.PutDataItem(ctx, record); err != nil {
			t.Fatalf("put failed: %v", err)
		}
	}

	listed, err := store.ListDataItems(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 records, got %d", len(listed))
	}
	if listed[0].ID != older.ID || listed[1].ID != newer.ID {
		t.Fatalf("expected creation order, got %q then %q", listed[0].ID, listed[1].ID)
	}
}

func TestCollectionsDoNotCollide(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sharedID := "11111111-2222-4333-8444-555555555555"
	if err := store.PutDataItem(ctx, ports.DataItem{ID: sharedID, Title: "Dataset"}); err != nil {
		t.Fatalf("put item failed: %v", err)
	}
	if err := store.PutPurchaser(ctx, ports.Purchaser{ID: sharedID, Name: "Buyer", PurchasedItems: []string{}}); err != nil {
		t.Fatalf("put purchaser failed: %v", err)
	}

	if _, _, err := store.RemovePurchaser(ctx, sharedID); err != nil {
		t.Fatalf("remove purchaser failed: %v", err)
	}

	_, ok, err := store.GetDataItem(ctx, sharedID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if !ok {
		t.Fatalf("removing a purchaser deleted the data item with the same id")
	}
}

func TestPurchaserHistorySurvivesRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	purchaser := ports.Purchaser{
		ID:             "11111111-2222-4333-8444-555555555555",
		Owner:          "buyer_1",
		Name:           "Buyer",
		Price:          50,
		PurchasedItems: []string{"a", "b", "a"},
		CreatedAt:      time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := store.PutPurchaser(ctx, purchaser); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok, err := store.GetPurchaser(ctx, purchaser.ID)
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if len(got.PurchasedItems) != 3 || got.PurchasedItems[2] != "a" {
		t.Fatalf("history mangled: %v", got.PurchasedItems)
	}
}
