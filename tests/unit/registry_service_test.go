package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	registryservice "databazaar/contexts/marketplace/registry-service"
	"databazaar/contexts/marketplace/registry-service/adapters/memory"
	domainerrors "databazaar/contexts/marketplace/registry-service/domain/errors"
	httptransport "databazaar/contexts/marketplace/registry-service/transport/http"
)

func validDataItemRequest() httptransport.DataItemPayloadRequest {
	return httptransport.DataItemPayloadRequest{
		Title:         "Hourly Weather Feed",
		Description:   "Hourly weather readings for three regions",
		Price:         1200,
		AttachmentURL: "https://cdn.example.com/weather.csv",
		DataFormat:    "csv",
		Status:        "active",
		Quality:       "high",
		Rating:        4,
	}
}

func validPurchaserRequest() httptransport.PurchaserPayloadRequest {
	return httptransport.PurchaserPayloadRequest{
		Name:    "Acme Analytics",
		Price:   500,
		Message: "looking for weather data",
	}
}

func TestRegistryServiceDataItemLifecycle(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	created, err := module.Handler.AddDataItemHandler(ctx, "seller_1", validDataItemRequest())
	if err != nil {
		t.Fatalf("add data item failed: %v", err)
	}
	if created.Data.Seller != "seller_1" {
		t.Fatalf("expected seller from caller identity, got %q", created.Data.Seller)
	}
	if created.Data.ItemID == "" {
		t.Fatalf("expected a generated item id")
	}

	fetched, err := module.Handler.GetDataItemHandler(ctx, created.Data.ItemID)
	if err != nil {
		t.Fatalf("get data item failed: %v", err)
	}
	if fetched.Data != created.Data {
		t.Fatalf("fetched record differs from created record: %+v", fetched.Data)
	}

	update := validDataItemRequest()
	update.Title = "Hourly Weather Feed v2"
	update.Price = 1500
	updated, err := module.Handler.UpdateDataItemHandler(ctx, "seller_1", created.Data.ItemID, update)
	if err != nil {
		t.Fatalf("update data item failed: %v", err)
	}
	if updated.Data.ItemID != created.Data.ItemID || updated.Data.Seller != "seller_1" {
		t.Fatalf("update must keep id and seller, got %+v", updated.Data)
	}
	if updated.Data.Title != "Hourly Weather Feed v2" || updated.Data.Price != 1500 {
		t.Fatalf("update did not apply payload fields: %+v", updated.Data)
	}

	deleted, err := module.Handler.DeleteDataItemHandler(ctx, "seller_1", created.Data.ItemID)
	if err != nil {
		t.Fatalf("delete data item failed: %v", err)
	}
	if deleted.Data.DeletedID != created.Data.ItemID {
		t.Fatalf("expected deleted id %q, got %q", created.Data.ItemID, deleted.Data.DeletedID)
	}

	_, err = module.Handler.GetDataItemHandler(ctx, created.Data.ItemID)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestRegistryServiceMalformedIDIsInvalidPayload(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	_, err := module.Handler.GetDataItemHandler(ctx, "not-a-uuid")
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload for malformed id, got %v", err)
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("malformed id must not be reported as missing")
	}

	_, err = module.Handler.DeleteDataItemHandler(ctx, "seller_1", "not-a-uuid")
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload on delete with malformed id, got %v", err)
	}
}

func TestRegistryServiceValidationReportsAllViolations(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	_, err := module.Handler.AddDataItemHandler(ctx, "seller_1", httptransport.DataItemPayloadRequest{
		Status: "active",
		Rating: 1,
	})
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload, got %v", err)
	}
	violations := domainerrors.ViolationsOf(err)
	if len(violations) < 2 {
		t.Fatalf("expected all violations reported together, got %v", violations)
	}
}

func TestRegistryServiceOwnershipGatesMutation(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	created, err := module.Handler.AddDataItemHandler(ctx, "seller_1", validDataItemRequest())
	if err != nil {
		t.Fatalf("add data item failed: %v", err)
	}

	hijack := validDataItemRequest()
	hijack.Title = "Hijacked"
	_, err = module.Handler.UpdateDataItemHandler(ctx, "seller_2", created.Data.ItemID, hijack)
	if !errors.Is(err, domainerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure for non-seller update, got %v", err)
	}

	_, err = module.Handler.DeleteDataItemHandler(ctx, "seller_2", created.Data.ItemID)
	if !errors.Is(err, domainerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure for non-seller delete, got %v", err)
	}

	after, err := module.Handler.GetDataItemHandler(ctx, created.Data.ItemID)
	if err != nil {
		t.Fatalf("get after rejected mutation failed: %v", err)
	}
	if after.Data != created.Data {
		t.Fatalf("rejected mutation changed the record: %+v", after.Data)
	}
}

func TestRegistryServiceSearchIsCaseInsensitiveSubstring(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	titled := validDataItemRequest()
	titled.Title = "Traffic COUNTS downtown"
	described := validDataItemRequest()
	described.Title = "Sensor bundle"
	described.Description = "includes traffic counts per junction"
	unrelated := validDataItemRequest()
	unrelated.Title = "Retail footfall"
	unrelated.Description = "store visits"

	for _, req := range []httptransport.DataItemPayloadRequest{titled, described, unrelated} {
		if _, err := module.Handler.AddDataItemHandler(ctx, "seller_1", req); err != nil {
			t.Fatalf("add data item failed: %v", err)
		}
	}

	resp, err := module.Handler.SearchDataItemsHandler(ctx, "Traffic Counts")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if resp.Data.Count != 2 {
		t.Fatalf("expected 2 matches, got %d", resp.Data.Count)
	}

	empty, err := module.Handler.SearchDataItemsHandler(ctx, "no such phrase")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if empty.Data.Count != 0 {
		t.Fatalf("expected no matches, got %d", empty.Data.Count)
	}
}

func TestRegistryServiceFilterByDataFormat(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	csv := validDataItemRequest()
	csv.DataFormat = "csv"
	parquet := validDataItemRequest()
	parquet.DataFormat = "parquet"

	if _, err := module.Handler.AddDataItemHandler(ctx, "seller_1", csv); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := module.Handler.AddDataItemHandler(ctx, "seller_1", parquet); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	resp, err := module.Handler.FilterDataItemsHandler(ctx, "parquet")
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if resp.Data.Count != 1 || resp.Data.Items[0].DataFormat != "parquet" {
		t.Fatalf("expected only the parquet item, got %+v", resp.Data.Items)
	}
}

func TestRegistryServicePagination(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := module.Handler.AddDataItemHandler(ctx, "seller_1", validDataItemRequest()); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	initial, err := module.Handler.InitialDataItemsHandler(ctx)
	if err != nil {
		t.Fatalf("initial page failed: %v", err)
	}
	if initial.Data.Count != 2 {
		t.Fatalf("expected cold-start page of 2, got %d", initial.Data.Count)
	}

	more, err := module.Handler.MoreDataItemsHandler(ctx, 2, 2)
	if err != nil {
		t.Fatalf("more page failed: %v", err)
	}
	if more.Data.Count != 2 {
		t.Fatalf("expected page of 2, got %d", more.Data.Count)
	}
	if more.Data.Items[0].ItemID == initial.Data.Items[0].ItemID {
		t.Fatalf("pages overlap")
	}

	tail, err := module.Handler.MoreDataItemsHandler(ctx, 4, 10)
	if err != nil {
		t.Fatalf("tail page failed: %v", err)
	}
	if tail.Data.Count != 1 {
		t.Fatalf("expected clamped tail of 1, got %d", tail.Data.Count)
	}

	beyond, err := module.Handler.MoreDataItemsHandler(ctx, 50, 10)
	if err != nil {
		t.Fatalf("out-of-range page failed: %v", err)
	}
	if beyond.Data.Count != 0 {
		t.Fatalf("expected empty page beyond range, got %d", beyond.Data.Count)
	}
}

func TestRegistryServicePurchaserLifecycle(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	created, err := module.Handler.AddPurchaserHandler(ctx, "buyer_1", validPurchaserRequest())
	if err != nil {
		t.Fatalf("add purchaser failed: %v", err)
	}
	if created.Data.Owner != "buyer_1" {
		t.Fatalf("expected owner from caller identity, got %q", created.Data.Owner)
	}
	if created.Data.PurchasedItems == nil || len(created.Data.PurchasedItems) != 0 {
		t.Fatalf("expected empty purchase history on registration, got %v", created.Data.PurchasedItems)
	}

	update := validPurchaserRequest()
	update.Name = "Acme Analytics Ltd"
	updated, err := module.Handler.UpdatePurchaserHandler(ctx, "buyer_1", created.Data.PurchaserID, update)
	if err != nil {
		t.Fatalf("update purchaser failed: %v", err)
	}
	if updated.Data.Name != "Acme Analytics Ltd" || updated.Data.Owner != "buyer_1" {
		t.Fatalf("update applied incorrectly: %+v", updated.Data)
	}

	deleted, err := module.Handler.DeletePurchaserHandler(ctx, "buyer_1", created.Data.PurchaserID)
	if err != nil {
		t.Fatalf("delete purchaser failed: %v", err)
	}
	if deleted.Data.DeletedID != created.Data.PurchaserID {
		t.Fatalf("expected deleted id %q, got %q", created.Data.PurchaserID, deleted.Data.DeletedID)
	}
}

func TestRegistryServicePurchaseRecordingFlow(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	item, err := module.Handler.AddDataItemHandler(ctx, "seller_1", validDataItemRequest())
	if err != nil {
		t.Fatalf("add data item failed: %v", err)
	}
	purchaser, err := module.Handler.AddPurchaserHandler(ctx, "buyer_1", validPurchaserRequest())
	if err != nil {
		t.Fatalf("add purchaser failed: %v", err)
	}

	recorded, err := module.Handler.AddPurchasedItemHandler(ctx, "buyer_1", purchaser.Data.PurchaserID, httptransport.AddPurchasedItemRequest{
		ItemID: item.Data.ItemID,
	})
	if err != nil {
		t.Fatalf("record purchase failed: %v", err)
	}
	if len(recorded.Data.PurchasedItems) != 1 || recorded.Data.PurchasedItems[0] != item.Data.ItemID {
		t.Fatalf("purchase not recorded: %v", recorded.Data.PurchasedItems)
	}

	// Recording the same item twice appends again; the history is a log, not a set.
	again, err := module.Handler.AddPurchasedItemHandler(ctx, "buyer_1", purchaser.Data.PurchaserID, httptransport.AddPurchasedItemRequest{
		ItemID: item.Data.ItemID,
	})
	if err != nil {
		t.Fatalf("second record purchase failed: %v", err)
	}
	if len(again.Data.PurchasedItems) != 2 {
		t.Fatalf("expected duplicate entry kept, got %v", again.Data.PurchasedItems)
	}

	_, err = module.Handler.AddPurchasedItemHandler(ctx, "buyer_2", purchaser.Data.PurchaserID, httptransport.AddPurchasedItemRequest{
		ItemID: item.Data.ItemID,
	})
	if !errors.Is(err, domainerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure for non-owner, got %v", err)
	}

	_, err = module.Handler.AddPurchasedItemHandler(ctx, "buyer_1", purchaser.Data.PurchaserID, httptransport.AddPurchasedItemRequest{
		ItemID: "not-a-uuid",
	})
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload for malformed item id, got %v", err)
	}
}

func TestRegistryServicePurchaserValidation(t *testing.T) {
	module := registryservice.NewInMemoryModule(nil)
	ctx := context.Background()

	_, err := module.Handler.AddPurchaserHandler(ctx, "buyer_1", httptransport.PurchaserPayloadRequest{
		Name: "Acme",
	})
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload, got %v", err)
	}
	violations := domainerrors.ViolationsOf(err)
	if len(violations) != 2 {
		t.Fatalf("expected message and price violations together, got %v", violations)
	}

	_, err = module.Handler.AddPurchaserHandler(ctx, "buyer_1", httptransport.PurchaserPayloadRequest{})
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found for empty payload, got %v", err)
	}
}

// steppedClock hands out strictly increasing timestamps so creation order is
// unambiguous even when inserts land within the same wall-clock instant.
type steppedClock struct {
	now time.Time
}

func (c *steppedClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func TestRegistryServiceListsAreCreationOrdered(t *testing.T) {
	store := memory.NewStore()
	module := registryservice.NewModule(registryservice.Dependencies{
		Items:      store,
		Purchasers: store,
		Clock:      &steppedClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)},
		IDs:        store,
	})
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		created, err := module.Handler.AddDataItemHandler(ctx, "seller_1", validDataItemRequest())
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		ids = append(ids, created.Data.ItemID)
	}

	listed, err := module.Handler.ListDataItemsHandler(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if listed.Data.Count != 3 {
		t.Fatalf("expected 3 records, got %d", listed.Data.Count)
	}
	for i, id := range ids {
		if listed.Data.Items[i].ItemID != id {
			t.Fatalf("position %d: expected %q, got %q", i, id, listed.Data.Items[i].ItemID)
		}
	}
}
