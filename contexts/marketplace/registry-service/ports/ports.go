package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// DataItem is a seller's listing. Seller is set at creation and never
// rewritten by updates.
type DataItem struct {
	ID            string
	Seller        string
	Title         string
	Description   string
	Price         uint64
	AttachmentURL string
	DataFormat    string
	Status        string
	Quality       string
	Rating        uint32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Purchaser is a buyer profile. PurchasedItems grows only by append and may
// reference data item ids that no longer exist.
type Purchaser struct {
	ID             string
	Owner          string
	Name           string
	Price          uint64
	Message        string
	PurchasedItems []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type DataItemPayload struct {
	Title         string
	Description   string
	Price         uint64
	AttachmentURL string
	DataFormat    string
	Status        string
	Quality       string
	Rating        uint32
}

type PurchaserPayload struct {
	Name    string
	Price   uint64
	Message string
}

// DataItemRepository is the data item record store. ListDataItems returns
// records in creation-time order (oldest first, ties broken by id); every
// adapter enforces the same order so pagination stays deterministic.
type DataItemRepository interface {
	GetDataItem(ctx context.Context, id string) (DataItem, bool, error)
	PutDataItem(ctx context.Context, item DataItem) error
	RemoveDataItem(ctx context.Context, id string) (DataItem, bool, error)
	ListDataItems(ctx context.Context) ([]DataItem, error)
}

// PurchaserRepository is the purchaser record store. Same ordering contract
// as DataItemRepository.
type PurchaserRepository interface {
	GetPurchaser(ctx context.Context, id string) (Purchaser, bool, error)
	PutPurchaser(ctx context.Context, purchaser Purchaser) error
	RemovePurchaser(ctx context.Context, id string) (Purchaser, bool, error)
	ListPurchasers(ctx context.Context) ([]Purchaser, error)
}

// EventEnvelope is the change-feed record emitted after each committed
// mutation. Consumers must treat it as informational: the store is the source
// of truth.
type EventEnvelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Actor         string    `json:"actor"`
	OccurredAtUTC time.Time `json:"occurred_at_utc"`
}

// EventPublisher delivers change-feed events. Publishing is best effort:
// failures are logged, never surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
