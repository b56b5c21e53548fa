package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "databazaar/contexts/marketplace/registry-service/domain/errors"
	"databazaar/contexts/marketplace/registry-service/ports"
)

// initialPageSize is the cold-start page served by InitialDataItems.
const initialPageSize = 2

// Service is the public operation surface of the registry. Every mutating
// operation takes the caller principal explicitly and compares it against the
// stored owner/seller; the store itself has no ownership semantics.
type Service struct {
	Items      ports.DataItemRepository
	Purchasers ports.PurchaserRepository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Events     ports.EventPublisher
	Logger     *slog.Logger
}

// Change-feed topics. One per record collection.
const (
	TopicDataItems  = "registry.data-items"
	TopicPurchasers = "registry.purchasers"
)

// publish emits a change-feed event after a committed mutation. Best effort:
// a nil publisher disables the feed and publish failures only log.
func (s Service) publish(ctx context.Context, topic string, eventType string, entityType string, entityID string, actor string) {
	if s.Events == nil {
		return
	}
	eventID, err := s.IDs.NewID(ctx)
	if err != nil {
		eventID = entityID
	}
	err = s.Events.Publish(ctx, topic, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		EntityType:    entityType,
		EntityID:      entityID,
		Actor:         actor,
		OccurredAtUTC: s.now(),
	})
	if err != nil {
		ResolveLogger(s.Logger).Warn("change-feed publish failed",
			"event", "registry_event_publish_failed",
			"module", "marketplace/registry-service",
			"layer", "application",
			"topic", topic,
			"event_type", eventType,
			"error", err,
		)
	}
}

func (s Service) ListDataItems(ctx context.Context) ([]ports.DataItem, error) {
	return s.Items.ListDataItems(ctx)
}

func (s Service) GetDataItem(ctx context.Context, id string) (ports.DataItem, error) {
	if !isCanonicalID(id) {
		return ports.DataItem{}, &domainerrors.PayloadError{
			Violations: []string{"id is not a canonical identifier"},
		}
	}
	item, found, err := s.Items.GetDataItem(ctx, id)
	if err != nil {
		return ports.DataItem{}, err
	}
	if !found {
		return ports.DataItem{}, domainerrors.ErrNotFound
	}
	return item, nil
}

func (s Service) AddDataItem(ctx context.Context, caller string, payload ports.DataItemPayload) (ports.DataItem, error) {
	if payload == (ports.DataItemPayload{}) {
		return ports.DataItem{}, domainerrors.ErrNotFound
	}
	if violations := validateDataItemPayload(payload); len(violations) > 0 {
		return ports.DataItem{}, &domainerrors.PayloadError{Violations: violations}
	}

	id, err := s.IDs.NewID(ctx)
	if err != nil {
		return ports.DataItem{}, err
	}
	now := s.now()
	item := ports.DataItem{
		ID:            id,
		Seller:        caller,
		Title:         payload.Title,
		Description:   payload.Description,
		Price:         payload.Price,
		AttachmentURL: payload.AttachmentURL,
		DataFormat:    payload.DataFormat,
		Status:        payload.Status,
		Quality:       payload.Quality,
		Rating:        payload.Rating,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Items.PutDataItem(ctx, item); err != nil {
		return ports.DataItem{}, err
	}

	ResolveLogger(s.Logger).Debug("data item listed",
		"event", "registry_data_item_listed",
		"module", "marketplace/registry-service",
		"layer", "application",
		"item_id", item.ID,
	)
	s.publish(ctx, TopicDataItems, "data_item_listed", "data_item", item.ID, caller)
	return item, nil
}

func (s Service) UpdateDataItem(ctx context.Context, caller string, id string, payload ports.DataItemPayload) (ports.DataItem, error) {
	if !isCanonicalID(id) {
		return ports.DataItem{}, &domainerrors.PayloadError{
			Violations: []string{"id is not a canonical identifier"},
		}
	}
	if violations := validateDataItemPayload(payload); len(violations) > 0 {
		return ports.DataItem{}, &domainerrors.PayloadError{Violations: violations}
	}

	existing, found, err := s.Items.GetDataItem(ctx, id)
	if err != nil {
		return ports.DataItem{}, err
	}
	if !found {
		return ports.DataItem{}, domainerrors.ErrNotFound
	}
	if existing.Seller != caller {
		return ports.DataItem{}, domainerrors.ErrAuthenticationFailed
	}

	// Payload fields overwrite the record; id, seller and creation time are
	// preserved.
	updated := existing
	updated.Title = payload.Title
	updated.Description = payload.Description
	updated.Price = payload.Price
	updated.AttachmentURL = payload.AttachmentURL
	updated.DataFormat = payload.DataFormat
	updated.Status = payload.Status
	updated.Quality = payload.Quality
	updated.Rating = payload.Rating
	updated.UpdatedAt = s.now()

	if err := s.Items.PutDataItem(ctx, updated); err != nil {
		return ports.DataItem{}, err
	}
	s.publish(ctx, TopicDataItems, "data_item_updated", "data_item", id, caller)
	return updated, nil
}

func (s Service) DeleteDataItem(ctx context.Context, caller string, id string) (string, error) {
	if !isCanonicalID(id) {
		return "", &domainerrors.PayloadError{
			Violations: []string{"id is not a canonical identifier"},
		}
	}
	existing, found, err := s.Items.GetDataItem(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", domainerrors.ErrNotFound
	}
	if existing.Seller != caller {
		return "", domainerrors.ErrAuthenticationFailed
	}
	if _, _, err := s.Items.RemoveDataItem(ctx, id); err != nil {
		return "", err
	}

	ResolveLogger(s.Logger).Debug("data item removed",
		"event", "registry_data_item_removed",
		"module", "marketplace/registry-service",
		"layer", "application",
		"item_id", id,
	)
	s.publish(ctx, TopicDataItems, "data_item_removed", "data_item", id, caller)
	return id, nil
}

// SearchDataItems matches the query case-insensitively against title or
// description. An empty query matches everything.
func (s Service) SearchDataItems(ctx context.Context, query string) ([]ports.DataItem, error) {
	items, err := s.Items.ListDataItems(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	matches := make([]ports.DataItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// FilterDataItems matches the query case-insensitively against the data
// format tag.
func (s Service) FilterDataItems(ctx context.Context, query string) ([]ports.DataItem, error) {
	items, err := s.Items.ListDataItems(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	matches := make([]ports.DataItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.DataFormat), needle) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// InitialDataItems serves the cold-start page: the first two records in store
// order.
func (s Service) InitialDataItems(ctx context.Context) ([]ports.DataItem, error) {
	return s.MoreDataItems(ctx, 0, initialPageSize)
}

// MoreDataItems returns up to limit records starting at offset start, clamped
// to the available range. Out-of-range offsets yield an empty slice, never an
// error.
func (s Service) MoreDataItems(ctx context.Context, start uint, limit uint) ([]ports.DataItem, error) {
	items, err := s.Items.ListDataItems(ctx)
	if err != nil {
		return nil, err
	}
	total := uint(len(items))
	if start >= total {
		return []ports.DataItem{}, nil
	}
	// Clamp via the remaining count; start+limit could wrap around.
	if remaining := total - start; limit > remaining {
		limit = remaining
	}
	return items[start : start+limit], nil
}

func (s Service) ListPurchasers(ctx context.Context) ([]ports.Purchaser, error) {
	return s.Purchasers.ListPurchasers(ctx)
}

func (s Service) GetPurchaser(ctx context.Context, id string) (ports.Purchaser, error) {
	if !isCanonicalID(id) {
		return ports.Purchaser{}, &domainerrors.PayloadError{
			Violations: []string{"id is not a canonical identifier"},
		}
	}
	purchaser, found, err := s.Purchasers.GetPurchaser(ctx, id)
	if err != nil {
		return ports.Purchaser{}, err
	}
	if !found {
		return ports.Purchaser{}, domainerrors.ErrNotFound
	}
	return purchaser, nil
}

func (s Service) AddPurchaser(ctx context.Context, caller string, payload ports.PurchaserPayload) (ports.Purchaser, error) {
	if payload == (ports.PurchaserPayload{}) {
		return ports.Purchaser{}, domainerrors.ErrNotFound
	}
	if violations := validatePurchaserPayload(payload); len(violations) > 0 {
		return ports.Purchaser{}, &domainerrors.PayloadError{Violations: violations}
	}

	id, err := s.IDs.NewID(ctx)
	if err != nil {
		return ports.Purchaser{}, err
	}
	now := s.now()
	purchaser := ports.Purchaser{
		ID:             id,
		Owner:          caller,
		Name:           payload.Name,
		Price:          payload.Price,
		Message:        payload.Message,
		PurchasedItems: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Purchasers.PutPurchaser(ctx, purchaser); err != nil {
		return ports.Purchaser{}, err
	}

	ResolveLogger(s.Logger).Debug("purchaser registered",
		"event", "registry_purchaser_registered",
		"module", "marketplace/registry-service",
		"layer", "application",
		"purchaser_id", purchaser.ID,
	)
	s.publish(ctx, TopicPurchasers, "purchaser_registered", "purchaser", purchaser.ID, caller)
	return purchaser, nil
}

func (s Service) UpdatePurchaser(ctx context.Context, caller string, id string, payload ports.PurchaserPayload) (ports.Purchaser, error) {
	if !isCanonicalID(id) {
		return ports.Purchaser{}, &domainerrors.PayloadError{
			Violations: []string{"id is not a canonical identifier"},
		}
	}
	if violations := validatePurchaserPayload(payload); len(violations) > 0 {
		return ports.Purchaser{}, &domainerrors.PayloadError{Violations: violations}
	}

	existing, found, err := s.Purchasers.GetPurchaser(ctx, id)
	if err != nil {
		return ports.Purchaser{}, err
	}
	if !found {
		return ports.Purchaser{}, domainerrors.ErrNotFound
	}
	if existing.Owner != caller {
		return ports.Purchaser{}, domainerrors.ErrAuthenticationFailed
	}

	updated := existing
	updated.Name = payload.Name
	updated.Price = payload.Price
	updated.Message = payload.Message
	updated.UpdatedAt = s.now()

	if err := s.Purchasers.PutPurchaser(ctx, updated); err != nil {
		return ports.Purchaser{}, err
	}
	s.publish(ctx, TopicPurchasers, "purchaser_updated", "purchaser", id, caller)
	return updated, nil
}

func (s Service) DeletePurchaser(ctx context.Context, caller string, id string) (string, error) {
	if !isCanonicalID(id) {
		return "", &domainerrors.PayloadError{
			Violations: []string{"id is not a canonical identifier"},
		}
	}
	existing, found, err := s.Purchasers.GetPurchaser(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", domainerrors.ErrNotFound
	}
	if existing.Owner != caller {
		return "", domainerrors.ErrAuthenticationFailed
	}
	if _, _, err := s.Purchasers.RemovePurchaser(ctx, id); err != nil {
		return "", err
	}
	s.publish(ctx, TopicPurchasers, "purchaser_removed", "purchaser", id, caller)
	return id, nil
}

// AddPurchasedItem appends itemID to the purchaser's purchase history. The
// item id is format-checked only: no duplicate check and no existence check
// against the data item store.
func (s Service) AddPurchasedItem(ctx context.Context, caller string, purchaserID string, itemID string) (ports.Purchaser, error) {
	var violations []string
	if !isCanonicalID(purchaserID) {
		violations = append(violations, "purchaser id is not a canonical identifier")
	}
	if !isCanonicalID(itemID) {
		violations = append(violations, "item id is not a canonical identifier")
	}
	if len(violations) > 0 {
		return ports.Purchaser{}, &domainerrors.PayloadError{Violations: violations}
	}

	existing, found, err := s.Purchasers.GetPurchaser(ctx, purchaserID)
	if err != nil {
		return ports.Purchaser{}, err
	}
	if !found {
		return ports.Purchaser{}, domainerrors.ErrNotFound
	}
	if existing.Owner != caller {
		return ports.Purchaser{}, domainerrors.ErrAuthenticationFailed
	}

	updated := existing
	updated.PurchasedItems = append(append([]string(nil), existing.PurchasedItems...), itemID)
	updated.UpdatedAt = s.now()

	if err := s.Purchasers.PutPurchaser(ctx, updated); err != nil {
		return ports.Purchaser{}, err
	}

	ResolveLogger(s.Logger).Debug("purchase recorded",
		"event", "registry_purchase_recorded",
		"module", "marketplace/registry-service",
		"layer", "application",
		"purchaser_id", purchaserID,
		"item_id", itemID,
	)
	s.publish(ctx, TopicPurchasers, "purchase_recorded", "purchaser", purchaserID, caller)
	return updated, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
