package httpadapter

import (
	"context"
	"time"

	"databazaar/contexts/marketplace/registry-service/application"
	"databazaar/contexts/marketplace/registry-service/ports"
	httptransport "databazaar/contexts/marketplace/registry-service/transport/http"
)

// Handler translates between transport DTOs and the service. Logging happens
// in the application layer; handlers stay pure conversion.
type Handler struct {
	Service application.Service
}

func (h Handler) ListDataItemsHandler(ctx context.Context) (httptransport.ListDataItemsResponse, error) {
	items, err := h.Service.ListDataItems(ctx)
	if err != nil {
		return httptransport.ListDataItemsResponse{}, err
	}
	return toListDataItemsResponse(items), nil
}

func (h Handler) GetDataItemHandler(ctx context.Context, itemID string) (httptransport.DataItemResponse, error) {
	item, err := h.Service.GetDataItem(ctx, itemID)
	if err != nil {
		return httptransport.DataItemResponse{}, err
	}
	return httptransport.DataItemResponse{Status: "success", Data: toDataItemDTO(item)}, nil
}

func (h Handler) AddDataItemHandler(ctx context.Context, caller string, req httptransport.DataItemPayloadRequest) (httptransport.DataItemResponse, error) {
	item, err := h.Service.AddDataItem(ctx, caller, toDataItemPayload(req))
	if err != nil {
		return httptransport.DataItemResponse{}, err
	}
	return httptransport.DataItemResponse{Status: "success", Data: toDataItemDTO(item)}, nil
}

func (h Handler) UpdateDataItemHandler(ctx context.Context, caller string, itemID string, req httptransport.DataItemPayloadRequest) (httptransport.DataItemResponse, error) {
	item, err := h.Service.UpdateDataItem(ctx, caller, itemID, toDataItemPayload(req))
	if err != nil {
		return httptransport.DataItemResponse{}, err
	}
	return httptransport.DataItemResponse{Status: "success", Data: toDataItemDTO(item)}, nil
}

func (h Handler) DeleteDataItemHandler(ctx context.Context, caller string, itemID string) (httptransport.DeleteResponse, error) {
	deletedID, err := h.Service.DeleteDataItem(ctx, caller, itemID)
	if err != nil {
		return httptransport.DeleteResponse{}, err
	}
	resp := httptransport.DeleteResponse{Status: "success"}
	resp.Data.DeletedID = deletedID
	return resp, nil
}

func (h Handler) SearchDataItemsHandler(ctx context.Context, query string) (httptransport.ListDataItemsResponse, error) {
	items, err := h.Service.SearchDataItems(ctx, query)
	if err != nil {
		return httptransport.ListDataItemsResponse{}, err
	}
	return toListDataItemsResponse(items), nil
}

func (h Handler) FilterDataItemsHandler(ctx context.Context, format string) (httptransport.ListDataItemsResponse, error) {
	items, err := h.Service.FilterDataItems(ctx, format)
	if err != nil {
		return httptransport.ListDataItemsResponse{}, err
	}
	return toListDataItemsResponse(items), nil
}

func (h Handler) InitialDataItemsHandler(ctx context.Context) (httptransport.ListDataItemsResponse, error) {
	items, err := h.Service.InitialDataItems(ctx)
	if err != nil {
		return httptransport.ListDataItemsResponse{}, err
	}
	return toListDataItemsResponse(items), nil
}

func (h Handler) MoreDataItemsHandler(ctx context.Context, start uint, limit uint) (httptransport.ListDataItemsResponse, error) {
	items, err := h.Service.MoreDataItems(ctx, start, limit)
	if err != nil {
		return httptransport.ListDataItemsResponse{}, err
	}
	return toListDataItemsResponse(items), nil
}

func (h Handler) ListPurchasersHandler(ctx context.Context) (httptransport.ListPurchasersResponse, error) {
	purchasers, err := h.Service.ListPurchasers(ctx)
	if err != nil {
		return httptransport.ListPurchasersResponse{}, err
	}
	resp := httptransport.ListPurchasersResponse{Status: "success"}
	resp.Data.Purchasers = make([]httptransport.PurchaserDTO, 0, len(purchasers))
	for _, purchaser := range purchasers {
		resp.Data.Purchasers = append(resp.Data.Purchasers, toPurchaserDTO(purchaser))
	}
	resp.Data.Count = len(purchasers)
	return resp, nil
}

func (h Handler) GetPurchaserHandler(ctx context.Context, purchaserID string) (httptransport.PurchaserResponse, error) {
	purchaser, err := h.Service.GetPurchaser(ctx, purchaserID)
	if err != nil {
		return httptransport.PurchaserResponse{}, err
	}
	return httptransport.PurchaserResponse{Status: "success", Data: toPurchaserDTO(purchaser)}, nil
}

func (h Handler) AddPurchaserHandler(ctx context.Context, caller string, req httptransport.PurchaserPayloadRequest) (httptransport.PurchaserResponse, error) {
	purchaser, err := h.Service.AddPurchaser(ctx, caller, toPurchaserPayload(req))
	if err != nil {
		return httptransport.PurchaserResponse{}, err
	}
	return httptransport.PurchaserResponse{Status: "success", Data: toPurchaserDTO(purchaser)}, nil
}

func (h Handler) UpdatePurchaserHandler(ctx context.Context, caller string, purchaserID string, req httptransport.PurchaserPayloadRequest) (httptransport.PurchaserResponse, error) {
	purchaser, err := h.Service.UpdatePurchaser(ctx, caller, purchaserID, toPurchaserPayload(req))
	if err != nil {
		return httptransport.PurchaserResponse{}, err
	}
	return httptransport.PurchaserResponse{Status: "success", Data: toPurchaserDTO(purchaser)}, nil
}

func (h Handler) DeletePurchaserHandler(ctx context.Context, caller string, purchaserID string) (httptransport.DeleteResponse, error) {
	deletedID, err := h.Service.DeletePurchaser(ctx, caller, purchaserID)
	if err != nil {
		return httptransport.DeleteResponse{}, err
	}
	resp := httptransport.DeleteResponse{Status: "success"}
	resp.Data.DeletedID = deletedID
	return resp, nil
}

func (h Handler) AddPurchasedItemHandler(ctx context.Context, caller string, purchaserID string, req httptransport.AddPurchasedItemRequest) (httptransport.PurchaserResponse, error) {
	purchaser, err := h.Service.AddPurchasedItem(ctx, caller, purchaserID, req.ItemID)
	if err != nil {
		return httptransport.PurchaserResponse{}, err
	}
	return httptransport.PurchaserResponse{Status: "success", Data: toPurchaserDTO(purchaser)}, nil
}

func toDataItemPayload(req httptransport.DataItemPayloadRequest) ports.DataItemPayload {
	return ports.DataItemPayload{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		AttachmentURL: req.AttachmentURL,
		DataFormat:    req.DataFormat,
		Status:        req.Status,
		Quality:       req.Quality,
		Rating:        req.Rating,
	}
}

func toPurchaserPayload(req httptransport.PurchaserPayloadRequest) ports.PurchaserPayload {
	return ports.PurchaserPayload{
		Name:    req.Name,
		Price:   req.Price,
		Message: req.Message,
	}
}

func toDataItemDTO(item ports.DataItem) httptransport.DataItemDTO {
	return httptransport.DataItemDTO{
		ItemID:        item.ID,
		Seller:        item.Seller,
		Title:         item.Title,
		Description:   item.Description,
		Price:         item.Price,
		AttachmentURL: item.AttachmentURL,
		DataFormat:    item.DataFormat,
		Status:        item.Status,
		Quality:       item.Quality,
		Rating:        item.Rating,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toPurchaserDTO(purchaser ports.Purchaser) httptransport.PurchaserDTO {
	return httptransport.PurchaserDTO{
		PurchaserID:    purchaser.ID,
		Owner:          purchaser.Owner,
		Name:           purchaser.Name,
		Price:          purchaser.Price,
		Message:        purchaser.Message,
		PurchasedItems: append([]string{}, purchaser.PurchasedItems...),
		CreatedAt:      purchaser.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      purchaser.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toListDataItemsResponse(items []ports.DataItem) httptransport.ListDataItemsResponse {
	resp := httptransport.ListDataItemsResponse{Status: "success"}
	resp.Data.Items = make([]httptransport.DataItemDTO, 0, len(items))
	for _, item := range items {
		resp.Data.Items = append(resp.Data.Items, toDataItemDTO(item))
	}
	resp.Data.Count = len(items)
	return resp
}
