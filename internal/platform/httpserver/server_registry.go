package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	registryerrors "databazaar/contexts/marketplace/registry-service/domain/errors"
	registryhttp "databazaar/contexts/marketplace/registry-service/transport/http"
)

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registryerrors.ErrNotFound):
		writeRegistryError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, registryerrors.ErrInvalidPayload):
		writeJSON(w, http.StatusBadRequest, registryhttp.ErrorResponse{
			Code:       "invalid_payload",
			Message:    err.Error(),
			Violations: registryerrors.ViolationsOf(err),
		})
	case errors.Is(err, registryerrors.ErrAuthenticationFailed):
		writeRegistryError(w, http.StatusForbidden, "authentication_failed", err.Error())
	case errors.Is(err, registryerrors.ErrPaymentFailed):
		writeRegistryError(w, http.StatusPaymentRequired, "payment_failed", err.Error())
	case errors.Is(err, registryerrors.ErrPaymentCompleted):
		writeRegistryError(w, http.StatusConflict, "payment_completed", err.Error())
	default:
		writeRegistryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requireRegistryUser resolves the caller principal. The identity is opaque:
// it is compared for equality against stored owner/seller fields, never
// parsed.
func requireRegistryUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeRegistryError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleListDataItems(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.ListDataItemsHandler(r.Context())
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDataItem(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetDataItemHandler(r.Context(), r.PathValue("item_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddDataItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRegistryUser(w, r)
	if !ok {
		return
	}
	var req registryhttp.DataItemPayloadRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.registry.Handler.AddDataItemHandler(r.Context(), caller, req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateDataItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRegistryUser(w, r)
	if !ok {
		return
	}
	var req registryhttp.DataItemPayloadRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.registry.Handler.UpdateDataItemHandler(r.Context(), caller, r.PathValue("item_id"), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteDataItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRegistryUser(w, r)
	if !ok {
		return
	}
	resp, err := s.registry.Handler.DeleteDataItemHandler(r.Context(), caller, r.PathValue("item_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchDataItems(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.SearchDataItemsHandler(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFilterDataItems(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.FilterDataItemsHandler(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInitialDataItems(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.InitialDataItemsHandler(r.Context())
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMoreDataItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, ok := parsePageParam(w, query.Get("start"), "start")
	if !ok {
		return
	}
	limit, ok := parsePageParam(w, query.Get("limit"), "limit")
	if !ok {
		return
	}
	resp, err := s.registry.Handler.MoreDataItemsHandler(r.Context(), start, limit)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parsePageParam(w http.ResponseWriter, raw string, name string) (uint, bool) {
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_"+name, name+" must be an unsigned integer")
		return 0, false
	}
	return uint(value), true
}

func (s *Server) handleListPurchasers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.ListPurchasersHandler(r.Context())
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPurchaser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetPurchaserHandler(r.Context(), r.PathValue("purchaser_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddPurchaser(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRegistryUser(w, r)
	if !ok {
		return
	}
	var req registryhttp.PurchaserPayloadRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.registry.Handler.AddPurchaserHandler(r.Context(), caller, req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdatePurchaser(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRegistryUser(w, r)
	if !ok {
		return
	}
	var req registryhttp.PurchaserPayloadRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.registry.Handler.UpdatePurchaserHandler(r.Context(), caller, r.PathValue("purchaser_id"), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePurchaser(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRegistryUser(w, r)
	if !ok {
		return
	}
	resp, err := s.registry.Handler.DeletePurchaserHandler(r.Context(), caller, r.PathValue("purchaser_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddPurchasedItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRegistryUser(w, r)
	if !ok {
		return
	}
	var req registryhttp.AddPurchasedItemRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.registry.Handler.AddPurchasedItemHandler(r.Context(), caller, r.PathValue("purchaser_id"), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
