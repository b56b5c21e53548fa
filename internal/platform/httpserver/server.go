package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	registryservice "databazaar/contexts/marketplace/registry-service"
	registryhttp "databazaar/contexts/marketplace/registry-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "databazaar/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	registry registryservice.Module
}

func New(registry registryservice.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		registry: registry,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /v1/registry/data-items", s.handleListDataItems)
	s.mux.HandleFunc("GET /v1/registry/data-items/search", s.handleSearchDataItems)
	s.mux.HandleFunc("GET /v1/registry/data-items/filter", s.handleFilterDataItems)
	s.mux.HandleFunc("GET /v1/registry/data-items/initial", s.handleInitialDataItems)
	s.mux.HandleFunc("GET /v1/registry/data-items/more", s.handleMoreDataItems)
	s.mux.HandleFunc("GET /v1/registry/data-items/{item_id}", s.handleGetDataItem)
	s.mux.HandleFunc("POST /v1/registry/data-items", s.handleAddDataItem)
	s.mux.HandleFunc("PUT /v1/registry/data-items/{item_id}", s.handleUpdateDataItem)
	s.mux.HandleFunc("DELETE /v1/registry/data-items/{item_id}", s.handleDeleteDataItem)

	s.mux.HandleFunc("GET /v1/registry/purchasers", s.handleListPurchasers)
	s.mux.HandleFunc("GET /v1/registry/purchasers/{purchaser_id}", s.handleGetPurchaser)
	s.mux.HandleFunc("POST /v1/registry/purchasers", s.handleAddPurchaser)
	s.mux.HandleFunc("PUT /v1/registry/purchasers/{purchaser_id}", s.handleUpdatePurchaser)
	s.mux.HandleFunc("DELETE /v1/registry/purchasers/{purchaser_id}", s.handleDeletePurchaser)
	s.mux.HandleFunc("POST /v1/registry/purchasers/{purchaser_id}/purchases", s.handleAddPurchasedItem)
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRegistryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
