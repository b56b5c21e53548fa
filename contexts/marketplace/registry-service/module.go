package registryservice

import (
	"log/slog"

	httpadapter "databazaar/contexts/marketplace/registry-service/adapters/http"
	"databazaar/contexts/marketplace/registry-service/adapters/memory"
	"databazaar/contexts/marketplace/registry-service/application"
	"databazaar/contexts/marketplace/registry-service/ports"
)

// Module is the composition surface of the registry service. Runtime wiring
// should consume Handler; Store is exposed for tests/inspection.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Items      ports.DataItemRepository
	Purchasers ports.PurchaserRepository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Events     ports.EventPublisher
	Logger     *slog.Logger
}

// NewModule wires the registry service against explicit ports. Events may be
// nil, which disables the change feed.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Items:      deps.Items,
		Purchasers: deps.Purchasers,
		Clock:      deps.Clock,
		IDs:        deps.IDs,
		Events:     deps.Events,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
		},
	}
}

// NewInMemoryModule wires the registry service against in-memory record
// stores. Used by tests and as the developer bootstrap path.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Items:      store,
		Purchasers: store,
		Clock:      store,
		IDs:        store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
