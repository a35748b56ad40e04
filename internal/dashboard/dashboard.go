package dashboard

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/beauty-advisor/internal/advisor"
	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/transcript"
)

// Config wires the dashboard to the advisor.
type Config struct {
	Catalog *catalog.Catalog
	// CatalogErr is the load failure, if any. The dashboard keeps serving
	// with an empty catalog and reports the failure on /api/catalog.
	CatalogErr error
	Registry   *advisor.Registry
	Service    *advisor.Service
	// Archive serves archived transcripts. Optional.
	Archive *transcript.Store
	Logger  *zap.Logger
	// SecureCookie marks the session cookie Secure.
	SecureCookie bool
}

// Dashboard provides the product picker, the chat and the routine builder.
type Dashboard struct {
	catalog      *catalog.Catalog
	catalogErr   error
	registry     *advisor.Registry
	service      *advisor.Service
	archive      *transcript.Store
	logger       *zap.Logger
	secureCookie bool
}

// New creates a new Dashboard.
func New(cfg Config) *Dashboard {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		catalog:      cfg.Catalog,
		catalogErr:   cfg.CatalogErr,
		registry:     cfg.Registry,
		service:      cfg.Service,
		archive:      cfg.Archive,
		logger:       logger,
		secureCookie: cfg.SecureCookie,
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", d.handleCatalog)
		r.Get("/categories", d.handleCategories)
		r.Get("/suggestions", d.handleSuggestions)
		r.Get("/products/{id}", d.handleProduct)

		r.Get("/view", d.handleView)
		r.Put("/view/category", d.handleSetCategory)
		r.Put("/view/search", d.handleSetSearch)

		r.Post("/selection/{id}", d.handleSelect)
		r.Delete("/selection/{id}", d.handleDeselect)
		r.Delete("/selection", d.handleClearSelection)

		r.Post("/chat", d.handleChat)
		r.Post("/routine", d.handleRoutine)
		r.Get("/transcript", d.handleTranscript)
		r.Get("/sessions", d.handleListSessions)
		r.Get("/sessions/{id}/messages", d.handleSessionMessages)
	})

	r.Get("/ws/chat", d.handleWebSocket)
}
