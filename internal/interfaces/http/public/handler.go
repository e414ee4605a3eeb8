package public

import (
	"log"

	"github.com/go-chi/chi/v5"

	publicapp "github.com/rickygarrix/otonavi-sub000/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger       *log.Logger
	storeQueries publicapp.StoreQueryService
	masterData   publicapp.MasterDataService
	inquiries    publicapp.InquiryService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger       *log.Logger
	StoreQueries publicapp.StoreQueryService
	MasterData   publicapp.MasterDataService
	Inquiries    publicapp.InquiryService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:       cfg.Logger,
		storeQueries: cfg.StoreQueries,
		masterData:   cfg.MasterData,
		inquiries:    cfg.Inquiries,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/search", h.storeSearchHandler())
	r.Get("/stores/{slug}", h.storeDetailHandler())
	r.Get("/filters/metadata", h.filterMetadataHandler())
	r.Post("/contact", h.contactHandler())
}
