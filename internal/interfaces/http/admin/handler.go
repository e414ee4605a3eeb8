package admin

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/rickygarrix/otonavi-sub000/internal/admin/application"
)

// StorageProvisioner は店舗用のストレージ領域を確保する外部ゲートウェイ。
type StorageProvisioner interface {
	EnsureStoreFolder(ctx context.Context, storeID string) (string, error)
}

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger         *log.Logger
	storeService   adminapp.StoreService
	galleryService adminapp.GalleryService
	storage        StorageProvisioner
}

// Config provides dependencies for Handler.
type Config struct {
	Logger         *log.Logger
	StoreService   adminapp.StoreService
	GalleryService adminapp.GalleryService
	Storage        StorageProvisioner
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:         cfg.Logger,
		storeService:   cfg.StoreService,
		galleryService: cfg.GalleryService,
		storage:        cfg.Storage,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/{id}", h.storeDetailHandler())
	r.Post("/stores", h.storeActionHandler())
	r.Post("/storage", h.storageActionHandler())
}
