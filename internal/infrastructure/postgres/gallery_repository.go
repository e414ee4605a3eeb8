package postgres

import (
	"context"
	"database/sql"

	"github.com/rickygarrix/otonavi-sub000/internal/admin/application"
	admindomain "github.com/rickygarrix/otonavi-sub000/internal/admin/domain"
)

// 一括登録時に既存行の sort_order を逃がすためのオフセット。
// 新しい並び順と既存行が衝突しない程度に大きければよい。
const gallerySortOrderBump = 10000

const galleryUpsertQuery = "INSERT INTO store_images (store_id, url, sort_order, created_at, updated_at) VALUES ($1, $2, $3, now(), now())" +
	" ON CONFLICT (store_id, url) DO UPDATE SET sort_order = EXCLUDED.sort_order, updated_at = now()"

// GalleryRepository は店舗ギャラリー画像の書き込みを担う。
type GalleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// Upsert は1店舗分の画像を (store_id, url) 一意キーで登録・更新する。
func (r *GalleryRepository) Upsert(ctx context.Context, storeID string, images []admindomain.GalleryImage) error {
	for _, image := range images {
		if _, err := r.db.ExecContext(ctx, galleryUpsertQuery, storeID, image.URL.String(), image.SortOrder); err != nil {
			return application.NewStepError("store_images:upsert", err)
		}
	}
	return nil
}

// BulkUpsert は複数店舗の画像をまとめて登録する。先に対象店舗の既存行の
// sort_order をストアドでまとめて底上げし、その後に新しい並び順で upsert する。
// 底上げだけ成功して後続が失敗した場合、既存行はずれた sort_order のまま残る。
func (r *GalleryRepository) BulkUpsert(ctx context.Context, entries []admindomain.GalleryBulkEntry) error {
	for _, entry := range entries {
		if _, err := r.db.ExecContext(ctx, "SELECT bump_store_gallery_sort_orders($1, $2)", entry.StoreID, gallerySortOrderBump); err != nil {
			return application.NewStepError("store_images:bump", err)
		}
	}
	for _, entry := range entries {
		for _, image := range entry.Images {
			if _, err := r.db.ExecContext(ctx, galleryUpsertQuery, entry.StoreID, image.URL.String(), image.SortOrder); err != nil {
				return application.NewStepError("store_images:bulk_upsert", err)
			}
		}
	}
	return nil
}
