package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	admindomain "github.com/rickygarrix/otonavi-sub000/internal/admin/domain"
)

// MaxGalleryImagesPerStore は1店舗あたりのギャラリー画像上限。
const MaxGalleryImagesPerStore = 20

// galleryService implements GalleryService.
type galleryService struct {
	repo GalleryRepository
}

func NewGalleryService(repo GalleryRepository) GalleryService {
	return &galleryService{repo: repo}
}

func (s *galleryService) Upsert(ctx context.Context, storeID string, images []admindomain.GalleryImageInput) error {
	if _, err := uuid.Parse(storeID); err != nil {
		return fmt.Errorf("店舗 ID の形式が不正です: %s", storeID)
	}
	validated, err := admindomain.NewGalleryImages(images, MaxGalleryImagesPerStore)
	if err != nil {
		return err
	}
	if len(validated) == 0 {
		return fmt.Errorf("画像を1件以上指定してください")
	}
	return s.repo.Upsert(ctx, storeID, validated)
}

func (s *galleryService) BulkUpsert(ctx context.Context, entries []GalleryBulkCommand) error {
	if len(entries) == 0 {
		return fmt.Errorf("登録対象が空です")
	}

	bulk := make([]admindomain.GalleryBulkEntry, 0, len(entries))
	for _, entry := range entries {
		if _, err := uuid.Parse(entry.StoreID); err != nil {
			return fmt.Errorf("店舗 ID の形式が不正です: %s", entry.StoreID)
		}
		validated, err := admindomain.NewGalleryImages(entry.Images, MaxGalleryImagesPerStore)
		if err != nil {
			return fmt.Errorf("store=%s: %w", entry.StoreID, err)
		}
		if len(validated) == 0 {
			continue
		}
		bulk = append(bulk, admindomain.GalleryBulkEntry{StoreID: entry.StoreID, Images: validated})
	}
	if len(bulk) == 0 {
		return fmt.Errorf("有効な画像がありません")
	}
	return s.repo.BulkUpsert(ctx, bulk)
}
