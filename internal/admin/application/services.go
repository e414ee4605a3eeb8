package application

import (
	"context"

	admindomain "github.com/rickygarrix/otonavi-sub000/internal/admin/domain"
)

// StoreRepository は管理コンテキストで店舗を読み書きするためのポート。
type StoreRepository interface {
	Find(ctx context.Context, filter StoreFilter, paging Paging) ([]admindomain.StoreRecord, error)
	FindByID(ctx context.Context, id string) (*admindomain.StoreRecord, error)
	Insert(ctx context.Context, store *admindomain.StoreRecord) error
	Upsert(ctx context.Context, store *admindomain.StoreRecord) error
}

// GalleryRepository はギャラリー画像の書き込みポート。
type GalleryRepository interface {
	Upsert(ctx context.Context, storeID string, images []admindomain.GalleryImage) error
	BulkUpsert(ctx context.Context, entries []admindomain.GalleryBulkEntry) error
}

// StoreFilter は管理画面の店舗検索条件。
type StoreFilter struct {
	PrefectureID *int64
	Keyword      string
	StatusKey    string
}

// Paging はページング指定。
type Paging struct {
	Limit int
}

// StoreService は管理コンテキストの店舗ユースケースを提供する。
type StoreService interface {
	List(ctx context.Context, filter StoreFilter, paging Paging) ([]admindomain.StoreRecord, error)
	Detail(ctx context.Context, id string) (*admindomain.StoreRecord, error)
	Insert(ctx context.Context, cmd UpsertStoreCommand) (*admindomain.StoreRecord, error)
	Upsert(ctx context.Context, cmd UpsertStoreCommand) (*admindomain.StoreRecord, error)
}

// GalleryService はギャラリー画像のユースケースを提供する。
type GalleryService interface {
	Upsert(ctx context.Context, storeID string, images []admindomain.GalleryImageInput) error
	BulkUpsert(ctx context.Context, entries []GalleryBulkCommand) error
}

// UpsertStoreCommand は店舗の新規登録・更新の入力。
// RelationIDs はファセットテーブル名→定義 ID 配列。渡されたテーブルは
// 全置換同期の対象になり、省略されたテーブルは触らない。
type UpsertStoreCommand struct {
	ID            string
	Slug          string
	Name          string
	Kana          string
	StatusKey     string
	Description   string
	Access        string
	Address       string
	BusinessHours string

	PrefectureID *int64
	CityID       *int64
	VenueTypeID  *int64
	PriceRangeID *int64
	StoreSizeID  *int64

	RelationIDs map[string][]int64
}

// GalleryBulkCommand は一括ギャラリー登録1店舗分の入力。
type GalleryBulkCommand struct {
	StoreID string
	Images  []admindomain.GalleryImageInput
}
