package domain

import "time"

// StoreRecord は管理・インポート経路で扱う店舗集約。
// リレーションはマスタ定義の ID 配列で保持し、表示用のキー/ラベル展開は
// 公開側の正規化に任せる。
type StoreRecord struct {
	ID            string
	Slug          Slug
	Name          string
	Kana          string
	StatusKey     StatusKey
	Description   string
	Access        string
	Address       string
	BusinessHours string

	PrefectureID *int64
	CityID       *int64
	VenueTypeID  *int64
	PriceRangeID *int64
	StoreSizeID  *int64

	// Relations はファセットテーブル名→定義 ID リスト。多対多ファセットのみ持つ。
	Relations map[string][]int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GalleryImage はギャラリー画像1行。(store_id, url) が一意キーになる。
type GalleryImage struct {
	URL       URL
	SortOrder int
}

// GalleryBulkEntry は一括登録1店舗分の画像セット。
type GalleryBulkEntry struct {
	StoreID string
	Images  []GalleryImage
}
