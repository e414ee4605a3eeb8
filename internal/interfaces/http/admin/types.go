package admin

import (
	"time"

	adminapp "github.com/rickygarrix/otonavi-sub000/internal/admin/application"
	admindomain "github.com/rickygarrix/otonavi-sub000/internal/admin/domain"
)

// 書き込みアクション名。dispatch はこのいずれかのみ受け付ける。
const (
	actionInsertStore            = "insert_store"
	actionUpsertStore            = "upsert_store"
	actionUpsertStoreGallery     = "upsert_store_gallery"
	actionBulkUpsertStoreGallery = "bulk_upsert_store_gallery"
	actionEnsureStoreFolder      = "ensure_store_folder"
)

type adminStorePayload struct {
	ID            string `json:"id,omitempty"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Kana          string `json:"kana,omitempty"`
	StatusKey     string `json:"statusKey,omitempty"`
	Description   string `json:"description,omitempty"`
	Access        string `json:"access,omitempty"`
	Address       string `json:"address,omitempty"`
	BusinessHours string `json:"businessHours,omitempty"`

	PrefectureID *int64 `json:"prefectureId,omitempty"`
	CityID       *int64 `json:"cityId,omitempty"`
	VenueTypeID  *int64 `json:"venueTypeId,omitempty"`
	PriceRangeID *int64 `json:"priceRangeId,omitempty"`
	StoreSizeID  *int64 `json:"storeSizeId,omitempty"`

	Relations map[string][]int64 `json:"relations,omitempty"`
}

type adminGalleryImagePayload struct {
	URL       string `json:"url"`
	SortOrder int    `json:"sortOrder"`
}

type adminGalleryPayload struct {
	StoreID string                     `json:"storeId"`
	Images  []adminGalleryImagePayload `json:"images"`
}

type adminStoreActionRequest struct {
	Action    string                `json:"action"`
	Store     *adminStorePayload    `json:"store,omitempty"`
	Gallery   *adminGalleryPayload  `json:"gallery,omitempty"`
	Galleries []adminGalleryPayload `json:"galleries,omitempty"`
}

type adminStorageActionRequest struct {
	Action  string `json:"action"`
	StoreID string `json:"storeId"`
}

type adminStoreResponse struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Kana          string `json:"kana,omitempty"`
	StatusKey     string `json:"statusKey"`
	Description   string `json:"description,omitempty"`
	Access        string `json:"access,omitempty"`
	Address       string `json:"address,omitempty"`
	BusinessHours string `json:"businessHours,omitempty"`

	PrefectureID *int64 `json:"prefectureId,omitempty"`
	CityID       *int64 `json:"cityId,omitempty"`
	VenueTypeID  *int64 `json:"venueTypeId,omitempty"`
	PriceRangeID *int64 `json:"priceRangeId,omitempty"`
	StoreSizeID  *int64 `json:"storeSizeId,omitempty"`

	Relations map[string][]int64 `json:"relations,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// actionEnvelope は書き込みアクションの応答形式。失敗時は失敗したステップを
// step に付けて返し、クライアント側で途中まで適用済みの状態と突き合わせられるようにする。
type actionEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Step    string `json:"step,omitempty"`
}

// storageActionResponse はストレージ確保の成功応答。作成したオブジェクトキーを
// トップレベルの key で返す契約。
type storageActionResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
	StoreID string `json:"storeId,omitempty"`
}

func adminStoreDomainToResponse(store admindomain.StoreRecord) adminStoreResponse {
	return adminStoreResponse{
		ID:            store.ID,
		Slug:          store.Slug.String(),
		Name:          store.Name,
		Kana:          store.Kana,
		StatusKey:     store.StatusKey.String(),
		Description:   store.Description,
		Access:        store.Access,
		Address:       store.Address,
		BusinessHours: store.BusinessHours,
		PrefectureID:  store.PrefectureID,
		CityID:        store.CityID,
		VenueTypeID:   store.VenueTypeID,
		PriceRangeID:  store.PriceRangeID,
		StoreSizeID:   store.StoreSizeID,
		Relations:     store.Relations,
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
}

func buildUpsertStoreCommand(payload *adminStorePayload) adminapp.UpsertStoreCommand {
	return adminapp.UpsertStoreCommand{
		ID:            payload.ID,
		Slug:          payload.Slug,
		Name:          payload.Name,
		Kana:          payload.Kana,
		StatusKey:     payload.StatusKey,
		Description:   payload.Description,
		Access:        payload.Access,
		Address:       payload.Address,
		BusinessHours: payload.BusinessHours,
		PrefectureID:  payload.PrefectureID,
		CityID:        payload.CityID,
		VenueTypeID:   payload.VenueTypeID,
		PriceRangeID:  payload.PriceRangeID,
		StoreSizeID:   payload.StoreSizeID,
		RelationIDs:   payload.Relations,
	}
}

func buildGalleryImages(images []adminGalleryImagePayload) []admindomain.GalleryImageInput {
	inputs := make([]admindomain.GalleryImageInput, 0, len(images))
	for _, image := range images {
		inputs = append(inputs, admindomain.GalleryImageInput{URL: image.URL, SortOrder: image.SortOrder})
	}
	return inputs
}
