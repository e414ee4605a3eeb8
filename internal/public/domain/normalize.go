package domain

import (
	"sort"
	"strings"
)

// PlaceholderImagePath はギャラリーが空、または URL がすべて空だった場合の
// 代替画像パス。正規化後の ImageURL は常に空でないことを保証する。
const PlaceholderImagePath = "/images/no-image.png"

// NormalizeSummary は生レコードを一覧用の軽量ビューへ変換する。
func NormalizeSummary(raw RawStore) StoreSummary {
	prefecture := normalizeRelation(TablePrefectures, raw.Prefecture)
	city := normalizeRelation(TableCities, raw.City)
	venueType := normalizeRelation(TableVenueTypes, raw.VenueType)

	prefKey, prefLabel := prefecture.First()
	cityKey, cityLabel := city.First()
	typeKey, typeLabel := venueType.First()

	return StoreSummary{
		ID:              strings.TrimSpace(raw.ID),
		Slug:            strings.TrimSpace(raw.Slug),
		Name:            strings.TrimSpace(raw.Name),
		Kana:            strings.TrimSpace(raw.Kana),
		StatusKey:       normalizeStatusKey(raw.StatusKey),
		PrefectureKey:   prefKey,
		PrefectureLabel: prefLabel,
		CityKey:         cityKey,
		CityLabel:       cityLabel,
		VenueTypeKey:    typeKey,
		VenueTypeLabel:  typeLabel,
		ImageURL:        RepresentativeImage(raw.Images),
	}
}

// NormalizeSearchRecord は生レコードを絞り込み検索用のビューへ変換する。
// 全ファセットについてキー列とラベル列が位置的に揃うことを保証する。
func NormalizeSearchRecord(raw RawStore) StoreSearchRecord {
	return StoreSearchRecord{
		ID:        strings.TrimSpace(raw.ID),
		Slug:      strings.TrimSpace(raw.Slug),
		Name:      strings.TrimSpace(raw.Name),
		Kana:      strings.TrimSpace(raw.Kana),
		StatusKey: normalizeStatusKey(raw.StatusKey),
		ImageURL:  RepresentativeImage(raw.Images),

		Prefecture: normalizeRelation(TablePrefectures, raw.Prefecture),
		City:       normalizeRelation(TableCities, raw.City),
		VenueType:  normalizeRelation(TableVenueTypes, raw.VenueType),
		PriceRange: normalizeRelation(TablePriceRanges, raw.PriceRange),
		StoreSize:  normalizeRelation(TableStoreSizes, raw.StoreSize),

		CustomerTypes:   normalizeRelation(TableCustomerTypes, raw.CustomerTypes),
		Atmospheres:     normalizeRelation(TableAtmospheres, raw.Atmospheres),
		Drinks:          normalizeRelation(TableDrinks, raw.Drinks),
		PaymentMethods:  normalizeRelation(TablePaymentMethods, raw.PaymentMethods),
		EventTrends:     normalizeRelation(TableEventTrends, raw.EventTrends),
		BaggagePolicies: normalizeRelation(TableBaggagePolicies, raw.BaggagePolicies),
		SmokingPolicies: normalizeRelation(TableSmokingPolicies, raw.SmokingPolicies),
		Toilets:         normalizeRelation(TableToilets, raw.Toilets),
		Environments:    normalizeRelation(TableEnvironments, raw.Environments),
		Amenities:       normalizeRelation(TableAmenities, raw.Amenities),
	}
}

// NormalizeDetail は生レコードを詳細ページ用のフルビューへ変換する。
func NormalizeDetail(raw RawStore) StoreDetail {
	return StoreDetail{
		StoreSearchRecord: NormalizeSearchRecord(raw),
		Description:       strings.TrimSpace(raw.Description),
		Access:            strings.TrimSpace(raw.Access),
		Address:           strings.TrimSpace(raw.Address),
		BusinessHours:     strings.TrimSpace(raw.BusinessHours),
		GalleryURLs:       galleryURLs(raw.Images),
	}
}

// normalizeRelation は中間テーブル行からキー列とラベル列の対を構築する。
// key か label を欠く行は穴を作らず捨て、残りを sort_order 昇順(欠落は 0、
// 同値は入力順維持)で並べてから分割するため、両列は常に位置的に揃う。
func normalizeRelation(table string, cell RelationCell) FacetValues {
	rows := cell.Rows()
	valid := make([]RawDefinition, 0, len(rows))
	for _, row := range rows {
		if row.Definition == nil {
			continue
		}
		def := *row.Definition
		if strings.TrimSpace(def.Key) == "" || strings.TrimSpace(def.Label) == "" {
			continue
		}
		valid = append(valid, def)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return definitionSortOrder(valid[i]) < definitionSortOrder(valid[j])
	})

	values := FacetValues{
		Keys:   make([]string, 0, len(valid)),
		Labels: make([]string, 0, len(valid)),
	}
	for _, def := range valid {
		values.Keys = append(values.Keys, NamespacedKey(table, def.Key))
		values.Labels = append(values.Labels, strings.TrimSpace(def.Label))
	}
	return values
}

func definitionSortOrder(def RawDefinition) int {
	if def.SortOrder == nil {
		return 0
	}
	return *def.SortOrder
}

// RepresentativeImage は sort_order 最小のギャラリー行を代表画像として選ぶ。
// 行が無い、または URL が空白の場合は固定のプレースホルダへフォールバックする。
func RepresentativeImage(images []RawImage) string {
	best := ""
	bestOrder := 0
	found := false
	for _, image := range images {
		order := 0
		if image.SortOrder != nil {
			order = *image.SortOrder
		}
		if !found || order < bestOrder {
			best = strings.TrimSpace(image.URL)
			bestOrder = order
			found = true
		}
	}
	if best == "" {
		return PlaceholderImagePath
	}
	return best
}

// galleryURLs は空白 URL を除いたギャラリー一覧を sort_order 昇順で返す。
func galleryURLs(images []RawImage) []string {
	ordered := make([]RawImage, 0, len(images))
	for _, image := range images {
		if strings.TrimSpace(image.URL) == "" {
			continue
		}
		ordered = append(ordered, image)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return imageSortOrder(ordered[i]) < imageSortOrder(ordered[j])
	})

	urls := make([]string, 0, len(ordered))
	for _, image := range ordered {
		urls = append(urls, strings.TrimSpace(image.URL))
	}
	return urls
}

func imageSortOrder(image RawImage) int {
	if image.SortOrder == nil {
		return 0
	}
	return *image.SortOrder
}

// normalizeStatusKey は既知の status_key のみ通し、欠落・未知は normal に倒す。
func normalizeStatusKey(value string) string {
	switch strings.TrimSpace(value) {
	case StatusTemporary:
		return StatusTemporary
	case StatusClosed:
		return StatusClosed
	case StatusIrregular:
		return StatusIrregular
	default:
		return StatusNormal
	}
}
