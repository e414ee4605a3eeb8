package domain

// 店舗の稼働状態。status_key が欠落・未知の場合は StatusNormal に落とす。
const (
	StatusNormal    = "normal"
	StatusTemporary = "temporary"
	StatusClosed    = "closed"
	StatusIrregular = "irregular"
)

// FacetValues はひとつのファセットに紐づくキー列とラベル列の組。
// 両者は常に同じ長さで、定義の sort_order 昇順に揃えられている。
type FacetValues struct {
	Keys   []string
	Labels []string
}

// First は先頭のキー/ラベルを返す。単一選択ファセットの参照用。
func (v FacetValues) First() (key, label string) {
	if len(v.Keys) == 0 {
		return "", ""
	}
	return v.Keys[0], v.Labels[0]
}

// StoreSummary は一覧表示用の軽量ビュー。
type StoreSummary struct {
	ID              string
	Slug            string
	Name            string
	Kana            string
	StatusKey       string
	PrefectureKey   string
	PrefectureLabel string
	CityKey         string
	CityLabel       string
	VenueTypeKey    string
	VenueTypeLabel  string
	ImageURL        string
}

// StoreSearchRecord は絞り込み検索用のビュー。全ファセットのキー/ラベル対を持つ。
type StoreSearchRecord struct {
	ID        string
	Slug      string
	Name      string
	Kana      string
	StatusKey string
	ImageURL  string

	Prefecture FacetValues
	City       FacetValues
	VenueType  FacetValues
	PriceRange FacetValues
	StoreSize  FacetValues

	CustomerTypes   FacetValues
	Atmospheres     FacetValues
	Drinks          FacetValues
	PaymentMethods  FacetValues
	EventTrends     FacetValues
	BaggagePolicies FacetValues
	SmokingPolicies FacetValues
	Toilets         FacetValues
	Environments    FacetValues
	Amenities       FacetValues
}

// facetValues はファセットの正規順で各値を列挙する。
func (r StoreSearchRecord) facetValues() []FacetValues {
	return []FacetValues{
		r.Prefecture,
		r.City,
		r.VenueType,
		r.PriceRange,
		r.StoreSize,
		r.CustomerTypes,
		r.Atmospheres,
		r.Drinks,
		r.PaymentMethods,
		r.EventTrends,
		r.BaggagePolicies,
		r.SmokingPolicies,
		r.Toilets,
		r.Environments,
		r.Amenities,
	}
}

// FlattenedKeys は店舗が持つ全ファセット値のキーを1本のリストに平坦化する。
// 空キーは含まれない。評価器の包含判定はこのリストに対して行う。
func (r StoreSearchRecord) FlattenedKeys() []string {
	keys := make([]string, 0, 16)
	for _, values := range r.facetValues() {
		for _, key := range values.Keys {
			if key == "" {
				continue
			}
			keys = append(keys, key)
		}
	}
	return keys
}

// StoreDetail は詳細ページ用のフルビュー。
type StoreDetail struct {
	StoreSearchRecord

	Description   string
	Access        string
	Address       string
	BusinessHours string
	GalleryURLs   []string
}
