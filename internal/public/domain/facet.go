package domain

import "strings"

// Facet は検索条件として独立に選択できるカテゴリ1種類を表す。
// Table はマスタテーブル名であり、キーの名前空間プレフィックスを兼ねる。
type Facet struct {
	Table    string
	Section  string
	Multiple bool
}

// Facets は全ファセットの正規の並び順。
// SelectedKeys の出力順とラベルマップのマージ順はこの並びに固定される。
var Facets = []Facet{
	{Table: TablePrefectures, Section: "エリア", Multiple: false},
	{Table: TableCities, Section: "エリア", Multiple: false},
	{Table: TableVenueTypes, Section: "店舗タイプ", Multiple: false},
	{Table: TablePriceRanges, Section: "料金帯", Multiple: false},
	{Table: TableStoreSizes, Section: "店舗規模", Multiple: false},
	{Table: TableCustomerTypes, Section: "客層", Multiple: true},
	{Table: TableAtmospheres, Section: "雰囲気", Multiple: true},
	{Table: TableDrinks, Section: "ドリンク", Multiple: true},
	{Table: TablePaymentMethods, Section: "支払い方法", Multiple: true},
	{Table: TableEventTrends, Section: "イベント傾向", Multiple: true},
	{Table: TableBaggagePolicies, Section: "荷物預かり", Multiple: true},
	{Table: TableSmokingPolicies, Section: "喫煙", Multiple: true},
	{Table: TableToilets, Section: "トイレ", Multiple: true},
	{Table: TableEnvironments, Section: "周辺環境", Multiple: true},
	{Table: TableAmenities, Section: "設備・サービス", Multiple: true},
}

// マスタテーブル名。リレーション先の定義テーブルはこの固定リストに限られる。
const (
	TablePrefectures     = "prefectures"
	TableCities          = "cities"
	TableVenueTypes      = "venue_types"
	TablePriceRanges     = "price_ranges"
	TableStoreSizes      = "store_sizes"
	TableCustomerTypes   = "customer_types"
	TableAtmospheres     = "atmospheres"
	TableDrinks          = "drinks"
	TablePaymentMethods  = "payment_methods"
	TableEventTrends     = "event_trends"
	TableBaggagePolicies = "baggage_policies"
	TableSmokingPolicies = "smoking_policies"
	TableToilets         = "toilets"
	TableEnvironments    = "environments"
	TableAmenities       = "amenities"
)

// NamespacedKey はテーブル名で名前空間化したキーを返す。
// ファセットをまたぐ素のキー衝突(drinks と amenities が同じ "other" を持つ等)を防ぐため、
// 全ファセットでこの形式に統一する。
func NamespacedKey(table, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return table + ":" + key
}

// SplitNamespacedKey は "table:key" 形式のキーをテーブル名と素のキーに分解する。
// 名前空間を持たないキーは空のテーブル名とともに返す。
func SplitNamespacedKey(namespaced string) (table, key string) {
	idx := strings.Index(namespaced, ":")
	if idx < 0 {
		return "", namespaced
	}
	return namespaced[:idx], namespaced[idx+1:]
}

// FacetByTable はテーブル名からファセット定義を引く。
func FacetByTable(table string) (Facet, bool) {
	for _, f := range Facets {
		if f.Table == table {
			return f, true
		}
	}
	return Facet{}, false
}
