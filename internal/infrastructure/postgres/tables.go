package postgres

import "github.com/rickygarrix/otonavi-sub000/internal/public/domain"

// relationTable は多対多ファセット1つ分の中間テーブル定義。
// 書き込み側の全置換同期と読み取り側の JSON 集約の両方がこの表を参照する。
type relationTable struct {
	facetTable string
	joinTable  string
	idColumn   string
	jsonField  string
}

var relationTables = []relationTable{
	{facetTable: domain.TableCustomerTypes, joinTable: "store_customer_types", idColumn: "customer_type_id", jsonField: "customer_types"},
	{facetTable: domain.TableAtmospheres, joinTable: "store_atmospheres", idColumn: "atmosphere_id", jsonField: "atmospheres"},
	{facetTable: domain.TableDrinks, joinTable: "store_drinks", idColumn: "drink_id", jsonField: "drinks"},
	{facetTable: domain.TablePaymentMethods, joinTable: "store_payment_methods", idColumn: "payment_method_id", jsonField: "payment_methods"},
	{facetTable: domain.TableEventTrends, joinTable: "store_event_trends", idColumn: "event_trend_id", jsonField: "event_trends"},
	{facetTable: domain.TableBaggagePolicies, joinTable: "store_baggage_policies", idColumn: "baggage_policy_id", jsonField: "baggage_policies"},
	{facetTable: domain.TableSmokingPolicies, joinTable: "store_smoking_policies", idColumn: "smoking_policy_id", jsonField: "smoking_policies"},
	{facetTable: domain.TableToilets, joinTable: "store_toilets", idColumn: "toilet_id", jsonField: "toilets"},
	{facetTable: domain.TableEnvironments, joinTable: "store_environments", idColumn: "environment_id", jsonField: "environments"},
	{facetTable: domain.TableAmenities, joinTable: "store_amenities", idColumn: "amenity_id", jsonField: "amenities"},
}

// singularColumn は stores テーブル上の単数リレーション列の定義。
type singularColumn struct {
	facetTable string
	column     string
	jsonField  string
}

var singularColumns = []singularColumn{
	{facetTable: domain.TablePrefectures, column: "prefecture_id", jsonField: "prefecture"},
	{facetTable: domain.TableCities, column: "city_id", jsonField: "city"},
	{facetTable: domain.TableVenueTypes, column: "venue_type_id", jsonField: "venue_type"},
	{facetTable: domain.TablePriceRanges, column: "price_range_id", jsonField: "price_range"},
	{facetTable: domain.TableStoreSizes, column: "store_size_id", jsonField: "store_size"},
}
