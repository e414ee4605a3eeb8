package domain

import "strings"

// FilterSelection は検索画面の選択状態を保持する明示的な値オブジェクト。
// プロセス共有のシングルトンは持たず、呼び出し側が所有して引き回す。
// 各フィールドへの代入は全置換であり、トグルは呼び出し側の責務。
type FilterSelection struct {
	Prefecture string
	City       string
	VenueType  string
	PriceRange string
	StoreSize  string

	CustomerTypes   []string
	Atmospheres     []string
	Drinks          []string
	PaymentMethods  []string
	EventTrends     []string
	BaggagePolicies []string
	SmokingPolicies []string
	Toilets         []string
	Environments    []string
	Amenities       []string
}

// Clear は全ファセットを一度の代入で空へ戻す。部分的にクリアされた
// 中間状態が観測されることはない。
func (s *FilterSelection) Clear() {
	*s = FilterSelection{}
}

// SelectedKeys は全ファセットの選択キーを Facets の正規順で平坦化して返す。
// ラベル表示順と URL へのシリアライズはこの順に依存するため、並びは安定している。
func (s FilterSelection) SelectedKeys() []string {
	keys := make([]string, 0, 8)
	appendKey := func(key string) {
		if strings.TrimSpace(key) == "" {
			return
		}
		keys = append(keys, key)
	}

	appendKey(s.Prefecture)
	appendKey(s.City)
	appendKey(s.VenueType)
	appendKey(s.PriceRange)
	appendKey(s.StoreSize)
	for _, group := range [][]string{
		s.CustomerTypes,
		s.Atmospheres,
		s.Drinks,
		s.PaymentMethods,
		s.EventTrends,
		s.BaggagePolicies,
		s.SmokingPolicies,
		s.Toilets,
		s.Environments,
		s.Amenities,
	} {
		for _, key := range group {
			appendKey(key)
		}
	}
	return keys
}

// SelectedLabels は SelectedKeys と同じ並びでラベル列を返す。
func (s FilterSelection) SelectedLabels(master *MasterData) []string {
	keys := s.SelectedKeys()
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		labels = append(labels, master.LookupLabel(key))
	}
	return labels
}

// RestoreSelection は平坦なキーリストを TableByKey で各ファセットへ振り分けて
// 選択状態を復元する。マップに無いキーは行政区画の接尾辞で都道府県/市区町村へ
// 推定し(既知の脆さとして文書化)、それでも振り分けられないキーは黙って捨てる。
// マスタ改定でキーが消えた場合に復元をエラーにしないための方針。
func RestoreSelection(keys []string, tableByKey map[string]string) FilterSelection {
	var selection FilterSelection
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		table, ok := tableByKey[key]
		if !ok {
			table = guessAreaTable(key)
		}
		selection.assign(table, key)
	}
	return selection
}

// assign はキーを所属ファセットのフィールドへ入れる。単一選択は後勝ちで置換する。
func (s *FilterSelection) assign(table, key string) {
	switch table {
	case TablePrefectures:
		s.Prefecture = key
	case TableCities:
		s.City = key
	case TableVenueTypes:
		s.VenueType = key
	case TablePriceRanges:
		s.PriceRange = key
	case TableStoreSizes:
		s.StoreSize = key
	case TableCustomerTypes:
		s.CustomerTypes = append(s.CustomerTypes, key)
	case TableAtmospheres:
		s.Atmospheres = append(s.Atmospheres, key)
	case TableDrinks:
		s.Drinks = append(s.Drinks, key)
	case TablePaymentMethods:
		s.PaymentMethods = append(s.PaymentMethods, key)
	case TableEventTrends:
		s.EventTrends = append(s.EventTrends, key)
	case TableBaggagePolicies:
		s.BaggagePolicies = append(s.BaggagePolicies, key)
	case TableSmokingPolicies:
		s.SmokingPolicies = append(s.SmokingPolicies, key)
	case TableToilets:
		s.Toilets = append(s.Toilets, key)
	case TableEnvironments:
		s.Environments = append(s.Environments, key)
	case TableAmenities:
		s.Amenities = append(s.Amenities, key)
	}
}

// guessAreaTable は名前空間を持たない生のエリア名を接尾辞から推定する。
func guessAreaTable(key string) string {
	_, raw := SplitNamespacedKey(key)
	for _, suffix := range []string{"都", "道", "府", "県"} {
		if strings.HasSuffix(raw, suffix) {
			return TablePrefectures
		}
	}
	for _, suffix := range []string{"市", "区", "町", "村"} {
		if strings.HasSuffix(raw, suffix) {
			return TableCities
		}
	}
	return ""
}

// Evaluate は選択キーをすべて含む店舗だけを残す。ファセット横断で AND、
// 同一ファセット内でも選択キーごとに独立の AND とする(意図した単純化で、
// ドリンクを2つ選べば両方を提供する店舗だけが残る)。空の選択は恒等写像。
func Evaluate(records []StoreSearchRecord, selected []string) []StoreSearchRecord {
	if len(selected) == 0 {
		return records
	}

	matched := make([]StoreSearchRecord, 0, len(records))
	for _, record := range records {
		keySet := make(map[string]struct{})
		for _, key := range record.FlattenedKeys() {
			keySet[key] = struct{}{}
		}

		include := true
		for _, key := range selected {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if _, ok := keySet[key]; !ok {
				include = false
				break
			}
		}
		if include {
			matched = append(matched, record)
		}
	}
	return matched
}
