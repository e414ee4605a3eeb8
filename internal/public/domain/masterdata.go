package domain

import "strings"

// CategoryDefinition はファセット内の選択肢1件を表す読み取り専用のマスタ行。
// Key は名前空間化済み(table:key)で保持する。
type CategoryDefinition struct {
	Key       string
	Label     string
	SortOrder int
}

// City は市区町村マスタの1行。都道府県キーで階層を持つ。
type City struct {
	Key           string
	Label         string
	PrefectureKey string
	SortOrder     int
}

// MasterData は全ファセットのマスタ定義と、そこから導出した参照マップの集合。
// すべてのフェッチが完了してから構築されるため、読み取り中に部分状態を観測することはない。
type MasterData struct {
	Definitions map[string][]CategoryDefinition
	Cities      []City

	// LabelByKey は名前空間化キー→表示ラベル。Facets の並び順でテーブルごとに
	// マージし、同一キーは後勝ちとする(マージ順が固定なので結果は決定的)。
	LabelByKey map[string]string

	// SectionByLabel は表示ラベル→所属セクション名。クリックされたラベルから
	// UI 側で該当ファセットのセクションへ誘導するために使う。
	SectionByLabel map[string]string

	// TableByKey は名前空間化キー→所属テーブル名。選択状態の復元でキーを
	// ファセットへ振り分けるために使う。
	TableByKey map[string]string
}

// BuildMasterData はテーブルごとの定義一覧から参照マップを構築する。
// 定義は各テーブル内で sort_order 昇順に並んでいる前提(リポジトリが保証する)。
func BuildMasterData(definitions map[string][]CategoryDefinition, cities []City) *MasterData {
	data := &MasterData{
		Definitions:    definitions,
		Cities:         cities,
		LabelByKey:     make(map[string]string),
		SectionByLabel: make(map[string]string),
		TableByKey:     make(map[string]string),
	}

	for _, facet := range Facets {
		for _, def := range definitions[facet.Table] {
			if def.Key == "" || strings.TrimSpace(def.Label) == "" {
				continue
			}
			data.LabelByKey[def.Key] = def.Label
			data.SectionByLabel[def.Label] = facet.Section
			data.TableByKey[def.Key] = facet.Table
		}
	}
	return data
}

// LookupLabel はキーに対応するラベルを返す。未知のキーは素のキー部分で代用する。
func (m *MasterData) LookupLabel(key string) string {
	if label, ok := m.LabelByKey[key]; ok {
		return label
	}
	_, raw := SplitNamespacedKey(key)
	return raw
}
