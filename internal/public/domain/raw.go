package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawDefinition は結合クエリで展開されたリレーション先のマスタ定義。
// key か label を欠く行は正規化時に捨てられる。
type RawDefinition struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	SortOrder *int   `json:"sort_order"`
}

// RawJoinRow は中間テーブル1行分。definition が欠落している行は無効とみなす。
type RawJoinRow struct {
	Definition *RawDefinition `json:"definition"`
}

// RelationCell はネストされたリレーション列の値を表すタグ付きユニオン。
// クエリの揺らぎにより null・単一オブジェクト・配列のいずれの形でも届くため、
// 境界でこの型に吸収し、以降の呼び出し側では常に行スライスとして扱う。
type RelationCell struct {
	rows []RawJoinRow
}

// ManyRelation は複数行からセルを構築する(主にテスト・シード用)。
func ManyRelation(rows ...RawJoinRow) RelationCell {
	return RelationCell{rows: rows}
}

// SingleRelation は単一定義からセルを構築する。
func SingleRelation(def RawDefinition) RelationCell {
	return RelationCell{rows: []RawJoinRow{{Definition: &def}}}
}

// Rows は格納された中間テーブル行を返す。null セルは空スライスになる。
func (c RelationCell) Rows() []RawJoinRow {
	return c.rows
}

// UnmarshalJSON は null / 単一オブジェクト / 配列の3形状を受け付ける。
func (c *RelationCell) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		c.rows = nil
		return nil
	}

	if trimmed[0] == '[' {
		var rows []RawJoinRow
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return fmt.Errorf("リレーション配列の解析に失敗: %w", err)
		}
		c.rows = rows
		return nil
	}

	var row RawJoinRow
	if err := json.Unmarshal(trimmed, &row); err != nil {
		return fmt.Errorf("リレーションオブジェクトの解析に失敗: %w", err)
	}
	c.rows = []RawJoinRow{row}
	return nil
}

// MarshalJSON は常に配列形式で書き出す。
func (c RelationCell) MarshalJSON() ([]byte, error) {
	if c.rows == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.rows)
}

// RawImage はギャラリー画像1行。sort_order を欠く行は 0 として扱う。
type RawImage struct {
	URL       string `json:"url"`
	SortOrder *int   `json:"sort_order"`
}

// RawStore は店舗1件の結合済み生レコード。正規化前の唯一の入力形状であり、
// ネストされた各リレーションは RelationCell が形状の揺らぎを吸収する。
type RawStore struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Kana          string `json:"kana"`
	StatusKey     string `json:"status_key"`
	Description   string `json:"description"`
	Access        string `json:"access"`
	Address       string `json:"address"`
	BusinessHours string `json:"business_hours"`

	Prefecture RelationCell `json:"prefecture"`
	City       RelationCell `json:"city"`
	VenueType  RelationCell `json:"venue_type"`
	PriceRange RelationCell `json:"price_range"`
	StoreSize  RelationCell `json:"store_size"`

	CustomerTypes   RelationCell `json:"customer_types"`
	Atmospheres     RelationCell `json:"atmospheres"`
	Drinks          RelationCell `json:"drinks"`
	PaymentMethods  RelationCell `json:"payment_methods"`
	EventTrends     RelationCell `json:"event_trends"`
	BaggagePolicies RelationCell `json:"baggage_policies"`
	SmokingPolicies RelationCell `json:"smoking_policies"`
	Toilets         RelationCell `json:"toilets"`
	Environments    RelationCell `json:"environments"`
	Amenities       RelationCell `json:"amenities"`

	Images []RawImage `json:"images"`
}

// DecodeRawStore は結合クエリの JSON 出力を RawStore へ復元する。
// トップレベルがオブジェクトでない場合のみハードエラーとする。
func DecodeRawStore(data []byte) (RawStore, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return RawStore{}, fmt.Errorf("店舗レコードがオブジェクトではありません")
	}
	var raw RawStore
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return RawStore{}, fmt.Errorf("店舗レコードの解析に失敗: %w", err)
	}
	return raw, nil
}
