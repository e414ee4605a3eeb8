package domain

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func joinRow(key, label string, sortOrder *int) RawJoinRow {
	return RawJoinRow{Definition: &RawDefinition{Key: key, Label: label, SortOrder: sortOrder}}
}

func TestNormalizeRelationKeysAndLabelsStayAligned(t *testing.T) {
	raw := RawStore{
		ID:   "s1",
		Slug: "club-aoi",
		Name: "クラブ葵",
		Drinks: ManyRelation(
			joinRow("beer", "ビール", intPtr(2)),
			joinRow("", "壊れた行", intPtr(1)),
			joinRow("shochu", "焼酎", nil),
			RawJoinRow{Definition: nil},
			joinRow("wine", "ワイン", intPtr(1)),
		),
	}

	record := NormalizeSearchRecord(raw)
	if len(record.Drinks.Keys) != len(record.Drinks.Labels) {
		t.Fatalf("keys/labels の長さが一致しません: %d != %d", len(record.Drinks.Keys), len(record.Drinks.Labels))
	}

	wantKeys := []string{"drinks:shochu", "drinks:wine", "drinks:beer"}
	if !reflect.DeepEqual(record.Drinks.Keys, wantKeys) {
		t.Fatalf("sort_order 昇順のキー列が期待と異なります: got=%v want=%v", record.Drinks.Keys, wantKeys)
	}
	wantLabels := []string{"焼酎", "ワイン", "ビール"}
	if !reflect.DeepEqual(record.Drinks.Labels, wantLabels) {
		t.Fatalf("ラベル列が期待と異なります: got=%v want=%v", record.Drinks.Labels, wantLabels)
	}
}

func TestNormalizeRelationToleratesSingleObjectShape(t *testing.T) {
	data := []byte(`{
		"id": "s2",
		"slug": "bar-tsuki",
		"name": "バー月",
		"venue_type": {"definition": {"key": "bar", "label": "バー", "sort_order": 1}},
		"drinks": [{"definition": {"key": "beer", "label": "ビール", "sort_order": 1}}]
	}`)

	raw, err := DecodeRawStore(data)
	if err != nil {
		t.Fatalf("decode に失敗: %v", err)
	}

	record := NormalizeSearchRecord(raw)
	key, label := record.VenueType.First()
	if key != "venue_types:bar" || label != "バー" {
		t.Fatalf("単一オブジェクト形状のリレーションが吸収されていません: key=%q label=%q", key, label)
	}
	if got := record.Drinks.Keys; !reflect.DeepEqual(got, []string{"drinks:beer"}) {
		t.Fatalf("配列形状のリレーションが壊れています: %v", got)
	}
}

func TestDecodeRawStoreRejectsNonObject(t *testing.T) {
	for _, data := range []string{`[]`, `"text"`, ``, `42`} {
		if _, err := DecodeRawStore([]byte(data)); err == nil {
			t.Fatalf("オブジェクトでない入力 %q がエラーになりません", data)
		}
	}
}

func TestRepresentativeImagePicksSmallestSortOrder(t *testing.T) {
	images := []RawImage{
		{URL: "a", SortOrder: intPtr(2)},
		{URL: "b", SortOrder: intPtr(1)},
	}
	if got := RepresentativeImage(images); got != "b" {
		t.Fatalf("sort_order 最小の画像が選ばれていません: %q", got)
	}
}

func TestRepresentativeImageFallsBackToPlaceholder(t *testing.T) {
	if got := RepresentativeImage(nil); got != PlaceholderImagePath {
		t.Fatalf("空ギャラリーでプレースホルダになりません: %q", got)
	}
	blank := []RawImage{{URL: "   ", SortOrder: intPtr(0)}}
	if got := RepresentativeImage(blank); got != PlaceholderImagePath {
		t.Fatalf("空白URLでプレースホルダになりません: %q", got)
	}
}

func TestRepresentativeImageIsIdempotent(t *testing.T) {
	raw := RawStore{
		ID:   "s3",
		Slug: "live-sora",
		Name: "ライブ空",
		Images: []RawImage{
			{URL: "second", SortOrder: intPtr(5)},
			{URL: "first", SortOrder: intPtr(3)},
		},
	}
	first := NormalizeSummary(raw)
	second := NormalizeSummary(raw)
	if first.ImageURL != second.ImageURL {
		t.Fatalf("同じ入力で代表画像が揺れています: %q != %q", first.ImageURL, second.ImageURL)
	}
	if first.ImageURL != "first" {
		t.Fatalf("代表画像の選択が誤っています: %q", first.ImageURL)
	}
}

func TestNormalizeStatusKeyDefaultsToNormal(t *testing.T) {
	cases := map[string]string{
		"":          StatusNormal,
		"normal":    StatusNormal,
		"temporary": StatusTemporary,
		"closed":    StatusClosed,
		"irregular": StatusIrregular,
		"unknown":   StatusNormal,
	}
	for input, want := range cases {
		raw := RawStore{ID: "s", Slug: "s", Name: "店", StatusKey: input}
		if got := NormalizeSummary(raw).StatusKey; got != want {
			t.Fatalf("status_key %q の正規化が %q になりました(期待 %q)", input, got, want)
		}
	}
}

func TestNormalizeDetailGalleryDropsBlanksAndSorts(t *testing.T) {
	raw := RawStore{
		ID:   "s4",
		Slug: "club-umi",
		Name: "クラブ海",
		Images: []RawImage{
			{URL: "third", SortOrder: intPtr(30)},
			{URL: "  ", SortOrder: intPtr(1)},
			{URL: "first", SortOrder: nil},
			{URL: "second", SortOrder: intPtr(10)},
		},
	}
	detail := NormalizeDetail(raw)
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(detail.GalleryURLs, want) {
		t.Fatalf("ギャラリーの並びが期待と異なります: got=%v want=%v", detail.GalleryURLs, want)
	}
}
