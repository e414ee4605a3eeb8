package application

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

type fakeStoreReadRepository struct {
	stores []domain.RawStore
}

func (f *fakeStoreReadRepository) ListRaw(_ context.Context, _ string) ([]domain.RawStore, error) {
	return f.stores, nil
}

func (f *fakeStoreReadRepository) FindRawBySlug(_ context.Context, slug string) (domain.RawStore, error) {
	for _, store := range f.stores {
		if store.Slug == slug {
			return store, nil
		}
	}
	return domain.RawStore{}, sql.ErrNoRows
}

func rawStoreForTest(id, slug, venueTypeKey, priceRangeKey string) domain.RawStore {
	return domain.RawStore{
		ID:   id,
		Slug: slug,
		Name: slug,
		VenueType: domain.SingleRelation(domain.RawDefinition{
			Key: venueTypeKey, Label: venueTypeKey,
		}),
		PriceRange: domain.SingleRelation(domain.RawDefinition{
			Key: priceRangeKey, Label: priceRangeKey,
		}),
	}
}

func masterServiceForTest() MasterDataService {
	return NewMasterDataService(&fakeMasterRepository{}, discardLogger(), nil, 0, "")
}

// fakeMasterRepository は各テーブルに "first" キーを1件だけ返すので、
// 検索キーの復元テストにはそのキーを使う。
func TestStoreQueryServiceSearchFiltersBySelectedKeys(t *testing.T) {
	venueKey := domain.NamespacedKey(domain.TableVenueTypes, "first")
	priceKey := domain.NamespacedKey(domain.TablePriceRanges, "first")

	repo := &fakeStoreReadRepository{stores: []domain.RawStore{
		rawStoreForTest("id-1", "matching-store", "first", "first"),
		rawStoreForTest("id-2", "other-store", "other", "other"),
	}}
	svc := NewStoreQueryService(repo, masterServiceForTest())

	records, err := svc.Search(context.Background(), []string{venueKey, priceKey})
	if err != nil {
		t.Fatalf("Search が失敗: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("全条件を満たす1件のみ返るべき: got %d件", len(records))
	}
	if records[0].Slug != "matching-store" {
		t.Fatalf("slug = %q, want %q", records[0].Slug, "matching-store")
	}
}

func TestStoreQueryServiceSearchWithoutKeysReturnsAll(t *testing.T) {
	repo := &fakeStoreReadRepository{stores: []domain.RawStore{
		rawStoreForTest("id-1", "store-a", "first", "first"),
		rawStoreForTest("id-2", "store-b", "other", "other"),
	}}
	svc := NewStoreQueryService(repo, masterServiceForTest())

	records, err := svc.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("Search が失敗: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("キー指定なしは全件返すべき: got %d件", len(records))
	}
}

func TestStoreQueryServiceSearchDropsUnknownKeys(t *testing.T) {
	repo := &fakeStoreReadRepository{stores: []domain.RawStore{
		rawStoreForTest("id-1", "store-a", "first", "first"),
	}}
	svc := NewStoreQueryService(repo, masterServiceForTest())

	// マスタに存在しないキーは条件から落ちるため、全件が返る。
	records, err := svc.Search(context.Background(), []string{"venue_types:discontinued"})
	if err != nil {
		t.Fatalf("Search が失敗: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("未知キーは無視されるべき: got %d件", len(records))
	}
}

func TestStoreQueryServiceDetailPassesThroughNotFound(t *testing.T) {
	svc := NewStoreQueryService(&fakeStoreReadRepository{}, masterServiceForTest())

	_, err := svc.Detail(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("存在しない slug は sql.ErrNoRows を素通しすべき: %v", err)
	}
}
