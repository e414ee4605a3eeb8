package application

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

type fakeMasterRepository struct {
	failTables map[string]bool
	failCities bool
}

func (f *fakeMasterRepository) ListDefinitions(_ context.Context, table string) ([]domain.CategoryDefinition, error) {
	if f.failTables[table] {
		return nil, errors.New("query timeout")
	}
	return []domain.CategoryDefinition{
		{Key: domain.NamespacedKey(table, "first"), Label: table + "の選択肢", SortOrder: 10},
	}, nil
}

func (f *fakeMasterRepository) ListCities(_ context.Context) ([]domain.City, error) {
	if f.failCities {
		return nil, errors.New("query timeout")
	}
	return []domain.City{
		{Key: "cities:shibuya-ku", Label: "渋谷区", PrefectureKey: "prefectures:tokyo", SortOrder: 10},
	}, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestMasterDataServiceLoadMergesAllFacets(t *testing.T) {
	svc := NewMasterDataService(&fakeMasterRepository{}, discardLogger(), nil, 0, "")

	master, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load が失敗: %v", err)
	}

	if len(master.Definitions) != len(domain.Facets) {
		t.Fatalf("全ファセット分の定義があるべき: got %d, want %d", len(master.Definitions), len(domain.Facets))
	}
	for _, facet := range domain.Facets {
		key := domain.NamespacedKey(facet.Table, "first")
		if _, ok := master.LabelByKey[key]; !ok {
			t.Errorf("LabelByKey に %s が含まれていない", key)
		}
		if got := master.TableByKey[key]; got != facet.Table {
			t.Errorf("TableByKey[%s] = %q, want %q", key, got, facet.Table)
		}
	}
	if len(master.Cities) != 1 {
		t.Fatalf("市区町村が1件あるべき: got %d", len(master.Cities))
	}
}

func TestMasterDataServiceLoadIsolatesFacetFailures(t *testing.T) {
	repo := &fakeMasterRepository{failTables: map[string]bool{domain.TableDrinks: true}}
	svc := NewMasterDataService(repo, discardLogger(), nil, 0, "")

	master, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("一部テーブルの失敗で全体を失敗させてはいけない: %v", err)
	}

	if defs := master.Definitions[domain.TableDrinks]; len(defs) != 0 {
		t.Fatalf("失敗したテーブルは空集合になるべき: got %d件", len(defs))
	}
	if _, ok := master.LabelByKey[domain.NamespacedKey(domain.TableAtmospheres, "first")]; !ok {
		t.Fatal("他のテーブルの定義は維持されるべき")
	}
}

func TestMasterDataServiceLoadToleratesCityFailure(t *testing.T) {
	repo := &fakeMasterRepository{failCities: true}
	svc := NewMasterDataService(repo, discardLogger(), nil, 0, "")

	master, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("市区町村の失敗で全体を失敗させてはいけない: %v", err)
	}
	if len(master.Cities) != 0 {
		t.Fatalf("市区町村は空になるべき: got %d件", len(master.Cities))
	}
}

type fakeMasterCache struct {
	entries  map[string][]byte
	setCalls int
}

func newFakeMasterCache() *fakeMasterCache {
	return &fakeMasterCache{entries: make(map[string][]byte)}
}

func (c *fakeMasterCache) Get(_ context.Context, key string) ([]byte, error) {
	raw, ok := c.entries[key]
	if !ok {
		return nil, errMasterCacheMiss
	}
	return raw, nil
}

func (c *fakeMasterCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.setCalls++
	c.entries[key] = value
	return nil
}

func cachedServiceForTest(repo MasterRepository, cache masterCache) *masterDataService {
	return &masterDataService{
		repo:        repo,
		logger:      discardLogger(),
		cache:       cache,
		cacheTTL:    time.Minute,
		cachePrefix: "otonavi:",
	}
}

func TestMasterDataServiceCachesCompleteSnapshots(t *testing.T) {
	cache := newFakeMasterCache()
	svc := cachedServiceForTest(&fakeMasterRepository{}, cache)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load が失敗: %v", err)
	}
	if cache.setCalls != 1 {
		t.Fatalf("完全なスナップショットはキャッシュされるべき: setCalls = %d", cache.setCalls)
	}

	// 2回目はキャッシュから復元され、リポジトリが全滅していても全データが返る。
	failing := &fakeMasterRepository{failTables: map[string]bool{}, failCities: true}
	for _, facet := range domain.Facets {
		failing.failTables[facet.Table] = true
	}
	svc.repo = failing

	master, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("キャッシュヒット時の Load が失敗: %v", err)
	}
	if len(master.Definitions) != len(domain.Facets) {
		t.Fatalf("キャッシュから全ファセットが復元されるべき: got %d", len(master.Definitions))
	}
	if len(master.Cities) != 1 {
		t.Fatalf("キャッシュから市区町村が復元されるべき: got %d件", len(master.Cities))
	}
}

func TestMasterDataServiceSkipsCacheWriteOnPartialFailure(t *testing.T) {
	cache := newFakeMasterCache()
	repo := &fakeMasterRepository{failTables: map[string]bool{domain.TableDrinks: true}}
	svc := cachedServiceForTest(repo, cache)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load が失敗: %v", err)
	}
	if cache.setCalls != 0 {
		t.Fatalf("欠けのあるスナップショットをキャッシュしてはいけない: setCalls = %d", cache.setCalls)
	}

	// 復旧後のロードで初めてキャッシュされる。
	repo.failTables = nil
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("復旧後の Load が失敗: %v", err)
	}
	if cache.setCalls != 1 {
		t.Fatalf("復旧後はキャッシュされるべき: setCalls = %d", cache.setCalls)
	}
}

func TestMasterDataServiceSkipsCacheWriteOnCityFailure(t *testing.T) {
	cache := newFakeMasterCache()
	svc := cachedServiceForTest(&fakeMasterRepository{failCities: true}, cache)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load が失敗: %v", err)
	}
	if cache.setCalls != 0 {
		t.Fatalf("市区町村欠落のスナップショットをキャッシュしてはいけない: setCalls = %d", cache.setCalls)
	}
}
