package application

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

// errMasterCacheMiss はキャッシュにエントリが無いことを表す。障害ではないので
// ログには残さない。
var errMasterCacheMiss = errors.New("master cache miss")

// masterCache はマスタデータのバイト列キャッシュ。Redis 実装の他、テストでは
// フェイクに差し替える。
type masterCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// redisMasterCache は go-redis を masterCache へ適合させる。
type redisMasterCache struct {
	client *redis.Client
}

func (c *redisMasterCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errMasterCacheMiss
	}
	return raw, err
}

func (c *redisMasterCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// masterDataService はファセットマスタをテーブルごとに並行フェッチして組み立てる。
// 個別テーブルの失敗はログに残して空集合で継続し、参照マップはすべての
// フェッチが完了してから一括で構築する。
type masterDataService struct {
	repo   MasterRepository
	logger *log.Logger

	// cache が nil の場合はキャッシュ無しで毎回フェッチする。
	cache       masterCache
	cacheTTL    time.Duration
	cachePrefix string
}

// NewMasterDataService はマスタデータサービスを生成する。cache は nil 可。
func NewMasterDataService(repo MasterRepository, logger *log.Logger, cache *redis.Client, ttl time.Duration, prefix string) MasterDataService {
	if prefix == "" {
		prefix = "otonavi:"
	}
	svc := &masterDataService{
		repo:        repo,
		logger:      logger,
		cacheTTL:    ttl,
		cachePrefix: prefix,
	}
	if cache != nil {
		svc.cache = &redisMasterCache{client: cache}
	}
	return svc
}

// masterCachePayload は Redis に書くキャッシュの中身。導出マップは持たず、
// 読み出し後に BuildMasterData で再構築する。
type masterCachePayload struct {
	Definitions map[string][]domain.CategoryDefinition `json:"definitions"`
	Cities      []domain.City                          `json:"cities"`
}

func (s *masterDataService) cacheKey() string {
	return s.cachePrefix + "master_data"
}

func (s *masterDataService) Load(ctx context.Context) (*domain.MasterData, error) {
	if cached := s.loadFromCache(ctx); cached != nil {
		return cached, nil
	}

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		definitions = make(map[string][]domain.CategoryDefinition, len(domain.Facets))
		cities      []domain.City
		degraded    bool
	)

	for _, facet := range domain.Facets {
		wg.Add(1)
		go func(table string) {
			defer wg.Done()
			defs, err := s.repo.ListDefinitions(ctx, table)
			if err != nil {
				if s.logger != nil {
					s.logger.Printf("マスタ定義の取得に失敗 table=%s: %v", table, err)
				}
				defs = nil
			}
			mu.Lock()
			definitions[table] = defs
			if err != nil {
				degraded = true
			}
			mu.Unlock()
		}(facet.Table)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		list, err := s.repo.ListCities(ctx)
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("市区町村マスタの取得に失敗: %v", err)
			}
			mu.Lock()
			degraded = true
			mu.Unlock()
			return
		}
		mu.Lock()
		cities = list
		mu.Unlock()
	}()

	wg.Wait()

	data := domain.BuildMasterData(definitions, cities)

	// 欠けのあるスナップショットを TTL の間固定しないため、縮退時は書かない。
	// 次のロードで再フェッチが走り、復旧し次第キャッシュされる。
	if !degraded {
		s.storeToCache(ctx, definitions, cities)
	}
	return data, nil
}

func (s *masterDataService) loadFromCache(ctx context.Context) *domain.MasterData {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cacheKey())
	if err != nil {
		if s.logger != nil && !errors.Is(err, errMasterCacheMiss) {
			s.logger.Printf("マスタキャッシュの読み出しに失敗: %v", err)
		}
		return nil
	}
	var payload masterCachePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		if s.logger != nil {
			s.logger.Printf("マスタキャッシュの復元に失敗: %v", err)
		}
		return nil
	}
	return domain.BuildMasterData(payload.Definitions, payload.Cities)
}

func (s *masterDataService) storeToCache(ctx context.Context, definitions map[string][]domain.CategoryDefinition, cities []domain.City) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(masterCachePayload{Definitions: definitions, Cities: cities})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(), raw, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Printf("マスタキャッシュの書き込みに失敗: %v", err)
	}
}
