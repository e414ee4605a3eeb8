package application

import (
	"context"

	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

type storeQueryService struct {
	repo   StoreReadRepository
	master MasterDataService
}

// NewStoreQueryService は店舗参照サービスを生成する。
func NewStoreQueryService(repo StoreReadRepository, master MasterDataService) StoreQueryService {
	return &storeQueryService{repo: repo, master: master}
}

// ListSummaries は一覧表示用のサマリを返す。status が空なら絞り込まず、
// 稼働状態キーを含めて返して表示側の出し分けに委ねる。
func (s *storeQueryService) ListSummaries(ctx context.Context, status string) ([]domain.StoreSummary, error) {
	raws, err := s.repo.ListRaw(ctx, status)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.StoreSummary, 0, len(raws))
	for _, raw := range raws {
		summaries = append(summaries, domain.NormalizeSummary(raw))
	}
	return summaries, nil
}

// Search は選択キーの全条件を満たす店舗の検索レコードを返す。キーが空なら全件。
// 受け取ったキーは一度マスタに照らして既知のファセットへ振り分け直すため、
// 廃止済みキーや未知のキーは条件から落ちる。
func (s *storeQueryService) Search(ctx context.Context, keys []string) ([]domain.StoreSearchRecord, error) {
	raws, err := s.repo.ListRaw(ctx, "")
	if err != nil {
		return nil, err
	}

	records := make([]domain.StoreSearchRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, domain.NormalizeSearchRecord(raw))
	}

	if len(keys) == 0 {
		return records, nil
	}

	master, err := s.master.Load(ctx)
	if err != nil {
		return nil, err
	}
	selection := domain.RestoreSelection(keys, master.TableByKey)
	return domain.Evaluate(records, selection.SelectedKeys()), nil
}

// Detail は slug で店舗詳細を引く。見つからなければリポジトリのエラーを素通しする。
func (s *storeQueryService) Detail(ctx context.Context, slug string) (*domain.StoreDetail, error) {
	raw, err := s.repo.FindRawBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	detail := domain.NormalizeDetail(raw)
	return &detail, nil
}
