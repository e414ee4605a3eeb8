package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	admindomain "github.com/rickygarrix/otonavi-sub000/internal/admin/domain"
	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

// storeService implements StoreService.
type storeService struct {
	repo StoreRepository
}

func NewStoreService(repo StoreRepository) StoreService {
	return &storeService{repo: repo}
}

func (s *storeService) List(ctx context.Context, filter StoreFilter, paging Paging) ([]admindomain.StoreRecord, error) {
	return s.repo.Find(ctx, filter, paging)
}

func (s *storeService) Detail(ctx context.Context, id string) (*admindomain.StoreRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *storeService) Insert(ctx context.Context, cmd UpsertStoreCommand) (*admindomain.StoreRecord, error) {
	store, err := buildStoreRecord(cmd)
	if err != nil {
		return nil, err
	}
	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	if err := s.repo.Insert(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) Upsert(ctx context.Context, cmd UpsertStoreCommand) (*admindomain.StoreRecord, error) {
	store, err := buildStoreRecord(cmd)
	if err != nil {
		return nil, err
	}
	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	if err := s.repo.Upsert(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// buildStoreRecord はコマンドを検証済みの店舗集約へ変換する。
func buildStoreRecord(cmd UpsertStoreCommand) (*admindomain.StoreRecord, error) {
	slug, err := admindomain.NewSlug(cmd.Slug)
	if err != nil {
		return nil, err
	}
	statusKey, err := admindomain.NewStatusKey(cmd.StatusKey)
	if err != nil {
		return nil, err
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("店舗名は必須です")
	}
	if cmd.ID != "" {
		if _, err := uuid.Parse(cmd.ID); err != nil {
			return nil, fmt.Errorf("店舗 ID の形式が不正です: %s", cmd.ID)
		}
	}

	relations := make(map[string][]int64, len(cmd.RelationIDs))
	for table, ids := range cmd.RelationIDs {
		facet, ok := domain.FacetByTable(table)
		if !ok || !facet.Multiple {
			return nil, fmt.Errorf("未知のファセットテーブルです: %s", table)
		}
		validated, err := admindomain.NewFacetIDList(ids)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", table, err)
		}
		relations[table] = validated
	}

	return &admindomain.StoreRecord{
		ID:            cmd.ID,
		Slug:          slug,
		Name:          cmd.Name,
		Kana:          cmd.Kana,
		StatusKey:     statusKey,
		Description:   cmd.Description,
		Access:        cmd.Access,
		Address:       cmd.Address,
		BusinessHours: cmd.BusinessHours,
		PrefectureID:  cmd.PrefectureID,
		CityID:        cmd.CityID,
		VenueTypeID:   cmd.VenueTypeID,
		PriceRangeID:  cmd.PriceRangeID,
		StoreSizeID:   cmd.StoreSizeID,
		Relations:     relations,
	}, nil
}
