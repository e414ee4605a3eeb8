package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rickygarrix/otonavi-sub000/internal/admin/application"
	admindomain "github.com/rickygarrix/otonavi-sub000/internal/admin/domain"
	"github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

func testStoreRecord(t *testing.T) *admindomain.StoreRecord {
	t.Helper()
	slug, err := admindomain.NewSlug("tsuki-no-shizuku")
	if err != nil {
		t.Fatalf("slug の生成に失敗: %v", err)
	}
	status, err := admindomain.NewStatusKey("normal")
	if err != nil {
		t.Fatalf("status の生成に失敗: %v", err)
	}
	return &admindomain.StoreRecord{
		ID:        "2f6b7c1e-9d34-4c6a-8f00-1a2b3c4d5e6f",
		Slug:      slug,
		Name:      "月ノ雫",
		StatusKey: status,
	}
}

func TestAdminStoreRepositoryUpsertSyncsRelations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock の初期化に失敗: %v", err)
	}
	defer db.Close()

	store := testStoreRecord(t)
	store.Relations = map[string][]int64{
		domain.TableDrinks: {3, 5},
	}

	mock.ExpectExec("INSERT INTO stores").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM store_drinks WHERE store_id").
		WithArgs(store.ID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO store_drinks").
		WithArgs(store.ID, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO store_drinks").
		WithArgs(store.ID, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewAdminStoreRepository(db)
	if err := repo.Upsert(context.Background(), store); err != nil {
		t.Fatalf("Upsert が失敗: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("期待したクエリ順と一致しない: %v", err)
	}
}

func TestAdminStoreRepositoryUpsertSkipsOmittedRelations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock の初期化に失敗: %v", err)
	}
	defer db.Close()

	store := testStoreRecord(t)
	store.Relations = nil

	mock.ExpectExec("INSERT INTO stores").WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewAdminStoreRepository(db)
	if err := repo.Upsert(context.Background(), store); err != nil {
		t.Fatalf("Upsert が失敗: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("リレーション省略時に中間テーブルへ触ってはいけない: %v", err)
	}
}

func TestAdminStoreRepositoryUpsertReportsFailedStep(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock の初期化に失敗: %v", err)
	}
	defer db.Close()

	store := testStoreRecord(t)
	store.Relations = map[string][]int64{
		domain.TableDrinks: {3},
	}

	mock.ExpectExec("INSERT INTO stores").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM store_drinks WHERE store_id").
		WithArgs(store.ID).
		WillReturnError(errors.New("connection reset"))

	repo := NewAdminStoreRepository(db)
	err = repo.Upsert(context.Background(), store)
	if err == nil {
		t.Fatal("削除失敗時はエラーを返すべき")
	}

	var stepErr *application.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("StepError を期待したが %T が返った", err)
	}
	if stepErr.Step != "store_drinks:delete" {
		t.Fatalf("step = %q, want %q", stepErr.Step, "store_drinks:delete")
	}
}

func TestAdminStoreRepositoryInsertRejectsDuplicateSlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock の初期化に失敗: %v", err)
	}
	defer db.Close()

	store := testStoreRecord(t)

	mock.ExpectQuery("SELECT 1 FROM stores WHERE slug").
		WithArgs(store.Slug.String()).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	repo := NewAdminStoreRepository(db)
	err = repo.Insert(context.Background(), store)
	if err == nil {
		t.Fatal("slug 重複時はエラーを返すべき")
	}

	var stepErr *application.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("StepError を期待したが %T が返った", err)
	}
	if stepErr.Step != "stores:duplicate_check" {
		t.Fatalf("step = %q, want %q", stepErr.Step, "stores:duplicate_check")
	}
}

func TestAdminStoreRepositoryFindByIDScansTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock の初期化に失敗: %v", err)
	}
	defer db.Close()

	storeID := "2f6b7c1e-9d34-4c6a-8f00-1a2b3c4d5e6f"
	createdAt := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)

	columns := []string{
		"id", "slug", "name", "kana", "status_key", "description", "access", "address", "business_hours",
		"prefecture_id", "city_id", "venue_type_id", "price_range_id", "store_size_id",
		"created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+), created_at, updated_at FROM stores WHERE id").
		WithArgs(storeID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			storeID, "tsuki-no-shizuku", "月ノ雫", nil, "normal", nil, nil, nil, nil,
			nil, nil, nil, nil, nil,
			createdAt, updatedAt,
		))
	for _, rel := range relationTables {
		mock.ExpectQuery("FROM " + rel.joinTable).
			WithArgs(storeID).
			WillReturnRows(sqlmock.NewRows([]string{rel.idColumn}))
	}

	repo := NewAdminStoreRepository(db)
	store, err := repo.FindByID(context.Background(), storeID)
	if err != nil {
		t.Fatalf("FindByID が失敗: %v", err)
	}

	if !store.CreatedAt.Equal(createdAt) {
		t.Fatalf("CreatedAt = %v, want %v", store.CreatedAt, createdAt)
	}
	if !store.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("UpdatedAt = %v, want %v", store.UpdatedAt, updatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("期待したクエリ順と一致しない: %v", err)
	}
}
