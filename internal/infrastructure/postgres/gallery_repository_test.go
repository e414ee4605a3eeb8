package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rickygarrix/otonavi-sub000/internal/admin/application"
	admindomain "github.com/rickygarrix/otonavi-sub000/internal/admin/domain"
)

const testGalleryStoreID = "2f6b7c1e-9d34-4c6a-8f00-1a2b3c4d5e6f"

func testGalleryImages(t *testing.T, urls ...string) []admindomain.GalleryImage {
	t.Helper()
	inputs := make([]admindomain.GalleryImageInput, 0, len(urls))
	for i, u := range urls {
		inputs = append(inputs, admindomain.GalleryImageInput{URL: u, SortOrder: i + 1})
	}
	images, err := admindomain.NewGalleryImages(inputs, 0)
	if err != nil {
		t.Fatalf("画像 VO の生成に失敗: %v", err)
	}
	return images
}

func TestGalleryRepositoryUpsertUsesStoreURLKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock の初期化に失敗: %v", err)
	}
	defer db.Close()

	images := testGalleryImages(t, "https://img.example.com/1.jpg", "https://img.example.com/2.jpg")

	mock.ExpectExec("INSERT INTO store_images .+ ON CONFLICT \\(store_id, url\\)").
		WithArgs(testGalleryStoreID, "https://img.example.com/1.jpg", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO store_images .+ ON CONFLICT \\(store_id, url\\)").
		WithArgs(testGalleryStoreID, "https://img.example.com/2.jpg", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewGalleryRepository(db)
	if err := repo.Upsert(context.Background(), testGalleryStoreID, images); err != nil {
		t.Fatalf("Upsert が失敗: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("期待したクエリと一致しない: %v", err)
	}
}

func TestGalleryRepositoryBulkUpsertBumpsBeforeInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock の初期化に失敗: %v", err)
	}
	defer db.Close()

	entries := []admindomain.GalleryBulkEntry{
		{StoreID: testGalleryStoreID, Images: testGalleryImages(t, "https://img.example.com/1.jpg")},
	}

	mock.ExpectExec("SELECT bump_store_gallery_sort_orders").
		WithArgs(testGalleryStoreID, gallerySortOrderBump).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO store_images").
		WithArgs(testGalleryStoreID, "https://img.example.com/1.jpg", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewGalleryRepository(db)
	if err := repo.BulkUpsert(context.Background(), entries); err != nil {
		t.Fatalf("BulkUpsert が失敗: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("底上げが upsert より先に実行されるべき: %v", err)
	}
}

func TestGalleryRepositoryBulkUpsertReportsBumpStep(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock の初期化に失敗: %v", err)
	}
	defer db.Close()

	entries := []admindomain.GalleryBulkEntry{
		{StoreID: testGalleryStoreID, Images: testGalleryImages(t, "https://img.example.com/1.jpg")},
	}

	mock.ExpectExec("SELECT bump_store_gallery_sort_orders").
		WithArgs(testGalleryStoreID, gallerySortOrderBump).
		WillReturnError(errors.New("function does not exist"))

	repo := NewGalleryRepository(db)
	err = repo.BulkUpsert(context.Background(), entries)
	if err == nil {
		t.Fatal("底上げ失敗時はエラーを返すべき")
	}

	var stepErr *application.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("StepError を期待したが %T が返った", err)
	}
	if stepErr.Step != "store_images:bump" {
		t.Fatalf("step = %q, want %q", stepErr.Step, "store_images:bump")
	}
}
