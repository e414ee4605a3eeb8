package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardTestLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type fakeStorageProvisioner struct {
	lastStoreID string
	err         error
}

func (f *fakeStorageProvisioner) EnsureStoreFolder(_ context.Context, storeID string) (string, error) {
	f.lastStoreID = storeID
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("stores/%s/.keep", storeID), nil
}

func postStorageAction(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin/storage", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.storageActionHandler().ServeHTTP(rec, req)

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("応答の解析に失敗: %v body=%s", err, rec.Body.String())
	}
	return rec, payload
}

func TestStorageActionHandlerReturnsTopLevelKey(t *testing.T) {
	storage := &fakeStorageProvisioner{}
	h := NewHandler(Config{
		Logger:  discardTestLogger(),
		Storage: storage,
	})

	body := `{"action":"ensure_store_folder","storeId":"2f6b7c1e-9d34-4c6a-8f00-1a2b3c4d5e6f"}`
	rec, payload := postStorageAction(t, h, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if success, _ := payload["success"].(bool); !success {
		t.Fatalf("success = false: %s", rec.Body.String())
	}
	key, _ := payload["key"].(string)
	if key != "stores/2f6b7c1e-9d34-4c6a-8f00-1a2b3c4d5e6f/.keep" {
		t.Fatalf("key = %q, オブジェクトキーがトップレベルで返るべき", key)
	}
	if storage.lastStoreID != "2f6b7c1e-9d34-4c6a-8f00-1a2b3c4d5e6f" {
		t.Fatalf("店舗 ID が渡っていない: %q", storage.lastStoreID)
	}
}

func TestStorageActionHandlerRejectsUnknownAction(t *testing.T) {
	h := NewHandler(Config{
		Logger:  discardTestLogger(),
		Storage: &fakeStorageProvisioner{},
	})

	rec, payload := postStorageAction(t, h, `{"action":"delete_bucket","storeId":"abc"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if success, _ := payload["success"].(bool); success {
		t.Fatal("未知のアクションは失敗になるべき")
	}
}
