package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StorageGateway はオブジェクトストレージ互換 API への操作を担う。
// 店舗ごとの画像置き場をフォルダ相当のプレースホルダオブジェクトで確保する。
type StorageGateway struct {
	endpoint   string
	bucket     string
	httpClient *http.Client
}

func NewStorageGateway(endpoint, bucket string, timeout time.Duration) *StorageGateway {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &StorageGateway{
		endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		bucket:     strings.TrimSpace(bucket),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// EnsureStoreFolder は stores/{id}/ 配下に空オブジェクトを置いてフォルダを確保し、
// 作成したオブジェクトキーを返す。既に存在していても上書きで成功扱いとする。
func (g *StorageGateway) EnsureStoreFolder(ctx context.Context, storeID string) (string, error) {
	trimmed := strings.TrimSpace(storeID)
	if trimmed == "" {
		return "", errors.New("店舗 ID が空です")
	}
	if g.endpoint == "" || g.bucket == "" {
		return "", errors.New("ストレージの接続先が設定されていません")
	}

	key := fmt.Sprintf("stores/%s/.keep", trimmed)
	url := fmt.Sprintf("%s/%s/%s", g.endpoint, g.bucket, key)

	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, strings.NewReader(""))
	if err != nil {
		return "", fmt.Errorf("ストレージリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = 0

	res, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ストレージリクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return "", fmt.Errorf("ストレージ操作でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return key, nil
}
