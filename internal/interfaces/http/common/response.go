package common

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSON は JSON レスポンスの共通書き込み処理。エンコード失敗は
// ステータス送信後のため握りつぶさずログにだけ残す。
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}
