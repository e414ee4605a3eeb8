package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rickygarrix/otonavi-sub000/internal/interfaces/http/common"
)

// storageActionHandler は店舗用ストレージ領域の確保を受け付ける。
func (h *Handler) storageActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminStorageActionRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			h.writeActionError(w, http.StatusBadRequest, errors.New("リクエストの形式が不正です"))
			return
		}

		if strings.TrimSpace(req.Action) != actionEnsureStoreFolder {
			h.writeActionError(w, http.StatusBadRequest, errors.New("未知のアクションです"))
			return
		}
		storeID := strings.TrimSpace(req.StoreID)
		if storeID == "" {
			h.writeActionError(w, http.StatusBadRequest, errors.New("店舗IDが指定されていません"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		key, err := h.storage.EnsureStoreFolder(ctx, storeID)
		if err != nil {
			h.logger.Printf("store folder provisioning failed storeId=%s err=%v", storeID, err)
			h.writeActionError(w, http.StatusInternalServerError, errors.New("ストレージ領域の確保に失敗しました"))
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, storageActionResponse{Success: true, Key: key, StoreID: storeID})
	}
}
