package public

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rickygarrix/otonavi-sub000/internal/interfaces/http/common"
)

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := strings.TrimSpace(r.URL.Query().Get("status"))
		stores, err := h.storeQueries.ListSummaries(ctx, status)
		if err != nil {
			h.logger.Printf("store list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗一覧の取得に失敗しました"})
			return
		}

		items := make([]storeSummaryResponse, 0, len(stores))
		for _, store := range stores {
			items = append(items, buildStoreSummaryResponse(store))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, storeListResponse{
			Items: items,
			Total: len(items),
		})
	}
}

func (h *Handler) storeSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		keys := common.ParseKeyList(r.URL.Query().Get("keys"))

		records, err := h.storeQueries.Search(ctx, keys)
		if err != nil {
			h.logger.Printf("store search failed keys=%v err=%v", keys, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗検索に失敗しました"})
			return
		}

		items := make([]storeSearchResponse, 0, len(records))
		for _, record := range records {
			items = append(items, buildStoreSearchResponse(record))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, storeSearchListResponse{
			Items: items,
			Total: len(items),
		})
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗が指定されていません"})
			return
		}

		detail, err := h.storeQueries.Detail(ctx, slug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりません"})
				return
			}
			h.logger.Printf("store detail fetch failed slug=%q err=%v", slug, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗情報の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreDetailResponse(*detail))
	}
}
