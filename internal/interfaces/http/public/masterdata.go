package public

import (
	"context"
	"net/http"
	"time"

	"github.com/rickygarrix/otonavi-sub000/internal/interfaces/http/common"
)

func (h *Handler) filterMetadataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		master, err := h.masterData.Load(ctx)
		if err != nil {
			h.logger.Printf("filter metadata fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "絞り込み条件の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildFilterMetadataResponse(master))
	}
}
