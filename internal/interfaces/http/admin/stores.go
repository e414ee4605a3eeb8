package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/rickygarrix/otonavi-sub000/internal/admin/application"
	admindomain "github.com/rickygarrix/otonavi-sub000/internal/admin/domain"
	"github.com/rickygarrix/otonavi-sub000/internal/interfaces/http/common"
)

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		queryValues := r.URL.Query()
		keyword := strings.TrimSpace(queryValues.Get("keyword"))
		statusKey := strings.TrimSpace(queryValues.Get("status"))
		limit, _ := common.ParsePositiveInt(queryValues.Get("limit"), 20)

		var prefectureID *int64
		if raw := strings.TrimSpace(queryValues.Get("prefectureId")); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "都道府県IDの形式が不正です"})
				return
			}
			prefectureID = &parsed
		}

		filter := adminapp.StoreFilter{PrefectureID: prefectureID, Keyword: keyword, StatusKey: statusKey}
		paging := adminapp.Paging{Limit: limit}

		stores, err := h.storeService.List(ctx, filter, paging)
		if err != nil {
			h.logger.Printf("admin store list failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗一覧の取得に失敗しました"})
			return
		}

		items := make([]adminStoreResponse, 0, len(stores))
		for _, store := range stores {
			items = append(items, adminStoreDomainToResponse(store))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		store, err := h.storeService.Detail(ctx, idParam)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりません"})
				return
			}
			h.logger.Printf("admin store detail fetch failed id=%s err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗情報の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminStoreDomainToResponse(*store))
	}
}

// storeActionHandler は書き込みアクションのディスパッチ窓口。
// action 名で処理を振り分け、結果を success/error/step の封筒形式で返す。
func (h *Handler) storeActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminStoreActionRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			h.writeActionError(w, http.StatusBadRequest, errors.New("リクエストの形式が不正です"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		if user, ok := common.UserFromContext(ctx); ok {
			h.logger.Printf("admin store action=%s user=%s", req.Action, user.ID)
		}

		switch strings.TrimSpace(req.Action) {
		case actionInsertStore:
			h.handleStoreWrite(ctx, w, req.Store, h.storeService.Insert)
		case actionUpsertStore:
			h.handleStoreWrite(ctx, w, req.Store, h.storeService.Upsert)
		case actionUpsertStoreGallery:
			h.handleGalleryUpsert(ctx, w, req.Gallery)
		case actionBulkUpsertStoreGallery:
			h.handleGalleryBulkUpsert(ctx, w, req.Galleries)
		default:
			h.writeActionError(w, http.StatusBadRequest, errors.New("未知のアクションです"))
		}
	}
}

type storeWriteFunc func(ctx context.Context, cmd adminapp.UpsertStoreCommand) (*admindomain.StoreRecord, error)

func (h *Handler) handleStoreWrite(ctx context.Context, w http.ResponseWriter, payload *adminStorePayload, write storeWriteFunc) {
	if payload == nil {
		h.writeActionError(w, http.StatusBadRequest, errors.New("店舗情報が指定されていません"))
		return
	}

	store, err := write(ctx, buildUpsertStoreCommand(payload))
	if err != nil {
		h.logger.Printf("admin store write failed slug=%q err=%v", payload.Slug, err)
		h.writeActionError(w, http.StatusBadRequest, err)
		return
	}

	h.writeActionSuccess(w, adminStoreDomainToResponse(*store))
}

func (h *Handler) handleGalleryUpsert(ctx context.Context, w http.ResponseWriter, payload *adminGalleryPayload) {
	if payload == nil {
		h.writeActionError(w, http.StatusBadRequest, errors.New("ギャラリー情報が指定されていません"))
		return
	}

	if err := h.galleryService.Upsert(ctx, payload.StoreID, buildGalleryImages(payload.Images)); err != nil {
		h.logger.Printf("admin gallery upsert failed storeId=%s err=%v", payload.StoreID, err)
		h.writeActionError(w, http.StatusBadRequest, err)
		return
	}

	h.writeActionSuccess(w, map[string]any{"storeId": payload.StoreID, "count": len(payload.Images)})
}

func (h *Handler) handleGalleryBulkUpsert(ctx context.Context, w http.ResponseWriter, payloads []adminGalleryPayload) {
	if len(payloads) == 0 {
		h.writeActionError(w, http.StatusBadRequest, errors.New("ギャラリー情報が指定されていません"))
		return
	}

	commands := make([]adminapp.GalleryBulkCommand, 0, len(payloads))
	for _, payload := range payloads {
		commands = append(commands, adminapp.GalleryBulkCommand{
			StoreID: payload.StoreID,
			Images:  buildGalleryImages(payload.Images),
		})
	}

	if err := h.galleryService.BulkUpsert(ctx, commands); err != nil {
		h.logger.Printf("admin gallery bulk upsert failed stores=%d err=%v", len(payloads), err)
		h.writeActionError(w, http.StatusBadRequest, err)
		return
	}

	h.writeActionSuccess(w, map[string]any{"stores": len(payloads)})
}

func (h *Handler) writeActionSuccess(w http.ResponseWriter, data any) {
	common.WriteJSON(h.logger, w, http.StatusOK, actionEnvelope{Success: true, Data: data})
}

func (h *Handler) writeActionError(w http.ResponseWriter, status int, err error) {
	envelope := actionEnvelope{Success: false, Error: err.Error()}
	var stepErr *adminapp.StepError
	if errors.As(err, &stepErr) {
		envelope.Step = stepErr.Step
		envelope.Error = stepErr.Err.Error()
		status = http.StatusInternalServerError
	}
	common.WriteJSON(h.logger, w, status, envelope)
}
